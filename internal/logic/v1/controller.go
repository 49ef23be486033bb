// Package v1 implements the account form pipeline: validation against a
// declarative schema, mapping of violations to per-field errors, payload
// assembly and submission to the account service, and reconciliation of the
// authoritative response into the session.
package v1

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/internal/core/schema"
	"github.com/duynhne/account-sdk/internal/core/session"
	"github.com/duynhne/account-sdk/middleware"
)

// AccountService is the remote collaborator the controller submits to.
// Implemented by api.Client; tests substitute fakes.
type AccountService interface {
	CreateAccount(ctx context.Context, payload domain.CreationPayload) (*domain.User, error)
	UpdateProfile(ctx context.Context, payload domain.SubmissionPayload) (*domain.User, error)
	UpdateAvatar(ctx context.Context, filename string, data io.Reader) (*domain.User, error)
}

// Presenter is the UI collaborator. Field errors replace the previous map
// wholesale; success and failure are coarse signals that drive navigation
// and alerts.
type Presenter interface {
	ClearFieldErrors()
	ShowFieldErrors(errors domain.FieldErrorMap)
	ShowSuccess(message string)
	ShowFailure(message string)
}

// OutcomeKind discriminates submission outcomes so callers branch
// exhaustively instead of inspecting error types.
type OutcomeKind int

const (
	// OutcomeInvalid: validation failed, field errors were shown, no network
	// call was made. Expected user input friction, not an application error.
	OutcomeInvalid OutcomeKind = iota
	// OutcomeFailed: the service call or reconciliation failed; a single
	// generic failure notification was shown. Not retried automatically.
	OutcomeFailed
	// OutcomeSucceeded: the service accepted the submission.
	OutcomeSucceeded
)

// Outcome is the tagged result of one submission attempt.
type Outcome struct {
	Kind        OutcomeKind
	FieldErrors domain.FieldErrorMap // set when Kind == OutcomeInvalid
	User        *domain.User         // set when Kind == OutcomeSucceeded
}

// Flow names a form flow for logs and metrics.
type Flow string

const (
	FlowCreation Flow = "creation"
	FlowUpdate   Flow = "update"
	FlowAvatar   Flow = "avatar"
)

// User-facing notification copy.
const (
	msgCreated      = "Account created. You can now sign in."
	msgCreateFailed = "An error occurred creating your account, please try again."
	msgUpdated      = "Profile updated successfully."
	msgUpdateFailed = "An error occurred updating your profile, please try again."
	msgAvatarFailed = "Could not update your avatar."
)

// Controller orchestrates one form instance's submissions. At most one
// submission is in flight at a time; a submit while one is pending is ignored
// and reported as domain.ErrSubmissionInFlight.
type Controller struct {
	flow      Flow
	schema    schema.Schema
	service   AccountService
	sessions  *session.Store // nil for the creation flow (no session exists yet)
	presenter Presenter
	logger    *zap.Logger

	inFlight atomic.Bool
}

// NewCreationController builds the controller behind the account creation
// screen. Creation completes without touching session state.
func NewCreationController(service AccountService, presenter Presenter, logger *zap.Logger) *Controller {
	return &Controller{
		flow:      FlowCreation,
		schema:    schema.Creation(),
		service:   service,
		presenter: presenter,
		logger:    logger,
	}
}

// NewUpdateController builds the controller behind the profile screen.
// Successful updates are reconciled into the given session store.
func NewUpdateController(service AccountService, sessions *session.Store, presenter Presenter, logger *zap.Logger) *Controller {
	return &Controller{
		flow:      FlowUpdate,
		schema:    schema.Update(),
		service:   service,
		sessions:  sessions,
		presenter: presenter,
		logger:    logger,
	}
}

// Submit runs the pipeline for a raw form record: clear previous field
// errors, validate, then either surface field errors (no network call) or
// submit the minimal payload and handle the response.
//
// The returned error is nil for every normal outcome, including validation
// and service failures; it is non-nil only for programmer-level misuse such
// as a double submit.
func (c *Controller) Submit(ctx context.Context, record domain.AccountRecord) (Outcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, domain.ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	ctx, span := middleware.StartSpan(ctx, "form.submit", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("flow", string(c.flow)),
	))
	defer span.End()

	// Stale errors from the previous attempt must never survive into this
	// one, even if a different field fails now.
	c.presenter.ClearFieldErrors()

	violations := Validate(record, c.schema)
	if len(violations) > 0 {
		fieldErrors := ToFieldErrors(violations)
		c.presenter.ShowFieldErrors(fieldErrors)

		for _, v := range violations {
			middleware.RecordValidationError(v.Field)
		}
		middleware.RecordSubmission(string(c.flow), "invalid")
		span.SetAttributes(attribute.Int("validation.errors", len(violations)))
		c.logger.Info("Form submission rejected by validation",
			zap.String("flow", string(c.flow)),
			zap.Int("violations", len(violations)),
		)
		return Outcome{Kind: OutcomeInvalid, FieldErrors: fieldErrors}, nil
	}

	switch c.flow {
	case FlowCreation:
		return c.submitCreation(ctx, record), nil
	case FlowUpdate:
		return c.submitUpdate(ctx, record), nil
	default:
		return Outcome{}, fmt.Errorf("flow %q cannot submit a form record", c.flow)
	}
}

func (c *Controller) submitCreation(ctx context.Context, record domain.AccountRecord) Outcome {
	user, err := c.service.CreateAccount(ctx, NewCreationPayload(record))
	if err != nil {
		return c.fail(ctx, err, msgCreateFailed)
	}

	middleware.RecordSubmission(string(c.flow), "succeeded")
	c.logger.Info("Account created", zap.String("user_id", user.ID))

	// No session exists yet: signal completion and direct the user to sign in.
	c.presenter.ShowSuccess(msgCreated)
	return Outcome{Kind: OutcomeSucceeded, User: user}
}

func (c *Controller) submitUpdate(ctx context.Context, record domain.AccountRecord) Outcome {
	user, err := c.service.UpdateProfile(ctx, NewSubmissionPayload(record))
	if err != nil {
		return c.fail(ctx, err, msgUpdateFailed)
	}

	// The session outlives the screen; reconcile before signalling the UI.
	if err := c.sessions.Reconcile(*user); err != nil {
		return c.fail(ctx, err, msgUpdateFailed)
	}

	middleware.RecordSubmission(string(c.flow), "succeeded")
	c.logger.Info("Profile updated", zap.String("user_id", user.ID))

	c.presenter.ShowSuccess(msgUpdated)
	return Outcome{Kind: OutcomeSucceeded, User: user}
}

// SubmitAvatar uploads a new avatar image and reconciles the returned account
// representation like a profile update. There is nothing to validate: the
// image picker either delivers a payload or the flow never starts.
func (c *Controller) SubmitAvatar(ctx context.Context, filename string, data io.Reader) (Outcome, error) {
	if c.flow != FlowUpdate {
		return Outcome{}, fmt.Errorf("avatar upload requires the update flow, got %q", c.flow)
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, domain.ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	ctx, span := middleware.StartSpan(ctx, "form.submit_avatar", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	user, err := c.service.UpdateAvatar(ctx, filename, data)
	if err != nil {
		return c.failAs(ctx, FlowAvatar, err, msgAvatarFailed), nil
	}
	if err := c.sessions.Reconcile(*user); err != nil {
		return c.failAs(ctx, FlowAvatar, err, msgAvatarFailed), nil
	}

	middleware.RecordSubmission(string(FlowAvatar), "succeeded")
	c.logger.Info("Avatar updated", zap.String("user_id", user.ID))

	return Outcome{Kind: OutcomeSucceeded, User: user}, nil
}

// fail converts a service or reconciliation error into the failed outcome:
// session state untouched, form not cleared, one generic notification.
func (c *Controller) fail(ctx context.Context, err error, message string) Outcome {
	return c.failAs(ctx, c.flow, err, message)
}

func (c *Controller) failAs(ctx context.Context, flow Flow, err error, message string) Outcome {
	middleware.RecordError(ctx, err)
	middleware.RecordSubmission(string(flow), "failed")
	c.logger.Error("Form submission failed",
		zap.String("flow", string(flow)),
		zap.Error(err),
	)
	c.presenter.ShowFailure(message)
	return Outcome{Kind: OutcomeFailed}
}
