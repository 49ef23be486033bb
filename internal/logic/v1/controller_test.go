package v1

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/internal/core/session"
)

// fakeService records calls and plays back canned responses.
type fakeService struct {
	createCalls int
	updateCalls int
	avatarCalls int

	lastCreation   domain.CreationPayload
	lastSubmission domain.SubmissionPayload

	user    *domain.User
	err     error
	entered chan struct{} // when set, closed once a call enters the service
	release chan struct{} // when set, calls block until closed
}

func (f *fakeService) CreateAccount(_ context.Context, p domain.CreationPayload) (*domain.User, error) {
	f.createCalls++
	f.lastCreation = p
	f.wait()
	return f.user, f.err
}

func (f *fakeService) UpdateProfile(_ context.Context, p domain.SubmissionPayload) (*domain.User, error) {
	f.updateCalls++
	f.lastSubmission = p
	f.wait()
	return f.user, f.err
}

func (f *fakeService) UpdateAvatar(_ context.Context, _ string, data io.Reader) (*domain.User, error) {
	f.avatarCalls++
	io.Copy(io.Discard, data)
	f.wait()
	return f.user, f.err
}

func (f *fakeService) wait() {
	if f.entered != nil {
		close(f.entered)
		f.entered = nil
	}
	if f.release != nil {
		<-f.release
	}
}

// recordingPresenter records every signal the controller emits.
type recordingPresenter struct {
	clears    int
	errorSets []domain.FieldErrorMap
	successes []string
	failures  []string
}

func (p *recordingPresenter) ClearFieldErrors() { p.clears++ }

func (p *recordingPresenter) ShowFieldErrors(errs domain.FieldErrorMap) {
	p.errorSets = append(p.errorSets, errs)
}

func (p *recordingPresenter) ShowSuccess(msg string) { p.successes = append(p.successes, msg) }
func (p *recordingPresenter) ShowFailure(msg string) { p.failures = append(p.failures, msg) }

var sessionSeed = domain.User{
	ID:        "1",
	Name:      "Old Name",
	Email:     "old@x.com",
	AvatarURL: "http://x/old.png",
}

func TestSubmit_ValidationFailure(t *testing.T) {
	service := &fakeService{}
	presenter := &recordingPresenter{}
	controller := NewCreationController(service, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:  "",
		Email: "bad",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Contains(t, outcome.FieldErrors, domain.FieldName)
	assert.Contains(t, outcome.FieldErrors, domain.FieldEmail)

	// No network call, no success or failure signal: input friction only.
	assert.Zero(t, service.createCalls)
	assert.Equal(t, 1, presenter.clears)
	require.Len(t, presenter.errorSets, 1)
	assert.Empty(t, presenter.successes)
	assert.Empty(t, presenter.failures)
}

func TestSubmit_ClearsStaleErrorsBeforeEveryPass(t *testing.T) {
	service := &fakeService{user: &domain.User{ID: "2", Name: "Ana", Email: "ana@x.com"}}
	presenter := &recordingPresenter{}
	controller := NewCreationController(service, presenter, zap.NewNop())

	_, err := controller.Submit(context.Background(), domain.AccountRecord{Name: "", Email: "bad"})
	require.NoError(t, err)
	_, err = controller.Submit(context.Background(), domain.AccountRecord{Name: "Ana", Email: "ana@x.com", Password: "secret7"})
	require.NoError(t, err)

	// Cleared unconditionally on both attempts, not only on success.
	assert.Equal(t, 2, presenter.clears)
	assert.Len(t, presenter.errorSets, 1)
}

func TestSubmit_UpdateSuccess(t *testing.T) {
	returned := domain.User{ID: "1", Name: "Ana", Email: "ana@x.com", AvatarURL: "http://x/a.png"}
	service := &fakeService{user: &returned}
	presenter := &recordingPresenter{}
	sessions := session.NewStore(sessionSeed)
	controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:                 "Ana",
		Email:                "ana@x.com",
		OldPassword:          "abc123",
		Password:             "newpass1",
		PasswordConfirmation: "newpass1",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, 1, service.updateCalls)
	require.NotNil(t, service.lastSubmission.Change)
	assert.Equal(t, "abc123", service.lastSubmission.Change.Old)

	// Session fully replaced: nothing of the previous value survives.
	assert.Equal(t, returned, sessions.Current())
	require.Len(t, presenter.successes, 1)
	assert.Empty(t, presenter.failures)
}

func TestSubmit_ConfirmationMismatch(t *testing.T) {
	service := &fakeService{}
	presenter := &recordingPresenter{}
	sessions := session.NewStore(sessionSeed)
	controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:                 "Ana",
		Email:                "ana@x.com",
		OldPassword:          "abc123",
		Password:             "newpass1",
		PasswordConfirmation: "different",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Len(t, outcome.FieldErrors, 1)
	assert.Contains(t, outcome.FieldErrors, domain.FieldPasswordConfirmation)
	assert.Zero(t, service.updateCalls)
}

func TestSubmit_ServiceFailure(t *testing.T) {
	service := &fakeService{err: domain.ErrServiceUnavailable}
	presenter := &recordingPresenter{}
	sessions := session.NewStore(sessionSeed)
	controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:  "Ana",
		Email: "ana@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, outcome.Kind)
	// Not a validation failure: no field errors shown, session untouched,
	// exactly one generic failure signal.
	assert.Empty(t, outcome.FieldErrors)
	assert.Empty(t, presenter.errorSets)
	assert.Equal(t, sessionSeed, sessions.Current())
	assert.Len(t, presenter.failures, 1)
}

func TestSubmit_MalformedResponse(t *testing.T) {
	// Missing email: the reconciler must reject it wholesale.
	service := &fakeService{user: &domain.User{ID: "1", Name: "Ana"}}
	presenter := &recordingPresenter{}
	sessions := session.NewStore(sessionSeed)
	controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:  "Ana",
		Email: "ana@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, outcome.Kind)
	assert.Equal(t, sessionSeed, sessions.Current())
	assert.Len(t, presenter.failures, 1)
}

func TestSubmit_CreationSuccess(t *testing.T) {
	service := &fakeService{user: &domain.User{ID: "7", Name: "Ana", Email: "ana@x.com"}}
	presenter := &recordingPresenter{}
	controller := NewCreationController(service, presenter, zap.NewNop())

	outcome, err := controller.Submit(context.Background(), domain.AccountRecord{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret7",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, 1, service.createCalls)
	assert.Equal(t, "secret7", service.lastCreation.Password)
	require.Len(t, presenter.successes, 1)
}

func TestSubmit_SecondSubmitWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	service := &fakeService{
		user:    &domain.User{ID: "1", Name: "Ana", Email: "ana@x.com"},
		entered: entered,
		release: release,
	}
	presenter := &recordingPresenter{}
	sessions := session.NewStore(sessionSeed)
	controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

	record := domain.AccountRecord{Name: "Ana", Email: "ana@x.com"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := controller.Submit(context.Background(), record)
		assert.NoError(t, err)
	}()

	// Wait until the first submission is inside the service call.
	<-entered

	_, err := controller.Submit(context.Background(), record)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(release)
	<-done

	// The ignored submit made no second service call.
	assert.Equal(t, 1, service.updateCalls)
}

func TestSubmitAvatar(t *testing.T) {
	t.Run("success reconciles like a profile update", func(t *testing.T) {
		returned := domain.User{ID: "1", Name: "Ana", Email: "ana@x.com", AvatarURL: "http://x/new.png"}
		service := &fakeService{user: &returned}
		presenter := &recordingPresenter{}
		sessions := session.NewStore(sessionSeed)
		controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

		outcome, err := controller.SubmitAvatar(context.Background(), "1.jpeg", strings.NewReader("jpeg-bytes"))
		require.NoError(t, err)

		assert.Equal(t, OutcomeSucceeded, outcome.Kind)
		assert.Equal(t, 1, service.avatarCalls)
		assert.Equal(t, returned, sessions.Current())
	})

	t.Run("failure leaves the session alone", func(t *testing.T) {
		service := &fakeService{err: errors.New("connection reset")}
		presenter := &recordingPresenter{}
		sessions := session.NewStore(sessionSeed)
		controller := NewUpdateController(service, sessions, presenter, zap.NewNop())

		outcome, err := controller.SubmitAvatar(context.Background(), "1.jpeg", strings.NewReader("jpeg-bytes"))
		require.NoError(t, err)

		assert.Equal(t, OutcomeFailed, outcome.Kind)
		assert.Equal(t, sessionSeed, sessions.Current())
		assert.Len(t, presenter.failures, 1)
	})

	t.Run("creation flow rejects avatar uploads", func(t *testing.T) {
		controller := NewCreationController(&fakeService{}, &recordingPresenter{}, zap.NewNop())
		_, err := controller.SubmitAvatar(context.Background(), "1.jpeg", strings.NewReader("x"))
		assert.Error(t, err)
	})
}
