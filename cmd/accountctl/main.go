// accountctl is a headless harness for the account form pipeline. It plays
// the role of a screen: it feeds a raw form record into the submission
// controller and renders field errors, notifications and the reconciled
// session user on the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/duynhne/account-sdk/config"
	"github.com/duynhne/account-sdk/internal/api"
	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/internal/core/session"
	v1 "github.com/duynhne/account-sdk/internal/logic/v1"
	"github.com/duynhne/account-sdk/middleware"
)

// consolePresenter renders pipeline signals on stdout.
type consolePresenter struct{}

func (consolePresenter) ClearFieldErrors() {}

func (consolePresenter) ShowFieldErrors(errors domain.FieldErrorMap) {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Printf("  %s: %s\n", field, errors[field])
	}
}

func (consolePresenter) ShowSuccess(message string) { fmt.Println(message) }
func (consolePresenter) ShowFailure(message string) { fmt.Println(message) }

func main() {
	flow := flag.String("flow", "update", "form flow: create, update or avatar")
	name := flag.String("name", "", "name field")
	email := flag.String("email", "", "email field")
	oldPassword := flag.String("old-password", "", "current password (update flow)")
	password := flag.String("password", "", "password field")
	confirmation := flag.String("password-confirmation", "", "password confirmation (update flow)")
	avatarPath := flag.String("avatar", "", "path to avatar image (avatar flow)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var logger *zap.Logger
	var err error
	if cfg.IsDevelopment() {
		logger, err = middleware.NewDevelopmentLogger()
	} else {
		logger, err = middleware.NewLogger()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := api.NewClient(cfg.Account, logger)
	sessions := session.NewStore(domain.User{})
	sessions.Subscribe(func(u domain.User) {
		fmt.Printf("session: %s <%s> avatar=%s\n", u.Name, u.Email, u.AvatarURL)
	})

	record := domain.AccountRecord{
		Name:                 *name,
		Email:                *email,
		OldPassword:          *oldPassword,
		Password:             *password,
		PasswordConfirmation: *confirmation,
	}

	ctx := context.Background()
	presenter := consolePresenter{}

	var outcome v1.Outcome
	switch *flow {
	case "create":
		controller := v1.NewCreationController(client, presenter, logger)
		outcome, err = controller.Submit(ctx, record)
	case "update":
		controller := v1.NewUpdateController(client, sessions, presenter, logger)
		outcome, err = controller.Submit(ctx, record)
	case "avatar":
		if *avatarPath == "" {
			fmt.Fprintln(os.Stderr, "-avatar is required for the avatar flow")
			os.Exit(1)
		}
		file, ferr := os.Open(*avatarPath)
		if ferr != nil {
			fmt.Fprintln(os.Stderr, "open avatar:", ferr)
			os.Exit(1)
		}
		defer file.Close()
		controller := v1.NewUpdateController(client, sessions, presenter, logger)
		outcome, err = controller.SubmitAvatar(ctx, *avatarPath, file)
	default:
		fmt.Fprintf(os.Stderr, "unknown flow %q\n", *flow)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if outcome.Kind != v1.OutcomeSucceeded {
		os.Exit(1)
	}
}
