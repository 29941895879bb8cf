package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

// AuthLogin signs in against /auth/signin and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		r.writePlain("email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("%w: failed to read email", shared.ErrMissingArgument)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		r.writePlain("password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("%w: failed to read password", shared.ErrMissingArgument)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	r.logger.Info("signing in", "email", email)

	session, err := r.sess.Login(ctx, email, password)
	if err != nil {
		return err
	}

	r.logger.Info("authentication successful", "user", session.Email)
	return r.writePlain("✓ Signed in as %s\n", session.Email)
}

// AuthRegister creates an account via /auth/signup.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	form := models.RegistrationForm{
		FirstName:   cmd.String("first-name"),
		LastName:    cmd.String("last-name"),
		MiddleName:  cmd.String("middle-name"),
		Email:       cmd.String("email"),
		Password:    cmd.String("password"),
		DateOfBirth: cmd.String("date-of-birth"),
	}

	r.logger.Info("registering account", "email", form.Email)

	message, err := r.sess.Register(ctx, form)
	if err != nil {
		return err
	}

	if message == "" {
		message = "account created"
	}
	r.writePlain("✓ %s\n", message)
	return r.writePlain("Run 'flixctl auth login' to sign in.\n")
}

// AuthLogout clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.sess.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus reports whether a session is persisted and for whom.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	session := r.sess.Current()

	if cmd.Bool("json") {
		status := map[string]any{"authenticated": session != nil}
		if session != nil {
			status["email"] = session.Email
			status["roles"] = session.Roles
		}
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	if session == nil {
		return r.writePlain("✗ Not signed in\n")
	}

	r.writePlain("✓ Signed in\n")
	r.writePlain("Email: %s\n", session.Email)
	if len(session.Roles) > 0 {
		r.writePlain("Roles: %s\n", strings.Join(session.Roles, ", "))
	}
	return nil
}

// AuthWhoami prints the signed-in identity or fails when anonymous.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.guard.Require(); err != nil {
		return err
	}

	session := r.sess.Current()
	return r.writePlain("%s (%s)\n", session.FirstName, session.Email)
}
