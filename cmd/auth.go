package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/services"
	"github.com/desertthunder/insure/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account, then signs in with the same credentials.
// Registration alone does not return a session, so a token call always
// follows a successful registration.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	creds, err := credentialsFromFlags(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("registering account", "email", creds.Email)
	if err := r.svc.Register(ctx, creds); err != nil {
		return fmt.Errorf("registration failed: %s", services.ErrorMessage(err))
	}

	r.logger.Info("account created, requesting tokens")
	return r.establishSession(ctx, creds)
}

// AuthLogin signs in with existing credentials and persists the token pair.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	creds, err := credentialsFromFlags(cmd)
	if err != nil {
		return err
	}

	return r.establishSession(ctx, creds)
}

// AuthLogout discards the stored token pair.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	r.session.Logout()
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus shows the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	if r.session.Status() == session.Authenticated {
		return r.writePlain("✓ Signed in\n")
	}
	return r.writePlain("✗ Not signed in\n")
}

func (r *Runner) establishSession(ctx context.Context, creds models.Credentials) error {
	tokens, err := r.svc.Authenticate(ctx, creds)
	if err != nil {
		return fmt.Errorf("sign in failed: %s", services.ErrorMessage(err))
	}

	if err := r.session.Login(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return r.writePlain("✓ Signed in as %s\n", creds.Email)
}

func credentialsFromFlags(cmd *cli.Command) (models.Credentials, error) {
	creds := models.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}
	if err := creds.Validate(); err != nil {
		return creds, err
	}
	return creds, nil
}
