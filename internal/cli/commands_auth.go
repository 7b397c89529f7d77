// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/okunevich/petsearch/internal/guard"
	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/session"
	"github.com/okunevich/petsearch/internal/social"
)

// # Session Commands

func (app *App) runLogin(context context.Context, args []string) error {
	set := app.newFlagSet("login")
	email := set.String("email", "", "account email")
	password := set.String("password", "", "account password (prompted when omitted)")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRoute(guard.PathLogin) {
		return nil
	}

	if *email == "" {
		fmt.Fprintln(app.out, "login requires -email")
		return ErrUsage
	}
	if *password == "" {
		prompted, err := app.promptSecret("Password: ")
		if err != nil {
			return err
		}
		*password = prompted
	}

	credentials := session.Credentials{Email: *email, Password: *password}
	if err := app.session.Login(context, credentials); err != nil {
		app.printAPIError(err)
		return err
	}

	app.printSessionSummary("signed in")
	return nil
}

func (app *App) runLogout(context context.Context) error {
	app.session.Logout(context)
	fmt.Fprintln(app.out, "signed out")
	return nil
}

func (app *App) runRegister(context context.Context, args []string) error {
	set := app.newFlagSet("register")
	email := set.String("email", "", "account email")
	username := set.String("username", "", "account username")
	displayName := set.String("display-name", "", "public display name")
	password := set.String("password", "", "account password (prompted when omitted)")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRoute(guard.PathRegister) {
		return nil
	}

	if *email == "" {
		fmt.Fprintln(app.out, "register requires -email")
		return ErrUsage
	}
	if *password == "" {
		prompted, err := app.promptSecret("Password: ")
		if err != nil {
			return err
		}
		*password = prompted
	}

	input := session.RegisterInput{
		Email:       *email,
		Username:    *username,
		Password:    *password,
		DisplayName: *displayName,
	}

	err := app.session.Register(context, input)
	if err == nil {
		app.printSessionSummary("account created, signed in")
		return nil
	}

	// The account may exist even though the sign-in afterwards failed.
	if errors.Is(err, session.ErrAccountCreated) {
		fmt.Fprintln(app.out, "account created, but automatic sign-in failed; run: petsearch login")
		return err
	}

	app.printAPIError(err)
	return err
}

func (app *App) runWhoami(context context.Context) error {
	if !app.session.IsAuthenticated() {
		fmt.Fprintln(app.out, "not signed in")
		return nil
	}

	// Revalidate against the backend so a stale token is reported honestly.
	if err := app.session.FetchUser(context); err != nil {
		app.printAPIError(err)
		return err
	}

	app.printSessionSummary("signed in")
	return nil
}

func (app *App) runSocialLogin(context context.Context, args []string) error {
	set := app.newFlagSet("social-login")
	provider := set.String("provider", social.ProviderGoogle, "OAuth provider name")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRoute(guard.PathLogin) {
		return nil
	}

	// ── 1. Authorization URL ──────────────────────────────────────────────
	authURL, state, err := app.social.AuthorizationURL(*provider)
	if err != nil {
		fmt.Fprintf(app.out, "unknown provider %q; available: %s\n",
			*provider, strings.Join(app.social.Providers(), ", "))
		return err
	}

	// ── 2. Loopback Listener ──────────────────────────────────────────────
	listener, err := social.NewListener(app.callbackPort, state, app.logger)
	if err != nil {
		return err
	}
	defer listener.Close()

	fmt.Fprintf(app.out, "Open this URL in your browser to continue:\n\n  %s\n\nWaiting for the provider redirect...\n", authURL)

	callback, err := listener.Wait(context)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	// ── 3. Backend Exchange ───────────────────────────────────────────────
	if err := app.session.SocialLogin(context, *provider, callback.Code, callback.State); err != nil {
		app.printAPIError(err)
		return err
	}

	app.printSessionSummary("signed in")
	return nil
}

// # Output Helpers

// printSessionSummary prints the signed-in identity line.
func (app *App) printSessionSummary(prefix string) {
	user := app.session.User()
	if user == nil {
		fmt.Fprintln(app.out, prefix)
		return
	}

	line := fmt.Sprintf("%s as %s", prefix, user.Email)
	if user.DisplayName != "" {
		line += fmt.Sprintf(" (%s)", user.DisplayName)
	}
	if user.IsStaff {
		line += " [staff]"
	} else if user.Role != "" {
		line += fmt.Sprintf(" [%s]", user.Role)
	}
	fmt.Fprintln(app.out, line)
}

// printAPIError renders a normalized backend error, field details included.
func (app *App) printAPIError(err error) {
	apiError := apperr.As(err)
	if apiError == nil {
		fmt.Fprintf(app.out, "error: %v\n", err)
		return
	}

	fmt.Fprintf(app.out, "error: %s\n", apiError.Message)
	for field, messages := range apiError.Fields {
		for _, message := range messages {
			fmt.Fprintf(app.out, "  %s: %s\n", field, message)
		}
	}
}

// promptSecret reads a secret from standard input.
func (app *App) promptSecret(prompt string) (string, error) {
	fmt.Fprint(app.out, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("cli_read_secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}
