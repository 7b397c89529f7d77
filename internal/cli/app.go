// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package cli implements the command-line front end.

Commands map one-to-one onto the pages of the site: listing and reading
advertisements and articles, signing in and out, and the staff user panel.
Before a command runs, its corresponding route is checked against the
navigation guard with the current session; a denied command prints the
redirect the site would perform instead of calling the backend.

# Architecture

The [App] owns fully-wired clients and dispatches subcommands. All
construction happens in the entry point; the app itself performs no wiring.
*/
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/okunevich/petsearch/internal/admin"
	"github.com/okunevich/petsearch/internal/ads"
	"github.com/okunevich/petsearch/internal/articles"
	"github.com/okunevich/petsearch/internal/guard"
	"github.com/okunevich/petsearch/internal/profile"
	"github.com/okunevich/petsearch/internal/session"
	"github.com/okunevich/petsearch/internal/social"
)

// ErrUsage marks invocation mistakes: unknown commands, missing arguments.
var ErrUsage = errors.New("usage error")

// App is the fully-wired command dispatcher.
type App struct {
	out    io.Writer
	logger *slog.Logger

	session  *session.Store
	guard    *guard.Guard
	social   *social.Registry
	ads      *ads.Client
	articles *articles.Client
	profile  *profile.Client
	admin    *admin.Client

	// callbackPort is the loopback port for the social login redirect.
	callbackPort int
}

// Dependencies carries the wired components into [New].
type Dependencies struct {
	Out          io.Writer
	Logger       *slog.Logger
	Session      *session.Store
	Guard        *guard.Guard
	Social       *social.Registry
	Ads          *ads.Client
	Articles     *articles.Client
	Profile      *profile.Client
	Admin        *admin.Client
	CallbackPort int
}

// New constructs the [*App].
func New(deps Dependencies) *App {
	return &App{
		out:          deps.Out,
		logger:       deps.Logger,
		session:      deps.Session,
		guard:        deps.Guard,
		social:       deps.Social,
		ads:          deps.Ads,
		articles:     deps.Articles,
		profile:      deps.Profile,
		admin:        deps.Admin,
		callbackPort: deps.CallbackPort,
	}
}

// Run dispatches one invocation. args excludes the program name.
func (app *App) Run(context context.Context, args []string) error {
	if len(args) == 0 {
		app.printUsage()
		return ErrUsage
	}

	command, rest := args[0], args[1:]

	switch command {
	case "login":
		return app.runLogin(context, rest)
	case "logout":
		return app.runLogout(context)
	case "register":
		return app.runRegister(context, rest)
	case "whoami":
		return app.runWhoami(context)
	case "social-login":
		return app.runSocialLogin(context, rest)
	case "ads":
		return app.runAds(context, rest)
	case "articles":
		return app.runArticles(context, rest)
	case "profile":
		return app.runProfile(context, rest)
	case "admin":
		return app.runAdmin(context, rest)
	case "routes":
		return app.runRoutes(rest)
	case "help", "-h", "--help":
		app.printUsage()
		return nil
	default:
		fmt.Fprintf(app.out, "unknown command %q\n\n", command)
		app.printUsage()
		return ErrUsage
	}
}

func (app *App) printUsage() {
	fmt.Fprint(app.out, `Usage: petsearch <command> [arguments]

Session:
  login -email <email> [-password <password>]   sign in
  logout                                        sign out
  register -email <email> [...]                 create an account and sign in
  whoami                                        show the current session
  social-login -provider <name>                 sign in through an OAuth provider

Site:
  ads list|show|create|respond                  advertisements
  articles list|show|create|comment             articles
  profile show -id <id>                         member profile pages
  admin users                                   staff user panel
  routes check <path>                           explain a navigation decision
`)
}

// # Navigation Gating

// checkRoute runs the guard for a concrete path, printing the redirect the
// site would perform when the command is denied.
func (app *App) checkRoute(path string) bool {
	route, ok := guard.Match(path)
	if !ok {
		fmt.Fprintf(app.out, "no such page: %s\n", path)
		return false
	}
	return app.checkDecision(app.guard.Decide(route, app.session))
}

// checkRequirements gates an action that has no dedicated page of its own,
// such as responding to an advertisement.
func (app *App) checkRequirements(name, path string, requirements guard.Requirements) bool {
	route := &guard.Route{Name: name, Path: path, Requirements: requirements}
	return app.checkDecision(app.guard.Decide(route, app.session))
}

func (app *App) checkDecision(decision guard.Decision) bool {
	switch decision.Action {
	case guard.ActionAllow:
		return true
	case guard.ActionRedirectLogin:
		fmt.Fprintf(app.out, "sign in first: petsearch login (returns to %s)\n", decision.Next)
	case guard.ActionRedirectHome:
		fmt.Fprintln(app.out, "already signed in")
	case guard.ActionRedirectHomeDenied:
		fmt.Fprintf(app.out, "access denied: %s\n", decision.Reason)
	}
	return false
}

// runRoutes explains guard decisions without touching the backend.
func (app *App) runRoutes(args []string) error {
	if len(args) != 2 || args[0] != "check" {
		fmt.Fprintln(app.out, "usage: petsearch routes check <path>")
		return ErrUsage
	}

	path := args[1]
	route, ok := guard.Match(path)
	if !ok {
		fmt.Fprintf(app.out, "%s: no such page\n", path)
		return nil
	}

	decision := app.guard.Decide(route, app.session)
	if decision.Allowed() {
		fmt.Fprintf(app.out, "%s (%s): allowed\n", path, route.Name)
		return nil
	}
	fmt.Fprintf(app.out, "%s (%s): %s -> %s (%s)\n",
		path, route.Name, decision.Action, decision.Target, decision.Reason)
	return nil
}

// newFlagSet builds a flag set that reports its errors through app output.
func (app *App) newFlagSet(name string) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.SetOutput(app.out)
	return set
}
