// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/okunevich/petsearch/internal/admin"
	"github.com/okunevich/petsearch/internal/ads"
	"github.com/okunevich/petsearch/internal/articles"
	"github.com/okunevich/petsearch/internal/guard"
	"github.com/okunevich/petsearch/internal/platform/timefmt"
	"github.com/okunevich/petsearch/pkg/pointer"
)

// # Advertisement Commands

func (app *App) runAds(context context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(app.out, "usage: petsearch ads list|show|create|respond")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return app.runAdsList(context, args[1:])
	case "show":
		return app.runAdsShow(context, args[1:])
	case "create":
		return app.runAdsCreate(context, args[1:])
	case "respond":
		return app.runAdsRespond(context, args[1:])
	default:
		fmt.Fprintln(app.out, "usage: petsearch ads list|show|create|respond")
		return ErrUsage
	}
}

func (app *App) runAdsList(context context.Context, args []string) error {
	set := app.newFlagSet("ads list")
	species := set.Int64("species", 0, "species filter id")
	region := set.Int64("region", 0, "region filter id")
	status := set.Int64("status", 0, "advertisement type filter id")
	age := set.String("age", "", "age category (e.g. 1_3)")
	search := set.String("search", "", "free-text search")
	page := set.Int("page", 1, "page number")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	listing, err := app.ads.List(context, ads.ListFilter{
		Species:     *species,
		Region:      *region,
		AdStatus:    *status,
		AgeCategory: *age,
		Search:      *search,
		Page:        *page,
	})
	if err != nil {
		app.printAPIError(err)
		return err
	}

	now := time.Now()
	fmt.Fprintf(app.out, "%d advertisement(s)\n", listing.Count)
	for _, ad := range listing.Results {
		fmt.Fprintf(app.out, "  #%-5d %-10s %-40s %s, %s\n",
			ad.ID, ad.Status, truncate(ad.Title, 40), ad.Location, app.relativeDate(ad.PublicationDate, now))
	}
	if next, ok := listing.NextPage(); ok {
		fmt.Fprintf(app.out, "more: petsearch ads list -page %d\n", next)
	}
	return nil
}

func (app *App) runAdsShow(context context.Context, args []string) error {
	set := app.newFlagSet("ads show")
	id := set.Int64("id", 0, "advertisement id")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}
	if *id <= 0 {
		fmt.Fprintln(app.out, "ads show requires -id")
		return ErrUsage
	}

	detail, err := app.ads.Get(context, *id)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "#%d %s [%s]\n", detail.ID, detail.Title, detail.Status)
	fmt.Fprintf(app.out, "published: %s, %s\n", app.longDate(detail.PublicationDate), detail.Location)
	if detail.Animal != nil {
		animal := detail.Animal
		fmt.Fprintf(app.out, "animal: %s (%s, %s), age %s\n",
			animal.Name, animal.Species, animal.Breed, animal.AgeYearsMonths)
	}
	fmt.Fprintf(app.out, "\n%s\n", detail.Description)
	if detail.User != nil {
		fmt.Fprintf(app.out, "\ncontact: %s", detail.User.DisplayName)
		if detail.User.PhoneNumber != "" {
			fmt.Fprintf(app.out, ", %s", detail.User.PhoneNumber)
		}
		fmt.Fprintln(app.out)
	}
	if len(detail.Responses) > 0 {
		fmt.Fprintf(app.out, "\n%d response(s):\n", len(detail.Responses))
		now := time.Now()
		for _, response := range detail.Responses {
			author := "someone"
			if response.User != nil {
				author = response.User.DisplayName
			}
			fmt.Fprintf(app.out, "  %s (%s): %s\n",
				author, app.relativeDate(response.DateCreated, now), response.Message)
		}
	}
	return nil
}

func (app *App) runAdsCreate(context context.Context, args []string) error {
	set := app.newFlagSet("ads create")
	title := set.String("title", "", "listing title")
	description := set.String("description", "", "listing text")
	status := set.Int64("status", 0, "advertisement type id (see filter options)")
	animalName := set.String("animal-name", "", "animal name")
	animalSpecies := set.Int64("animal-species", 0, "species id")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRoute("/advertisements/create") {
		return nil
	}
	if *title == "" || *status <= 0 {
		fmt.Fprintln(app.out, "ads create requires -title and -status")
		return ErrUsage
	}

	detail, err := app.ads.Create(context, ads.CreateInput{
		Title:         *title,
		Description:   *description,
		Status:        *status,
		AnimalName:    *animalName,
		AnimalSpecies: *animalSpecies,
	})
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "published advertisement #%d\n", detail.ID)
	return nil
}

func (app *App) runAdsRespond(context context.Context, args []string) error {
	set := app.newFlagSet("ads respond")
	id := set.Int64("id", 0, "advertisement id")
	message := set.String("message", "", "response text")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRequirements("AdvertisementRespond", "/advertisement/{id}",
		guard.Requirements{RequiresAuth: true}) {
		return nil
	}
	if *id <= 0 || *message == "" {
		fmt.Fprintln(app.out, "ads respond requires -id and -message")
		return ErrUsage
	}

	response, err := app.ads.Respond(context, *id, *message)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "response #%d posted\n", response.ID)
	return nil
}

// # Article Commands

func (app *App) runArticles(context context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(app.out, "usage: petsearch articles list|show|create|comment")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return app.runArticlesList(context, args[1:])
	case "show":
		return app.runArticlesShow(context, args[1:])
	case "create":
		return app.runArticlesCreate(context, args[1:])
	case "comment":
		return app.runArticlesComment(context, args[1:])
	default:
		fmt.Fprintln(app.out, "usage: petsearch articles list|show|create|comment")
		return ErrUsage
	}
}

func (app *App) runArticlesList(context context.Context, args []string) error {
	set := app.newFlagSet("articles list")
	search := set.String("search", "", "free-text search")
	page := set.Int("page", 1, "page number")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	listing, err := app.articles.List(context, articles.ListFilter{Search: *search, Page: *page})
	if err != nil {
		app.printAPIError(err)
		return err
	}

	now := time.Now()
	fmt.Fprintf(app.out, "%d article(s)\n", listing.Count)
	for _, article := range listing.Results {
		author := pointer.Val(article.AuthorName)
		if author == "" {
			author = "editorial"
		}
		fmt.Fprintf(app.out, "  #%-5d %-45s %s, %s, %d comment(s)\n",
			article.ID, truncate(article.Title, 45), author,
			app.relativeDate(article.PublicationDate, now), article.CommentsCount)
	}
	if next, ok := listing.NextPage(); ok {
		fmt.Fprintf(app.out, "more: petsearch articles list -page %d\n", next)
	}
	return nil
}

func (app *App) runArticlesShow(context context.Context, args []string) error {
	set := app.newFlagSet("articles show")
	id := set.Int64("id", 0, "article id")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}
	if *id <= 0 {
		fmt.Fprintln(app.out, "articles show requires -id")
		return ErrUsage
	}

	detail, err := app.articles.Get(context, *id)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "#%d %s\n", detail.ID, detail.Title)
	if detail.Author != nil {
		fmt.Fprintf(app.out, "by %s, %s\n", detail.Author.DisplayName, app.longDate(detail.PublicationDate))
	}
	fmt.Fprintf(app.out, "\n%s\n", detail.Content)
	if len(detail.Comments) > 0 {
		fmt.Fprintf(app.out, "\n%d comment(s):\n", len(detail.Comments))
		now := time.Now()
		for _, comment := range detail.Comments {
			author := "someone"
			if comment.User != nil {
				author = comment.User.DisplayName
			}
			fmt.Fprintf(app.out, "  %s (%s): %s\n",
				author, app.relativeDate(comment.DateCreated, now), comment.Text)
		}
	}
	return nil
}

func (app *App) runArticlesCreate(context context.Context, args []string) error {
	set := app.newFlagSet("articles create")
	title := set.String("title", "", "article title")
	content := set.String("content", "", "article body")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRoute("/articles/create") {
		return nil
	}
	if *title == "" || *content == "" {
		fmt.Fprintln(app.out, "articles create requires -title and -content")
		return ErrUsage
	}

	detail, err := app.articles.Create(context, articles.CreateInput{Title: *title, Content: *content})
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "published article #%d\n", detail.ID)
	return nil
}

func (app *App) runArticlesComment(context context.Context, args []string) error {
	set := app.newFlagSet("articles comment")
	id := set.Int64("id", 0, "article id")
	text := set.String("text", "", "comment text")
	if err := set.Parse(args); err != nil {
		return ErrUsage
	}

	if !app.checkRequirements("ArticleComment", "/article/{id}",
		guard.Requirements{RequiresAuth: true}) {
		return nil
	}
	if *id <= 0 || *text == "" {
		fmt.Fprintln(app.out, "articles comment requires -id and -text")
		return ErrUsage
	}

	comment, err := app.articles.Comment(context, *id, *text)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "comment #%d posted\n", comment.ID)
	return nil
}

// # Profile Commands

func (app *App) runProfile(context context.Context, args []string) error {
	if len(args) == 0 || args[0] != "show" {
		fmt.Fprintln(app.out, "usage: petsearch profile show -id <id>")
		return ErrUsage
	}

	set := app.newFlagSet("profile show")
	id := set.Int64("id", 0, "member id")
	if err := set.Parse(args[1:]); err != nil {
		return ErrUsage
	}
	if *id <= 0 {
		fmt.Fprintln(app.out, "profile show requires -id")
		return ErrUsage
	}

	page, err := app.profile.Get(context, *id)
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "%s (@%s)\n", page.DisplayName, page.Username)
	if region := pointer.Val(page.Region); region != "" {
		fmt.Fprintf(app.out, "region: %s\n", region)
	}
	fmt.Fprintf(app.out, "%d advertisement(s):\n", len(page.Ads))
	now := time.Now()
	for _, ad := range page.Ads {
		fmt.Fprintf(app.out, "  #%-5d %-10s %-40s %s\n",
			ad.ID, ad.Status, truncate(ad.Title, 40), app.relativeDate(ad.PublicationDate, now))
	}
	return nil
}

// # Administration Commands

func (app *App) runAdmin(context context.Context, args []string) error {
	if len(args) == 0 || args[0] != "users" {
		fmt.Fprintln(app.out, "usage: petsearch admin users [-search <q>] [-role <role>]")
		return ErrUsage
	}

	set := app.newFlagSet("admin users")
	search := set.String("search", "", "free-text search")
	role := set.String("role", "", "role filter")
	page := set.Int("page", 1, "page number")
	if err := set.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	if !app.checkRoute("/admin-panel/users") {
		return nil
	}

	listing, err := app.admin.ListUsers(context, admin.ListFilter{
		Search: *search,
		Role:   *role,
		Page:   *page,
	})
	if err != nil {
		app.printAPIError(err)
		return err
	}

	fmt.Fprintf(app.out, "%d member(s)\n", listing.Count)
	for _, user := range listing.Results {
		state := "active"
		if !user.IsActive {
			state = "disabled"
		}
		role := user.Role
		if user.IsStaff {
			role = "staff"
		}
		fmt.Fprintf(app.out, "  #%-5d %-30s %-10s %s\n", user.ID, user.Email, role, state)
	}
	return nil
}

// # Formatting Helpers

// relativeDate renders a backend timestamp the way listing cards do.
func (app *App) relativeDate(value string, now time.Time) string {
	return timefmt.TimeAgo(timefmt.ParseBackend(value), now)
}

// longDate renders a backend timestamp the way detail pages do.
func (app *App) longDate(value string) string {
	return timefmt.LongDate(timefmt.ParseBackend(value))
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
