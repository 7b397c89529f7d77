// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Package articles is the typed client for the editorial article resources:
// paginated article cards, full articles with their comment threads, and
// the category list used for filtering.
package articles

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okunevich/petsearch/internal/platform/constants"
	"github.com/okunevich/petsearch/internal/transport"
	"github.com/okunevich/petsearch/pkg/pagination"
)

// # Domain Entities

// Category is one editorial category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Article is one article card in a paginated listing.
type Article struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	PublicationDate string     `json:"publication_date"`
	AuthorName      *string    `json:"author_name"`
	MainImageURL    *string    `json:"main_image_url"`
	Categories      []Category `json:"categories"`
	CommentsCount   int64      `json:"comments_count"`
}

// Author is the article author summary on the detail view.
type Author struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// CommentAuthor is the trimmed author shape attached to comments.
type CommentAuthor struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	Username    string  `json:"username"`
	AvatarURL   *string `json:"avatar_url"`
}

// Comment is one comment under an article.
type Comment struct {
	ID          int64          `json:"id"`
	Article     int64          `json:"article"`
	User        *CommentAuthor `json:"user"`
	Text        string         `json:"text"`
	DateCreated string         `json:"date_created"`
}

// ArticleDetail is the complete article record with its comment thread.
type ArticleDetail struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	PublicationDate string     `json:"publication_date"`
	Author          *Author    `json:"author"`
	MainImageURL    *string    `json:"main_image_url"`
	Categories      []Category `json:"categories"`
	Comments        []Comment  `json:"comments"`
}

// # Client

// Client calls the article endpoints through the shared transport.
type Client struct {
	transport *transport.Client
}

// NewClient constructs an article [*Client].
func NewClient(client *transport.Client) *Client {
	return &Client{transport: client}
}

// ListFilter narrows and pages the article listing.
type ListFilter struct {
	// Search matches against title, content, and author display name.
	Search   string
	Category int64
	Page     int
	PageSize int
}

func (filter ListFilter) query() string {
	values := url.Values{}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	if filter.Category > 0 {
		values.Set("category", strconv.FormatInt(filter.Category, 10))
	}
	if filter.Page > 1 {
		values.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// List fetches one page of article cards matching the filter.
func (client *Client) List(context context.Context, filter ListFilter) (*pagination.Page[Article], error) {
	var page pagination.Page[Article]
	path := constants.EndpointArticles + filter.query()
	if err := client.transport.GetJSON(context, path, &page); err != nil {
		return nil, fmt.Errorf("articles_list_failed: %w", err)
	}
	return &page, nil
}

// Get fetches the full article with its comment thread.
func (client *Client) Get(context context.Context, id int64) (*ArticleDetail, error) {
	var detail ArticleDetail
	path := fmt.Sprintf("%s%d/", constants.EndpointArticles, id)
	if err := client.transport.GetJSON(context, path, &detail); err != nil {
		return nil, fmt.Errorf("articles_get_failed: %w", err)
	}
	return &detail, nil
}

// CreateInput is the payload for publishing a new article. Publishing is
// restricted to staff on the backend side.
type CreateInput struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Excerpt    string  `json:"excerpt,omitempty"`
	Categories []int64 `json:"categories,omitempty"`
}

// Create publishes a new article.
func (client *Client) Create(context context.Context, input CreateInput) (*ArticleDetail, error) {
	var detail ArticleDetail
	if err := client.transport.PostJSON(context, constants.EndpointArticles, input, &detail); err != nil {
		return nil, fmt.Errorf("articles_create_failed: %w", err)
	}
	return &detail, nil
}

// Comment posts a comment under an article. Requires an authenticated
// session.
func (client *Client) Comment(context context.Context, articleID int64, text string) (*Comment, error) {
	path := fmt.Sprintf("%s%d/comments/", constants.EndpointArticles, articleID)
	payload := map[string]string{"text": text}

	var comment Comment
	if err := client.transport.PostJSON(context, path, payload, &comment); err != nil {
		return nil, fmt.Errorf("articles_comment_failed: %w", err)
	}
	return &comment, nil
}

// Categories fetches the unpaginated editorial category list.
func (client *Client) Categories(context context.Context) ([]Category, error) {
	var categories []Category
	if err := client.transport.GetJSON(context, constants.EndpointArticleCategories, &categories); err != nil {
		return nil, fmt.Errorf("articles_categories_failed: %w", err)
	}
	return categories, nil
}
