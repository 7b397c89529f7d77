// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package ads is the typed client for the advertisement resources.

Advertisements are the heart of the site: lost/found/giveaway listings for
animals, with photos, a location derived from the author's region, and
reader responses. The package mirrors the backend's list/detail serializer
split: listings carry a trimmed card shape, the detail view the full record.
*/
package ads

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

// Animal is the card-level animal summary inside a listing.
type Animal struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	Color     string  `json:"color"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

// Owner is the card-level author summary inside a listing.
type Owner struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Region      *int64 `json:"region"`
}

// Ad is one advertisement card in a paginated listing.
type Ad struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Animal           *Animal  `json:"animal"`
	User             *Owner   `json:"user"`
	Status           string   `json:"status"`
	ShortDescription string   `json:"short_description"`
	PublicationDate  string   `json:"publication_date"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	FirstPhotoURL    *string  `json:"first_photo_url"`
	Location         string   `json:"location"`
}

// Author is the full author record on the detail view.
type Author struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	AvatarURL   *string `json:"avatar_url"`
	Region      *int64  `json:"region"`
}

// AnimalDetail extends the animal summary with the derived age string.
type AnimalDetail struct {
	Animal
	AgeYearsMonths string `json:"age_years_months"`
}

// Photo is one advertisement photo.
type Photo struct {
	ID       int64   `json:"id"`
	ImageURL *string `json:"image_url"`
}

// Response is one reader response under an advertisement.
type Response struct {
	ID          int64   `json:"id"`
	User        *Author `json:"user"`
	Message     string  `json:"message"`
	DateCreated string  `json:"date_created"`
}

// AdDetail is the complete advertisement record.
type AdDetail struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Animal          *AnimalDetail `json:"animal"`
	User            *Author       `json:"user"`
	Status          string        `json:"status"`
	PublicationDate string        `json:"publication_date"`
	Latitude        *float64      `json:"latitude"`
	Longitude       *float64      `json:"longitude"`
	Photos          []Photo       `json:"photos"`
	Responses       []Response    `json:"responses"`
	Location        string        `json:"location"`
}

// # Listing Filters

// Age category values accepted by the listing filter.
const (
	AgeUnderSixMonths = "0_0.5"
	AgeSixToTwelve    = "0.5_1"
	AgeOneToThree     = "1_3"
	AgeThreeToSeven   = "3_7"
	AgeOverSeven      = "7_inf"
	AgeUnknown        = "unknown"
)

// ListFilter narrows and pages the advertisement listing. Zero values are
// omitted from the query.
type ListFilter struct {
	Region      int64
	AdStatus    int64
	Species     int64
	Gender      int64
	Color       int64
	AgeCategory string
	Search      string
	Page        int
	PageSize    int
}

// query encodes the filter as the backend's expected query parameters.
func (filter ListFilter) query() string {
	values := url.Values{}

	setID := func(key string, id int64) {
		if id > 0 {
			values.Set(key, strconv.FormatInt(id, 10))
		}
	}

	setID("region", filter.Region)
	setID("ad_status", filter.AdStatus)
	setID("species", filter.Species)
	setID("gender", filter.Gender)
	setID("color", filter.Color)

	if filter.AgeCategory != "" {
		values.Set("age_category", filter.AgeCategory)
	}
	if filter.Search != "" {
		values.Set("search", filter.Search)
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

// # Client

// Client calls the advertisement endpoints through the shared transport.
type Client struct {
	transport *transport.Client
}

// NewClient constructs an advertisement [*Client].
func NewClient(client *transport.Client) *Client {
	return &Client{transport: client}
}

// List fetches one page of advertisement cards matching the filter.
func (client *Client) List(context context.Context, filter ListFilter) (*pagination.Page[Ad], error) {
	var page pagination.Page[Ad]
	path := constants.EndpointAdvertisements + filter.query()
	if err := client.transport.GetJSON(context, path, &page); err != nil {
		return nil, fmt.Errorf("ads_list_failed: %w", err)
	}
	return &page, nil
}

// Get fetches the full advertisement record.
func (client *Client) Get(context context.Context, id int64) (*AdDetail, error) {
	var detail AdDetail
	path := fmt.Sprintf("%s%d/", constants.EndpointAdvertisements, id)
	if err := client.transport.GetJSON(context, path, &detail); err != nil {
		return nil, fmt.Errorf("ads_get_failed: %w", err)
	}
	return &detail, nil
}

// CreateInput is the payload for publishing a new advertisement.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      int64    `json:"status"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	AnimalName      string `json:"animal_name,omitempty"`
	AnimalSpecies   int64  `json:"animal_species,omitempty"`
	AnimalBreed     int64  `json:"animal_breed,omitempty"`
	AnimalColor     int64  `json:"animal_color,omitempty"`
	AnimalGender    string `json:"animal_gender,omitempty"`
	AnimalBirthDate string `json:"animal_birth_date,omitempty"`
}

// Create publishes a new advertisement. Requires an authenticated session.
func (client *Client) Create(context context.Context, input CreateInput) (*AdDetail, error) {
	var detail AdDetail
	if err := client.transport.PostJSON(context, constants.EndpointAdvertisements, input, &detail); err != nil {
		return nil, fmt.Errorf("ads_create_failed: %w", err)
	}
	return &detail, nil
}

// Respond posts a reader response under an advertisement. Requires an
// authenticated session.
func (client *Client) Respond(context context.Context, adID int64, message string) (*Response, error) {
	path := fmt.Sprintf("%s%d/responses/", constants.EndpointAdvertisements, adID)
	payload := map[string]string{"message": message}

	var response Response
	if err := client.transport.PostJSON(context, path, payload, &response); err != nil {
		return nil, fmt.Errorf("ads_respond_failed: %w", err)
	}
	return &response, nil
}

// # Filter Options

// Option is one selectable id/name pair for a listing filter.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Choice is one value/label pair for enumerated filters.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions is the complete set of selectable filter values.
type FilterOptions struct {
	Regions       []Option `json:"regions"`
	Species       []Option `json:"species"`
	AdStatuses    []Option `json:"ad_statuses"`
	Colors        []Option `json:"colors"`
	Genders       []Choice `json:"genders"`
	AgeCategories []Choice `json:"age_categories"`
}

// FilterOptions fetches the selectable values for the listing filters.
func (client *Client) FilterOptions(context context.Context) (*FilterOptions, error) {
	var options FilterOptions
	if err := client.transport.GetJSON(context, constants.EndpointFilterOptions, &options); err != nil {
		return nil, fmt.Errorf("ads_filter_options_failed: %w", err)
	}
	return &options, nil
}

// Breed is one selectable breed, tied to a species.
type Breed struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Species int64  `json:"species"`
}

// Breeds fetches the breed list, optionally narrowed to one species.
func (client *Client) Breeds(context context.Context, speciesID int64) ([]Breed, error) {
	path := constants.EndpointBreeds
	if speciesID > 0 {
		path += "?species=" + strconv.FormatInt(speciesID, 10)
	}

	var breeds []Breed
	if err := client.transport.GetJSON(context, path, &breeds); err != nil {
		return nil, fmt.Errorf("ads_breeds_failed: %w", err)
	}
	return breeds, nil
}
