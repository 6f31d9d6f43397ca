package domain

import (
	"time"
)

// EventListItem is one row of the event list: the event joined with its venue.
type EventListItem struct {
	EventID          string    `json:"eventId"`
	EventName        string    `json:"eventName"`
	EventImageURL    *string   `json:"eventImageUrl"`
	EventDescription *string   `json:"eventDescription"`
	EventDateTime    time.Time `json:"eventDateTime"`
	EventIsDeleted   *bool     `json:"eventIsDeleted"`
	VenueID          string    `json:"venueId"`
	VenueName        string    `json:"venueName"`
	VenueAddress     string    `json:"venueAddress"`
	VenueCountry     string    `json:"venueCountry"`
	VenueZipCode     string    `json:"venueZipCode"`
}

// EventDetail is a single event with the genres it is tagged with.
type EventDetail struct {
	EventListItem
	Genres []Genre `json:"genres"`
}

type Genre struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	IsDeleted bool    `json:"isDeleted"`
}

type Venue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// Event is the write model used when importing the catalog.
type Event struct {
	ID          string
	Name        string
	ImageURL    *string
	Description *string
	DateTime    time.Time
	IsDeleted   *bool
	VenueID     string
	GenreIDs    []string
}

// Catalog is a set of venues, genres and events imported together.
type Catalog struct {
	Venues []Venue
	Genres []Genre
	Events []Event
}

// Profile represents the user profile document stored in Firestore.
type Profile struct {
	ID        string    `json:"id" firestore:"id"`
	Username  string    `json:"username" firestore:"username"`
	Bio       string    `json:"bio" firestore:"bio"`
	ImageURL  string    `json:"image_url" firestore:"image_url"`
	GenreIDs  []string  `json:"genre_ids" firestore:"genre_ids"`
	FriendIDs []string  `json:"friend_ids" firestore:"friend_ids"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// APIResponse is a standard wrapper for responses
type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	Meta  interface{} `json:"meta,omitempty"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	HasMore       bool   `json:"has_more"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

type APIPaginationResponse struct {
	Data []EventListItem `json:"data"`
	Meta *Meta           `json:"meta,omitempty"`
}
