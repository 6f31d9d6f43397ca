package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var Validate = validator.New()

// DateLayout is the layout of an HTML date input.
const DateLayout = "2006-01-02"

// EventListDTO binds the query parameters of GET /events. Zero Page and
// PageSize mean the defaults.
type EventListDTO struct {
	Query     string   `validate:"max=200"`
	GenreIDs  []string `validate:"max=50,dive,required"`
	StartDate string
	EndDate   string
	SortKey   string `validate:"omitempty,oneof=none country name date"`
	SortDir   string `validate:"omitempty,oneof=none asc desc up down"`
	Page      int    `validate:"omitempty,gte=1"`
	PageSize  int    `validate:"omitempty,gte=1,lte=100"`
	PageToken string
}

type VenueDTO struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Country string `json:"country" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

type GenreDTO struct {
	ID   string  `json:"id" validate:"required"`
	Name string  `json:"name" validate:"required"`
	Icon *string `json:"icon"`
}

// EventDTO is used for API input of catalog imports.
// Events without an id get a generated one.
type EventDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	Description *string  `json:"description" validate:"omitempty,max=4096"`
	DateTime    string   `json:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	VenueID     string   `json:"venue_id" validate:"required"`
	GenreIDs    []string `json:"genre_ids" validate:"dive,required"`
}

// BatchEventRequest imports venues, genres and events in one transaction.
type BatchEventRequest struct {
	Venues []VenueDTO `json:"venues" validate:"dive"`
	Genres []GenreDTO `json:"genres" validate:"dive"`
	Events []EventDTO `json:"events" validate:"required,min=1,max=500,dive"`
}

// ProfileDTO mirrors the rules of the profile form.
type ProfileDTO struct {
	Username string   `json:"username" validate:"required,min=3,max=16"`
	Bio      string   `json:"bio" validate:"max=1024"`
	GenreIDs []string `json:"genre_ids" validate:"dive,required"`
	ImageURL string   `json:"image_url" validate:"omitempty,url"`
}

func EventDTOToModel(dto *EventDTO) (*Event, error) {
	t, err := time.Parse(time.RFC3339, dto.DateTime)
	if err != nil {
		return nil, ErrValidation("datetime must be RFC3339")
	}
	id := dto.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &Event{
		ID:          id,
		Name:        dto.Name,
		ImageURL:    dto.ImageURL,
		Description: dto.Description,
		DateTime:    t.UTC(),
		VenueID:     dto.VenueID,
		GenreIDs:    dto.GenreIDs,
	}, nil
}

func BatchRequestToCatalog(req *BatchEventRequest) (*Catalog, error) {
	catalog := &Catalog{}
	for _, v := range req.Venues {
		catalog.Venues = append(catalog.Venues, Venue(v))
	}
	for _, g := range req.Genres {
		catalog.Genres = append(catalog.Genres, Genre{ID: g.ID, Name: g.Name, Icon: g.Icon})
	}
	for i := range req.Events {
		e, err := EventDTOToModel(&req.Events[i])
		if err != nil {
			return nil, err
		}
		catalog.Events = append(catalog.Events, *e)
	}
	return catalog, nil
}

// ParseDateBound parses an optional date bound. Empty input is an unset bound.
// Plain dates are taken as midnight UTC for a lower bound and the last
// instant of the day for an upper bound, so a single-day range is inclusive.
func ParseDateBound(s string, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, ErrValidation("date must be YYYY-MM-DD or RFC3339: " + s)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}
