// Package listview builds the render model of an event list view from the
// state of its controller.
package listview

import (
	"errors"
	"eventfinder/internal/domain"
	"eventfinder/internal/pagination"
)

const (
	// DateTimeLayout is how event times are shown on cards.
	DateTimeLayout = "2006-01-02 15:04"
	// AudioSrc plays while the easter egg is on.
	AudioSrc = "/static/song.mp3"
	// SignInHref is where guests are sent when they open an event.
	SignInHref = "/signin"
)

var (
	labels = map[domain.SortColumn]string{
		domain.SortCountry: "Country",
		domain.SortName:    "Name",
		domain.SortDate:    "Date",
	}
	easterEggLabels = map[domain.SortColumn]string{
		domain.SortCountry: "SOMEBODY",
		domain.SortName:    "ONCE",
		domain.SortDate:    "TOLD ME",
	}
)

// Card is one event tile.
type Card struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description *string `json:"description,omitempty"`
	DateTime    string  `json:"dateTime"`
	VenueName   string  `json:"venueName"`
	Address     string  `json:"address"`
	Country     string  `json:"country"`
	ZipCode     string  `json:"zipCode"`
	Href        string  `json:"href"`
}

type SortButton struct {
	Column    domain.SortColumn    `json:"column"`
	Label     string               `json:"label"`
	Direction domain.SortDirection `json:"direction"`
	Active    bool                 `json:"active"`
	Disabled  bool                 `json:"disabled"`
}

type View struct {
	ID             string       `json:"id"`
	Items          []Card       `json:"items"`
	Page           int          `json:"page"`
	HasMore        bool         `json:"hasMore"`
	Loading        bool         `json:"loading"`
	SortButtons    []SortButton `json:"sortButtons"`
	FilterDisabled bool         `json:"filterDisabled"`
	EasterEgg      bool         `json:"easterEgg"`
	AudioSrc       string       `json:"audioSrc,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// Input is everything Build reads.
type Input struct {
	ID          string
	State       pagination.State
	Sort        domain.SortDescription
	EasterEggOn bool
	SignedIn    bool
}

func Build(in Input) View {
	v := View{
		ID:             in.ID,
		Items:          make([]Card, 0, len(in.State.Items)),
		Page:           in.State.Page,
		HasMore:        in.State.HasMore,
		Loading:        in.State.Loading,
		FilterDisabled: in.State.Loading,
		EasterEgg:      in.EasterEggOn,
	}
	for _, item := range in.State.Items {
		v.Items = append(v.Items, card(item, in.SignedIn))
	}

	names := labels
	if in.EasterEggOn {
		names = easterEggLabels
		v.AudioSrc = AudioSrc
	}
	for _, col := range domain.SortColumns {
		b := SortButton{Column: col, Label: names[col], Disabled: in.State.Loading}
		if in.Sort.Column == col {
			b.Active = true
			b.Direction = in.Sort.Direction
		}
		v.SortButtons = append(v.SortButtons, b)
	}

	if err := in.State.LastError; err != nil {
		v.Error = err.Error()
		if errors.Is(err, domain.ErrQueryFailed) {
			v.Error = domain.ErrQueryFailed.Error()
		}
	}
	return v
}

func card(item domain.EventListItem, signedIn bool) Card {
	href := SignInHref
	if signedIn {
		href = "/event/" + item.EventID
	}
	return Card{
		ID:          item.EventID,
		Name:        item.EventName,
		ImageURL:    item.EventImageURL,
		Description: item.EventDescription,
		DateTime:    item.EventDateTime.Format(DateTimeLayout),
		VenueName:   item.VenueName,
		Address:     item.VenueAddress,
		Country:     item.VenueCountry,
		ZipCode:     item.VenueZipCode,
		Href:        href,
	}
}
