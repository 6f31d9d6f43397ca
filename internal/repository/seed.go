package repository

import (
	"eventfinder/internal/domain"
	"fmt"
	"time"
)

// DemoCatalog returns a deterministic catalog for local development:
// venues in several countries, a handful of genres and count events spread
// over the days after start. Every tenth event is a parking listing, which
// the event list never shows.
func DemoCatalog(start time.Time, count int) *domain.Catalog {
	venues := []domain.Venue{
		{ID: "venue-arena", Name: "Spodek Arena", Address: "al. Korfantego 35", Country: "Poland", ZipCode: "40-005"},
		{ID: "venue-hall", Name: "Harbour Hall", Address: "Kaiser-Wilhelm-Str. 1", Country: "Germany", ZipCode: "20355"},
		{ID: "venue-club", Name: "Blue Note Club", Address: "131 W 3rd St", Country: "United States", ZipCode: "10012"},
		{ID: "venue-park", Name: "Open Air Park", Address: "Parkweg 12", Country: "Netherlands", ZipCode: "1011"},
		{ID: "venue-cellar", Name: "Stone Cellar", Address: "Rua Augusta 200", Country: "Portugal", ZipCode: "1100-053"},
	}
	genreNames := []string{"Rock", "Jazz", "Electronic", "Hip-Hop", "Classical", "Metal"}
	genres := make([]domain.Genre, len(genreNames))
	for i, name := range genreNames {
		genres[i] = domain.Genre{ID: fmt.Sprintf("genre-%d", i+1), Name: name}
	}

	events := make([]domain.Event, 0, count)
	for i := 0; i < count; i++ {
		venue := venues[i%len(venues)]
		primary := genres[i%len(genres)]
		secondary := genres[(i+2)%len(genres)]

		name := fmt.Sprintf("%s Night #%d", primary.Name, i+1)
		if i%10 == 9 {
			name = fmt.Sprintf("Parking pass #%d", i+1)
		}
		description := fmt.Sprintf("%s and %s at %s", primary.Name, secondary.Name, venue.Name)

		events = append(events, domain.Event{
			ID:          fmt.Sprintf("event-%04d", i+1),
			Name:        name,
			Description: &description,
			DateTime:    start.Add(time.Duration(i) * 18 * time.Hour).UTC(),
			VenueID:     venue.ID,
			GenreIDs:    []string{primary.ID, secondary.ID},
		})
	}

	return &domain.Catalog{Venues: venues, Genres: genres, Events: events}
}
