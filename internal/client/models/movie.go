// Package models defines the catalog entities exchanged with the REST mock API.
package models

import (
	"fmt"
	"strings"
)

// MovieType is the catalog "type" column.
type MovieType string

const (
	MovieTypeMovie    MovieType = "Movie"
	MovieTypeTVSeries MovieType = "TV Series"
)

// Movie is a catalog record. ID is a string on the wire but numeric in
// practice; ordering code coerces it to a number.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        MovieType `json:"type"`
	Year        string    `json:"year"`
	Genre       []string  `json:"genre"`
	Director    string    `json:"director"`
	IMDbRating  float64   `json:"imdb_rating"`
	Description string    `json:"description"`
	Runtime     string    `json:"runtime"`
	Language    string    `json:"language"`
	Country     string    `json:"country"`
	Poster      string    `json:"poster"`
	Trailer     string    `json:"trailer"`
}

// HasGenre reports whether g is one of the movie's genres.
func (m Movie) HasGenre(g string) bool {
	for _, x := range m.Genre {
		if x == g {
			return true
		}
	}
	return false
}

func (m Movie) String() string {
	return fmt.Sprintf("[%s] %s (%s, %s) %.1f %s", m.ID, m.Title, m.Year, m.Type, m.IMDbRating, strings.Join(m.Genre, "/"))
}
