package models

// Kind discriminates the two content variants
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// WatchStatus tracks the user's progress through an item.
// The empty string means the item is not tracked.
type WatchStatus string

const (
	StatusWantToWatch WatchStatus = "want-to-watch"
	StatusWatching    WatchStatus = "watching"
	StatusCompleted   WatchStatus = "completed"
	StatusDropped     WatchStatus = "dropped"
)

// Valid reports whether s is one of the known watch statuses.
// The empty string counts as valid and clears the status.
func (s WatchStatus) Valid() bool {
	switch s {
	case "", StatusWantToWatch, StatusWatching, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// SeriesStatus represents the production status of a series
type SeriesStatus string

const (
	SeriesOngoing   SeriesStatus = "ongoing"
	SeriesCompleted SeriesStatus = "completed"
	SeriesCancelled SeriesStatus = "cancelled"
)

// FilterType narrows a content listing by variant
type FilterType string

const (
	FilterAll    FilterType = "all"
	FilterMovies FilterType = "movies"
	FilterSeries FilterType = "series"
)

// Genres is the canonical genre catalogue offered to clients
var Genres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History", "Horror",
	"Music", "Mystery", "Romance", "Sci-Fi", "Sport", "Thriller",
	"War", "Western",
}
