package store

import (
	"sort"
	"strings"

	"synopsis/internal/models"
)

// Filtered returns the collection narrowed by filter and query, sorted by
// updatedAt descending. The query matches title or synopsis
// case-insensitively; equal timestamps keep their stored order.
func (s *Store) Filtered(filter models.FilterType, query string) []models.ContentItem {
	items := s.Items()

	out := items[:0]
	q := strings.ToLower(query)
	for _, item := range items {
		switch filter {
		case models.FilterMovies:
			if !item.IsMovie() {
				continue
			}
		case models.FilterSeries:
			if !item.IsSeries() {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Synopsis), q) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// WatchlistView groups the items a user has queued or is in the middle of
type WatchlistView struct {
	WantToWatch []models.ContentItem `json:"wantToWatch"`
	Watching    []models.ContentItem `json:"watching"`
}

// Watchlist returns items with want-to-watch status plus the ones
// currently being watched, each sorted by updatedAt descending
func (s *Store) Watchlist() WatchlistView {
	view := WatchlistView{
		WantToWatch: []models.ContentItem{},
		Watching:    []models.ContentItem{},
	}
	for _, item := range s.Filtered(models.FilterAll, "") {
		switch item.WatchStatus {
		case models.StatusWantToWatch:
			view.WantToWatch = append(view.WantToWatch, item)
		case models.StatusWatching:
			view.Watching = append(view.Watching, item)
		}
	}
	return view
}

// Stats summarizes the collection
type Stats struct {
	TotalItems      int                        `json:"total_items"`
	Movies          int                        `json:"movies"`
	Series          int                        `json:"series"`
	Favorites       int                        `json:"favorites"`
	CompletedMovies int                        `json:"completed_movies"`
	CompletedSeries int                        `json:"completed_series"`
	ByStatus        map[models.WatchStatus]int `json:"by_status"`
	AverageRating   float64                    `json:"average_rating"`
}

// ComputeStats derives collection statistics from the current snapshot.
// AverageRating averages over rated items only and is zero when nothing
// is rated.
func (s *Store) ComputeStats() Stats {
	stats := Stats{ByStatus: make(map[models.WatchStatus]int)}

	ratingSum := 0
	rated := 0
	for _, item := range s.Items() {
		stats.TotalItems++
		if item.IsMovie() {
			stats.Movies++
			if item.WatchStatus == models.StatusCompleted {
				stats.CompletedMovies++
			}
		} else {
			stats.Series++
			if item.WatchStatus == models.StatusCompleted {
				stats.CompletedSeries++
			}
		}
		if item.IsFavorite {
			stats.Favorites++
		}
		if item.WatchStatus != "" {
			stats.ByStatus[item.WatchStatus]++
		}
		if item.Rating != nil {
			ratingSum += *item.Rating
			rated++
		}
	}

	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}
	return stats
}
