package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"synopsis/internal/models"
	"synopsis/internal/storage"
)

// ContentKey is the document key the content collection persists under
const ContentKey = "content"

// Store owns the canonical content collection. Every mutation copies the
// last confirmed snapshot, transforms the copy, writes the whole document
// to the backend, and only then publishes the copy to readers; a failed
// write leaves the confirmed snapshot untouched. A single mutex serializes
// mutations so operations apply atomically in submission order.
type Store struct {
	backend storage.Backend
	key     string
	logger  *logrus.Logger

	now   func() time.Time
	newID func() string

	mu    sync.RWMutex
	items []models.ContentItem
}

// New creates a content store over the given backend
func New(backend storage.Backend, logger *logrus.Logger) *Store {
	return &Store{
		backend: backend,
		key:     ContentKey,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Load reads the persisted collection into memory. An absent document
// loads as an empty collection; a document that fails to decode returns
// ErrCorrupted.
func (s *Store) Load() error {
	raw, err := s.backend.Get(s.key)
	if err != nil {
		return fmt.Errorf("storage read failed: %w", err)
	}
	if raw == nil {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()
		s.logger.Debug("No persisted content, starting empty")
		return nil
	}

	var items []models.ContentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.logger.WithField("items", len(items)).Info("Content loaded")
	return nil
}

// mutate runs transform over a deep copy of the current collection.
// transform returns the new collection and whether anything changed; an
// unchanged collection skips the backend write entirely.
func (s *Store) mutate(transform func([]models.ContentItem) ([]models.ContentItem, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ContentItem, len(s.items))
	for i := range s.items {
		next[i] = s.items[i].Clone()
	}

	next, applied := transform(next)
	if !applied {
		return false, nil
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("failed to encode content: %w", err)
	}
	if err := s.backend.Set(s.key, raw); err != nil {
		return false, fmt.Errorf("storage write failed: %w", err)
	}

	s.items = next
	return true, nil
}

// MovieFields holds the caller-supplied attributes of a new movie.
// Identifier and timestamps are generated by the store.
type MovieFields struct {
	Title         string             `json:"title"`
	ImageURL      string             `json:"imageUrl"`
	Synopsis      string             `json:"synopsis"`
	Year          string             `json:"year"`
	Genre         string             `json:"genre"`
	Director      string             `json:"director"`
	Cast          []string           `json:"cast"`
	Runtime       *int               `json:"runtime"`
	Rating        *int               `json:"rating"`
	Tags          []string           `json:"tags"`
	WatchStatus   models.WatchStatus `json:"watchStatus"`
	PersonalNotes string             `json:"personalNotes"`
	DateWatched   *time.Time         `json:"dateWatched"`
	IsFavorite    bool               `json:"isFavorite"`
}

// SeriesFields holds the caller-supplied attributes of a new series
type SeriesFields struct {
	Title         string              `json:"title"`
	ImageURL      string              `json:"imageUrl"`
	Synopsis      string              `json:"synopsis"`
	Year          string              `json:"year"`
	Genre         string              `json:"genre"`
	Creator       string              `json:"creator"`
	Cast          []string            `json:"cast"`
	Network       string              `json:"network"`
	SeriesStatus  models.SeriesStatus `json:"status"`
	Rating        *int                `json:"rating"`
	Tags          []string            `json:"tags"`
	WatchStatus   models.WatchStatus  `json:"watchStatus"`
	PersonalNotes string              `json:"personalNotes"`
	IsFavorite    bool                `json:"isFavorite"`
	Seasons       []SeasonFields      `json:"seasons"`
}

// SeasonFields holds the caller-supplied attributes of a new season
type SeasonFields struct {
	SeasonNumber int             `json:"seasonNumber"`
	Episodes     []EpisodeFields `json:"episodes"`
}

// EpisodeFields holds the caller-supplied attributes of a new episode
type EpisodeFields struct {
	EpisodeNumber int        `json:"episodeNumber"`
	Title         string     `json:"title"`
	Synopsis      string     `json:"synopsis"`
	AirDate       *time.Time `json:"airDate"`
	Runtime       *int       `json:"runtime"`
	Rating        *int       `json:"rating"`
	IsWatched     bool       `json:"isWatched"`
	DateWatched   *time.Time `json:"dateWatched"`
	PersonalNotes string     `json:"personalNotes"`
}

func validateEpisodeRatings(episodes []EpisodeFields) error {
	for _, ef := range episodes {
		if !validRating(ef.Rating) {
			return ratingErr("rating")
		}
	}
	return nil
}

func validateCreation(title, imageURL, synopsis string, rating *int, status models.WatchStatus) error {
	if title == "" {
		return requiredErr("title")
	}
	if imageURL == "" {
		return requiredErr("imageUrl")
	}
	if synopsis == "" {
		return requiredErr("synopsis")
	}
	if !validRating(rating) {
		return ratingErr("rating")
	}
	if !status.Valid() {
		return &ValidationError{Field: "watchStatus", Reason: "unknown status"}
	}
	return nil
}

// AddMovie validates fields, generates identifier and timestamps, appends
// the movie and persists the collection
func (s *Store) AddMovie(fields MovieFields) (models.ContentItem, error) {
	if err := validateCreation(fields.Title, fields.ImageURL, fields.Synopsis, fields.Rating, fields.WatchStatus); err != nil {
		return models.ContentItem{}, err
	}

	now := s.now()
	item := models.ContentItem{
		ID:            s.newID(),
		Kind:          models.KindMovie,
		Title:         fields.Title,
		ImageURL:      fields.ImageURL,
		Synopsis:      fields.Synopsis,
		Year:          fields.Year,
		Genre:         fields.Genre,
		Director:      fields.Director,
		Cast:          fields.Cast,
		Runtime:       fields.Runtime,
		Rating:        fields.Rating,
		Tags:          fields.Tags,
		WatchStatus:   fields.WatchStatus,
		PersonalNotes: fields.PersonalNotes,
		DateWatched:   fields.DateWatched,
		IsFavorite:    fields.IsFavorite,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		return append(items, item.Clone()), true
	})
	if err != nil {
		return models.ContentItem{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":    item.ID,
		"title": item.Title,
	}).Info("Movie added")
	return item, nil
}

// AddSeries validates fields, generates identifiers for the series and any
// supplied seasons/episodes, appends and persists
func (s *Store) AddSeries(fields SeriesFields) (models.ContentItem, error) {
	if err := validateCreation(fields.Title, fields.ImageURL, fields.Synopsis, fields.Rating, fields.WatchStatus); err != nil {
		return models.ContentItem{}, err
	}
	for _, sf := range fields.Seasons {
		if err := validateEpisodeRatings(sf.Episodes); err != nil {
			return models.ContentItem{}, err
		}
	}

	now := s.now()
	seasons := make([]models.Season, 0, len(fields.Seasons))
	for _, sf := range fields.Seasons {
		seasons = append(seasons, s.buildSeason(sf))
	}

	item := models.ContentItem{
		ID:            s.newID(),
		Kind:          models.KindSeries,
		Title:         fields.Title,
		ImageURL:      fields.ImageURL,
		Synopsis:      fields.Synopsis,
		Year:          fields.Year,
		Genre:         fields.Genre,
		Creator:       fields.Creator,
		Cast:          fields.Cast,
		Network:       fields.Network,
		SeriesStatus:  fields.SeriesStatus,
		Rating:        fields.Rating,
		Tags:          fields.Tags,
		WatchStatus:   fields.WatchStatus,
		PersonalNotes: fields.PersonalNotes,
		IsFavorite:    fields.IsFavorite,
		Seasons:       seasons,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		return append(items, item.Clone()), true
	})
	if err != nil {
		return models.ContentItem{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      item.ID,
		"title":   item.Title,
		"seasons": len(item.Seasons),
	}).Info("Series added")
	return item, nil
}

func (s *Store) buildSeason(fields SeasonFields) models.Season {
	episodes := make([]models.Episode, 0, len(fields.Episodes))
	for _, ef := range fields.Episodes {
		episodes = append(episodes, s.buildEpisode(ef))
	}
	return models.Season{
		ID:           s.newID(),
		SeasonNumber: fields.SeasonNumber,
		Episodes:     episodes,
	}
}

func (s *Store) buildEpisode(fields EpisodeFields) models.Episode {
	return models.Episode{
		ID:            s.newID(),
		EpisodeNumber: fields.EpisodeNumber,
		Title:         fields.Title,
		Synopsis:      fields.Synopsis,
		AirDate:       fields.AirDate,
		Runtime:       fields.Runtime,
		Rating:        fields.Rating,
		IsWatched:     fields.IsWatched,
		DateWatched:   fields.DateWatched,
		PersonalNotes: fields.PersonalNotes,
	}
}

// ContentPatch is a partial update of a ContentItem. Nil fields are left
// unchanged; set fields overwrite. The item's kind never changes.
type ContentPatch struct {
	Title         *string              `json:"title"`
	ImageURL      *string              `json:"imageUrl"`
	Synopsis      *string              `json:"synopsis"`
	Year          *string              `json:"year"`
	Genre         *string              `json:"genre"`
	Director      *string              `json:"director"`
	Creator       *string              `json:"creator"`
	Network       *string              `json:"network"`
	SeriesStatus  *models.SeriesStatus `json:"status"`
	Cast          *[]string            `json:"cast"`
	Runtime       *int                 `json:"runtime"`
	Rating        *int                 `json:"rating"`
	Tags          *[]string            `json:"tags"`
	WatchStatus   *models.WatchStatus  `json:"watchStatus"`
	PersonalNotes *string              `json:"personalNotes"`
	DateWatched   *time.Time           `json:"dateWatched"`
	IsFavorite    *bool                `json:"isFavorite"`
}

func (p *ContentPatch) apply(item *models.ContentItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.Synopsis != nil {
		item.Synopsis = *p.Synopsis
	}
	if p.Year != nil {
		item.Year = *p.Year
	}
	if p.Genre != nil {
		item.Genre = *p.Genre
	}
	if p.Director != nil {
		item.Director = *p.Director
	}
	if p.Creator != nil {
		item.Creator = *p.Creator
	}
	if p.Network != nil {
		item.Network = *p.Network
	}
	if p.SeriesStatus != nil {
		item.SeriesStatus = *p.SeriesStatus
	}
	if p.Cast != nil {
		item.Cast = *p.Cast
	}
	if p.Runtime != nil {
		item.Runtime = p.Runtime
	}
	if p.Rating != nil {
		item.Rating = p.Rating
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.WatchStatus != nil {
		item.WatchStatus = *p.WatchStatus
	}
	if p.PersonalNotes != nil {
		item.PersonalNotes = *p.PersonalNotes
	}
	if p.DateWatched != nil {
		item.DateWatched = p.DateWatched
	}
	if p.IsFavorite != nil {
		item.IsFavorite = *p.IsFavorite
	}
}

// UpdateContent merges patch into the item matching id and refreshes its
// updatedAt. Returns false without error when no item matches.
func (s *Store) UpdateContent(id string, patch ContentPatch) (bool, error) {
	if !validRating(patch.Rating) {
		return false, ratingErr("rating")
	}
	if patch.WatchStatus != nil && !patch.WatchStatus.Valid() {
		return false, &ValidationError{Field: "watchStatus", Reason: "unknown status"}
	}

	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		for i := range items {
			if items[i].ID == id {
				patch.apply(&items[i])
				items[i].UpdatedAt = s.now()
				return items, true
			}
		}
		return items, false
	})
}

// DeleteContent removes the item matching id along with everything it
// owns. Returns false without error when no item matches.
func (s *Store) DeleteContent(id string) (bool, error) {
	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

// AddSeason appends a season to the series matching seriesID, in the order
// supplied. Returns false when the id is unknown or names a movie.
func (s *Store) AddSeason(seriesID string, fields SeasonFields) (bool, error) {
	if err := validateEpisodeRatings(fields.Episodes); err != nil {
		return false, err
	}

	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		for i := range items {
			if items[i].ID == seriesID && items[i].IsSeries() {
				items[i].Seasons = append(items[i].Seasons, s.buildSeason(fields))
				items[i].UpdatedAt = s.now()
				return items, true
			}
		}
		return items, false
	})
}

// AddEpisode appends an episode to the season matching seriesID/seasonID.
// Returns false when any id in the chain does not resolve.
func (s *Store) AddEpisode(seriesID, seasonID string, fields EpisodeFields) (bool, error) {
	if !validRating(fields.Rating) {
		return false, ratingErr("rating")
	}

	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		item, season := findSeason(items, seriesID, seasonID)
		if season == nil {
			return items, false
		}
		season.Episodes = append(season.Episodes, s.buildEpisode(fields))
		item.UpdatedAt = s.now()
		return items, true
	})
}

// EpisodePatch is a partial update of an episode
type EpisodePatch struct {
	EpisodeNumber *int       `json:"episodeNumber"`
	Title         *string    `json:"title"`
	Synopsis      *string    `json:"synopsis"`
	AirDate       *time.Time `json:"airDate"`
	Runtime       *int       `json:"runtime"`
	Rating        *int       `json:"rating"`
	IsWatched     *bool      `json:"isWatched"`
	DateWatched   *time.Time `json:"dateWatched"`
	PersonalNotes *string    `json:"personalNotes"`
}

func (p *EpisodePatch) apply(ep *models.Episode) {
	if p.EpisodeNumber != nil {
		ep.EpisodeNumber = *p.EpisodeNumber
	}
	if p.Title != nil {
		ep.Title = *p.Title
	}
	if p.Synopsis != nil {
		ep.Synopsis = *p.Synopsis
	}
	if p.AirDate != nil {
		ep.AirDate = p.AirDate
	}
	if p.Runtime != nil {
		ep.Runtime = p.Runtime
	}
	if p.Rating != nil {
		ep.Rating = p.Rating
	}
	if p.IsWatched != nil {
		ep.IsWatched = *p.IsWatched
	}
	if p.DateWatched != nil {
		ep.DateWatched = p.DateWatched
	}
	if p.PersonalNotes != nil {
		ep.PersonalNotes = *p.PersonalNotes
	}
}

// UpdateEpisode merges patch into the episode matching the id chain and
// refreshes the owning item's updatedAt. Returns false when any id in the
// chain does not resolve.
func (s *Store) UpdateEpisode(seriesID, seasonID, episodeID string, patch EpisodePatch) (bool, error) {
	if !validRating(patch.Rating) {
		return false, ratingErr("rating")
	}

	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		item, ep := findEpisode(items, seriesID, seasonID, episodeID)
		if ep == nil {
			return items, false
		}
		patch.apply(ep)
		item.UpdatedAt = s.now()
		return items, true
	})
}

// ToggleFavorite flips the favorite flag of the item matching id
func (s *Store) ToggleFavorite(id string) (bool, error) {
	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].IsFavorite = !items[i].IsFavorite
				items[i].UpdatedAt = s.now()
				return items, true
			}
		}
		return items, false
	})
}

// SetWatchStatus sets the watch status of the item matching id. The empty
// status clears it. Any status may replace any other; the store enforces
// no transition graph.
func (s *Store) SetWatchStatus(id string, status models.WatchStatus) (bool, error) {
	if !status.Valid() {
		return false, &ValidationError{Field: "watchStatus", Reason: "unknown status"}
	}

	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].WatchStatus = status
				items[i].UpdatedAt = s.now()
				return items, true
			}
		}
		return items, false
	})
}

// MarkEpisodeWatched sets the episode's watched flag. Marking watched
// stamps dateWatched with the current time; unmarking clears it.
func (s *Store) MarkEpisodeWatched(seriesID, seasonID, episodeID string, watched bool) (bool, error) {
	return s.mutate(func(items []models.ContentItem) ([]models.ContentItem, bool) {
		item, ep := findEpisode(items, seriesID, seasonID, episodeID)
		if ep == nil {
			return items, false
		}
		ep.IsWatched = watched
		if watched {
			now := s.now()
			ep.DateWatched = &now
		} else {
			ep.DateWatched = nil
		}
		item.UpdatedAt = s.now()
		return items, true
	})
}

// Items returns a deep copy of the current collection
func (s *Store) Items() []models.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContentItem, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}

// Get returns a copy of the item matching id
func (s *Store) Get(id string) (models.ContentItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), true
		}
	}
	return models.ContentItem{}, false
}

func findSeason(items []models.ContentItem, seriesID, seasonID string) (*models.ContentItem, *models.Season) {
	for i := range items {
		if items[i].ID != seriesID || !items[i].IsSeries() {
			continue
		}
		for j := range items[i].Seasons {
			if items[i].Seasons[j].ID == seasonID {
				return &items[i], &items[i].Seasons[j]
			}
		}
		return nil, nil
	}
	return nil, nil
}

func findEpisode(items []models.ContentItem, seriesID, seasonID, episodeID string) (*models.ContentItem, *models.Episode) {
	item, season := findSeason(items, seriesID, seasonID)
	if season == nil {
		return nil, nil
	}
	for k := range season.Episodes {
		if season.Episodes[k].ID == episodeID {
			return item, &season.Episodes[k]
		}
	}
	return nil, nil
}
