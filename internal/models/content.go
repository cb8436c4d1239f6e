package models

import (
	"encoding/json"
	"time"
)

// ContentItem is a movie or series tracked by the user. The two variants
// share one struct: Kind is the stored discriminator, movie-only and
// series-only fields are nil/empty on the other variant.
type ContentItem struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind,omitempty"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Synopsis string `json:"synopsis"`

	Year          string      `json:"year,omitempty"`
	Genre         string      `json:"genre,omitempty"`
	Cast          []string    `json:"cast,omitempty"`
	Rating        *int        `json:"rating,omitempty"` // 1-10
	Tags          []string    `json:"tags,omitempty"`
	WatchStatus   WatchStatus `json:"watchStatus,omitempty"`
	PersonalNotes string      `json:"personalNotes,omitempty"`
	IsFavorite    bool        `json:"isFavorite,omitempty"`

	// Movie specific fields
	Director    string     `json:"director,omitempty"`
	Runtime     *int       `json:"runtime,omitempty"` // minutes
	DateWatched *time.Time `json:"dateWatched,omitempty"`

	// Series specific fields
	Creator      string       `json:"creator,omitempty"`
	Network      string       `json:"network,omitempty"`
	SeriesStatus SeriesStatus `json:"status,omitempty"`
	Seasons      []Season     `json:"-"` // see MarshalJSON

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Season is an ordered group of episodes owned by a series
type Season struct {
	ID           string    `json:"id"`
	SeasonNumber int       `json:"seasonNumber"`
	Episodes     []Episode `json:"episodes"`
}

// Episode belongs to exactly one season. Episodes carry no updatedAt;
// mutations refresh the owning ContentItem's timestamp instead.
type Episode struct {
	ID            string     `json:"id"`
	EpisodeNumber int        `json:"episodeNumber"`
	Title         string     `json:"title"`
	Synopsis      string     `json:"synopsis"`
	AirDate       *time.Time `json:"airDate,omitempty"`
	Runtime       *int       `json:"runtime,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	IsWatched     bool       `json:"isWatched,omitempty"`
	DateWatched   *time.Time `json:"dateWatched,omitempty"`
	PersonalNotes string     `json:"personalNotes,omitempty"`
}

// IsMovie reports whether the item is a movie
func (c *ContentItem) IsMovie() bool {
	return c.Kind != KindSeries
}

// IsSeries reports whether the item is a series
func (c *ContentItem) IsSeries() bool {
	return c.Kind == KindSeries
}

// MarshalJSON writes the kind tag and, for a series, always writes the
// seasons array (empty rather than absent). Readers of the legacy format
// classify items by the presence of that field, so a series must carry it
// even with no seasons, and a movie must not.
func (c ContentItem) MarshalJSON() ([]byte, error) {
	type alias ContentItem
	if c.Kind == KindSeries {
		seasons := c.Seasons
		if seasons == nil {
			seasons = []Season{}
		}
		return json.Marshal(struct {
			alias
			Seasons []Season `json:"seasons"`
		}{alias(c), seasons})
	}
	return json.Marshal(alias(c))
}

// UnmarshalJSON restores an item, deriving the kind from the presence of
// the seasons field when the document predates the explicit tag. Presence
// is key presence: a series written with a null seasons value is still a
// series.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	type alias ContentItem
	aux := struct {
		*alias
		Seasons json.RawMessage `json:"seasons"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	hasSeasons := len(aux.Seasons) > 0
	if hasSeasons && string(aux.Seasons) != "null" {
		var seasons []Season
		if err := json.Unmarshal(aux.Seasons, &seasons); err != nil {
			return err
		}
		c.Seasons = seasons
	}

	if c.Kind == "" {
		if hasSeasons {
			c.Kind = KindSeries
		} else {
			c.Kind = KindMovie
		}
	}
	return nil
}

// Clone returns a deep copy of the item
func (c *ContentItem) Clone() ContentItem {
	out := *c
	out.Cast = cloneStrings(c.Cast)
	out.Tags = cloneStrings(c.Tags)
	out.Rating = cloneInt(c.Rating)
	out.Runtime = cloneInt(c.Runtime)
	out.DateWatched = cloneTime(c.DateWatched)
	if c.Seasons != nil {
		out.Seasons = make([]Season, len(c.Seasons))
		for i := range c.Seasons {
			out.Seasons[i] = c.Seasons[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the season
func (s *Season) Clone() Season {
	out := *s
	if s.Episodes != nil {
		out.Episodes = make([]Episode, len(s.Episodes))
		for i := range s.Episodes {
			out.Episodes[i] = s.Episodes[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the episode
func (e *Episode) Clone() Episode {
	out := *e
	out.AirDate = cloneTime(e.AirDate)
	out.Runtime = cloneInt(e.Runtime)
	out.Rating = cloneInt(e.Rating)
	out.DateWatched = cloneTime(e.DateWatched)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
