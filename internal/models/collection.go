package models

import "time"

// Collection is a user-named, ordered grouping of content ids. Collections
// live in their own document; membership is by id only, so entries can
// dangle after a ContentItem is deleted and readers must filter them.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ContentIDs  []string  `json:"contentIds"`
	IsPublic    bool      `json:"isPublic,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the collection
func (c *Collection) Clone() Collection {
	out := *c
	out.ContentIDs = cloneStrings(c.ContentIDs)
	return out
}

// Contains reports whether the collection holds the given content id
func (c *Collection) Contains(contentID string) bool {
	for _, id := range c.ContentIDs {
		if id == contentID {
			return true
		}
	}
	return false
}
