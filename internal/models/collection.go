package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a user curated, ordered list of tweets.
type Collection struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	IconURL      string     `json:"icon_url"`
	IsPublic     bool       `json:"is_public"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	IsDeleted    bool       `json:"-"`

	// Populated by GetWithTweets.
	Tweets []CollectionTweet `json:"tweets,omitempty"`
}
