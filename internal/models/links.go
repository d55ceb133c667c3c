// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TweetCategory links a tweet to a category. Unordered; at most one live
// row per pair.
type TweetCategory struct {
	ID         uuid.UUID  `json:"id"`
	TweetID    uuid.UUID  `json:"tweet_id"`
	CategoryID uuid.UUID  `json:"category_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
	IsDeleted  bool       `json:"-"`

	// Joined fields, filled by listing queries.
	TweetContent  string `json:"tweet_content,omitempty"`
	TweetAuthor   string `json:"tweet_author,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// TweetHashtag links a tweet to a hashtag. Creating one counts as a use of
// the hashtag.
type TweetHashtag struct {
	ID        uuid.UUID  `json:"id"`
	TweetID   uuid.UUID  `json:"tweet_id"`
	HashtagID uuid.UUID  `json:"hashtag_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	IsDeleted bool       `json:"-"`

	TweetContent     string `json:"tweet_content,omitempty"`
	HashtagName      string `json:"hashtag_name,omitempty"`
	HashtagIsPopular bool   `json:"hashtag_is_popular,omitempty"`
}

// CollectionTweet places a tweet in a collection at DisplayOrder.
type CollectionTweet struct {
	ID           uuid.UUID  `json:"id"`
	CollectionID uuid.UUID  `json:"collection_id"`
	TweetID      uuid.UUID  `json:"tweet_id"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	IsDeleted    bool       `json:"-"`

	Tweet          *Tweet `json:"tweet,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

// Page is one slice of a paged listing.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// TotalPages returns the number of pages needed for Total items.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
