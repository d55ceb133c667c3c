// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultPlatform is the platform recorded for tweets without one.
const DefaultPlatform = "Twitter"

// Tweet is a bookmarked social post.
type Tweet struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	AuthorUsername string     `json:"author_username"`
	OriginalURL    string     `json:"original_url"`
	TweetDate      *time.Time `json:"tweet_date"`
	ImageURL       *string    `json:"image_url"`
	IsSeen         bool       `json:"is_seen"`
	PlatformName   string     `json:"platform_name"`
	CategoryID     *uuid.UUID `json:"category_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	IsDeleted      bool       `json:"-"`
}

// Excerpt returns at most n runes of the content, with an ellipsis when cut.
func (t *Tweet) Excerpt(n int) string {
	if utf8.RuneCountInString(t.Content) <= n {
		return t.Content
	}
	runes := []rune(t.Content)
	return string(runes[:n]) + "…"
}
