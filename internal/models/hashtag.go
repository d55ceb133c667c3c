package models

import (
	"time"

	"github.com/google/uuid"
)

// PopularThreshold is the usage count at which a hashtag becomes popular.
const PopularThreshold = 10

// Hashtag is a freeform tag. Names are unique ignoring case.
type Hashtag struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UsageCount  int        `json:"usage_count"`
	IsPopular   bool       `json:"is_popular"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	IsDeleted   bool       `json:"-"`
}

// ShouldPromote reports whether the hashtag crossed the popularity
// threshold but is not yet flagged. Popularity never reverts.
func (h *Hashtag) ShouldPromote() bool {
	return !h.IsPopular && h.UsageCount >= PopularThreshold
}
