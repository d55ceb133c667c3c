package service

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation limits for catalog fields.
const (
	maxNameLen        = 100
	maxHashtagNameLen = 50
	maxDescriptionLen = 500
	maxContentLen     = 1_000
	maxAuthorLen      = 100
	maxURLLen         = 2_000
	maxPlatformLen    = 50

	defaultPageSize = 10
	maxPageSize     = 100
)

var (
	hexColorRe    = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	hashtagNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// CategoryInput carries the user editable fields of a category.
type CategoryInput struct {
	Name         string
	Description  string
	ColorHex     string
	DisplayOrder int
	ParentID     *uuid.UUID
}

// TweetInput carries the user editable fields of a tweet.
type TweetInput struct {
	Content        string
	AuthorUsername string
	OriginalURL    string
	TweetDate      *time.Time
	ImageURL       *string
	IsSeen         bool
	PlatformName   string
	CategoryID     *uuid.UUID
}

// HashtagInput carries the user editable fields of a hashtag. A nil
// IsPopular leaves the flag unchanged on update.
type HashtagInput struct {
	Name        string
	Description string
	IsPopular   *bool
}

// CollectionInput carries the user editable fields of a collection.
type CollectionInput struct {
	Name         string
	Description  string
	IconURL      string
	IsPublic     bool
	DisplayOrder int
}

func tooLong(s string, n int) bool {
	return utf8.RuneCountInString(s) > n
}

// validateCategory normalizes in and returns the first problem found.
func validateCategory(in *CategoryInput) string {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ColorHex = strings.TrimSpace(in.ColorHex)

	switch {
	case in.Name == "":
		return "Category name is required."
	case tooLong(in.Name, maxNameLen):
		return "Category name is too long (max 100 characters)."
	case tooLong(in.Description, maxDescriptionLen):
		return "Description is too long (max 500 characters)."
	case in.ColorHex != "" && !hexColorRe.MatchString(in.ColorHex):
		return "Color must be a hex color such as #3498db or #fff."
	case in.DisplayOrder < 0:
		return "Display order cannot be negative."
	case in.ParentID != nil && *in.ParentID == uuid.Nil:
		return "Parent category id is invalid."
	}
	return ""
}

// validateTweet normalizes in and returns the first problem found.
func validateTweet(in *TweetInput) string {
	in.Content = strings.TrimSpace(in.Content)
	in.AuthorUsername = strings.TrimSpace(in.AuthorUsername)
	in.OriginalURL = strings.TrimSpace(in.OriginalURL)
	in.PlatformName = strings.TrimSpace(in.PlatformName)
	if in.ImageURL != nil {
		img := strings.TrimSpace(*in.ImageURL)
		if img == "" {
			in.ImageURL = nil
		} else {
			in.ImageURL = &img
		}
	}

	switch {
	case in.Content == "":
		return "Tweet content is required."
	case tooLong(in.Content, maxContentLen):
		return "Tweet content is too long (max 1,000 characters)."
	case in.AuthorUsername == "":
		return "Author username is required."
	case tooLong(in.AuthorUsername, maxAuthorLen):
		return "Author username is too long (max 100 characters)."
	case in.OriginalURL == "":
		return "Original URL is required."
	case tooLong(in.OriginalURL, maxURLLen):
		return "Original URL is too long (max 2,000 characters)."
	case !isHTTPURL(in.OriginalURL):
		return "Original URL must be an absolute http or https URL."
	case in.ImageURL != nil && tooLong(*in.ImageURL, maxURLLen):
		return "Image URL is too long (max 2,000 characters)."
	case tooLong(in.PlatformName, maxPlatformLen):
		return "Platform name is too long (max 50 characters)."
	}
	return ""
}

// validateHashtag normalizes in and returns the first problem found.
// A leading '#' is accepted and stripped.
func validateHashtag(in *HashtagInput) string {
	in.Name = strings.TrimPrefix(strings.TrimSpace(in.Name), "#")
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Name == "":
		return "Hashtag name is required."
	case tooLong(in.Name, maxHashtagNameLen):
		return "Hashtag name is too long (max 50 characters)."
	case !hashtagNameRe.MatchString(in.Name):
		return "Hashtag name may only contain letters, digits and underscores."
	case tooLong(in.Description, maxDescriptionLen):
		return "Description is too long (max 500 characters)."
	}
	return ""
}

// validateCollection normalizes in and returns the first problem found.
func validateCollection(in *CollectionInput) string {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.IconURL = strings.TrimSpace(in.IconURL)

	switch {
	case in.Name == "":
		return "Collection name is required."
	case tooLong(in.Name, maxNameLen):
		return "Collection name is too long (max 100 characters)."
	case tooLong(in.Description, maxDescriptionLen):
		return "Description is too long (max 500 characters)."
	case tooLong(in.IconURL, maxURLLen):
		return "Icon URL is too long (max 2,000 characters)."
	case in.DisplayOrder < 0:
		return "Display order cannot be negative."
	}
	return ""
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// normalizePage clamps paging arguments to page >= 1 and
// 1 <= size <= maxPageSize.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
