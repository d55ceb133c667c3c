package handlers

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/service"
)

// Request bodies accepted by the API and their conversions to engine inputs.

type categoryRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ColorHex     string     `json:"color_hex"`
	DisplayOrder int        `json:"display_order"`
	ParentID     *uuid.UUID `json:"parent_id"`
}

func (req categoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		ColorHex:     strings.TrimSpace(req.ColorHex),
		DisplayOrder: req.DisplayOrder,
		ParentID:     nilIfZero(req.ParentID),
	}
}

type tweetRequest struct {
	Content        string     `json:"content"`
	AuthorUsername string     `json:"author_username"`
	OriginalURL    string     `json:"original_url"`
	TweetDate      *time.Time `json:"tweet_date"`
	ImageURL       *string    `json:"image_url"`
	IsSeen         bool       `json:"is_seen"`
	PlatformName   string     `json:"platform_name"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

func (req tweetRequest) toInput() service.TweetInput {
	in := service.TweetInput{
		Content:        strings.TrimSpace(req.Content),
		AuthorUsername: strings.TrimSpace(req.AuthorUsername),
		OriginalURL:    strings.TrimSpace(req.OriginalURL),
		TweetDate:      req.TweetDate,
		IsSeen:         req.IsSeen,
		PlatformName:   strings.TrimSpace(req.PlatformName),
		CategoryID:     nilIfZero(req.CategoryID),
	}
	if req.ImageURL != nil {
		if v := strings.TrimSpace(*req.ImageURL); v != "" {
			in.ImageURL = &v
		}
	}
	return in
}

type urlRequest struct {
	URL string `json:"url"`
}

type hashtagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPopular   *bool  `json:"is_popular"`
}

func (req hashtagRequest) toInput() service.HashtagInput {
	return service.HashtagInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsPopular:   req.IsPopular,
	}
}

type collectionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	IconURL      string `json:"icon_url"`
	IsPublic     bool   `json:"is_public"`
	DisplayOrder int    `json:"display_order"`
}

func (req collectionRequest) toInput() service.CollectionInput {
	return service.CollectionInput{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		IconURL:      strings.TrimSpace(req.IconURL),
		IsPublic:     req.IsPublic,
		DisplayOrder: req.DisplayOrder,
	}
}

type tweetCategoryRequest struct {
	TweetID    uuid.UUID `json:"tweet_id"`
	CategoryID uuid.UUID `json:"category_id"`
}

type tweetHashtagRequest struct {
	TweetID   uuid.UUID `json:"tweet_id"`
	HashtagID uuid.UUID `json:"hashtag_id"`
}

type categoryIDsRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type collectionTweetRequest struct {
	CollectionID uuid.UUID `json:"collection_id"`
	TweetID      uuid.UUID `json:"tweet_id"`
	DisplayOrder *int      `json:"display_order"`
}

type tweetIDsRequest struct {
	TweetIDs []uuid.UUID `json:"tweet_ids"`
}

// displayOrders maps entity ids onto their new display order.
type displayOrders map[uuid.UUID]int

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
