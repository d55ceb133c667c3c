package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// Request bodies mirror the JSON accepted by the API.

type CategoryRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ColorHex     string     `json:"color_hex"`
	DisplayOrder int        `json:"display_order"`
	ParentID     *uuid.UUID `json:"parent_id"`
}

type TweetRequest struct {
	Content        string     `json:"content"`
	AuthorUsername string     `json:"author_username"`
	OriginalURL    string     `json:"original_url"`
	TweetDate      *time.Time `json:"tweet_date,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	IsSeen         bool       `json:"is_seen"`
	PlatformName   string     `json:"platform_name"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
}

type HashtagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPopular   *bool  `json:"is_popular,omitempty"`
}

type CollectionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	IconURL      string `json:"icon_url"`
	IsPublic     bool   `json:"is_public"`
	DisplayOrder int    `json:"display_order"`
}

// SkippedTweet is a tweet the API did not add to a collection.
type SkippedTweet struct {
	TweetID uuid.UUID `json:"tweet_id"`
	Reason  string    `json:"reason"`
}

// AssignResult is the outcome of assigning tweets to a collection.
type AssignResult struct {
	Created []models.CollectionTweet `json:"created"`
	Skipped []SkippedTweet           `json:"skipped"`
}

// --- Tweets ---

func (c *Client) Tweets(ctx context.Context) ([]models.Tweet, error) {
	return do[[]models.Tweet](ctx, c, http.MethodGet, "/tweets", nil)
}

func (c *Client) TweetsPaged(ctx context.Context, page, size int) (*models.Page[models.Tweet], error) {
	q := url.Values{"page": {strconv.Itoa(page)}, "page_size": {strconv.Itoa(size)}}
	return do[*models.Page[models.Tweet]](ctx, c, http.MethodGet, "/tweets/paged?"+q.Encode(), nil)
}

func (c *Client) SearchTweets(ctx context.Context, term string) ([]models.Tweet, error) {
	return do[[]models.Tweet](ctx, c, http.MethodGet, "/tweets/search?"+url.Values{"term": {term}}.Encode(), nil)
}

func (c *Client) TweetsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error) {
	return do[[]models.Tweet](ctx, c, http.MethodGet, resource("/tweets/category", categoryID.String()), nil)
}

func (c *Client) Tweet(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	return do[*models.Tweet](ctx, c, http.MethodGet, resource("/tweets", id.String()), nil)
}

func (c *Client) CreateTweet(ctx context.Context, req TweetRequest) (*models.Tweet, error) {
	return do[*models.Tweet](ctx, c, http.MethodPost, "/tweets", req)
}

func (c *Client) UpdateTweet(ctx context.Context, id uuid.UUID, req TweetRequest) (*models.Tweet, error) {
	return do[*models.Tweet](ctx, c, http.MethodPut, resource("/tweets", id.String()), req)
}

func (c *Client) ToggleSeen(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	return do[*models.Tweet](ctx, c, http.MethodPut, resource("/tweets", id.String(), "toggle-seen"), nil)
}

func (c *Client) DeleteTweet(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, resource("/tweets", id.String()), nil)
	return err
}

// ExtractTweet asks the API to fetch rawURL and save it as a tweet.
func (c *Client) ExtractTweet(ctx context.Context, rawURL string) (*models.Tweet, error) {
	return do[*models.Tweet](ctx, c, http.MethodPost, "/tweets/extract", map[string]string{"url": rawURL})
}

// --- Categories ---

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return do[[]models.Category](ctx, c, http.MethodGet, "/categories", nil)
}

func (c *Client) CategoryTree(ctx context.Context) ([]models.Category, error) {
	return do[[]models.Category](ctx, c, http.MethodGet, "/categories/tree", nil)
}

// CategoryHierarchy returns a category with its whole subtree attached.
func (c *Client) CategoryHierarchy(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return do[*models.Category](ctx, c, http.MethodGet, resource("/categories", id.String(), "hierarchy"), nil)
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*models.Category, error) {
	return do[*models.Category](ctx, c, http.MethodPost, "/categories", req)
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryRequest) (*models.Category, error) {
	return do[*models.Category](ctx, c, http.MethodPut, resource("/categories", id.String()), req)
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, resource("/categories", id.String()), nil)
	return err
}

// --- Tweet categories ---

func (c *Client) TweetCategories(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error) {
	return do[[]models.TweetCategory](ctx, c, http.MethodGet, resource("/tweet-categories/tweet", tweetID.String()), nil)
}

func (c *Client) AssignCategories(ctx context.Context, tweetID uuid.UUID, categoryIDs []uuid.UUID) error {
	body := map[string][]uuid.UUID{"category_ids": categoryIDs}
	_, err := do[struct{}](ctx, c, http.MethodPost, resource("/tweet-categories/tweet", tweetID.String(), "assign"), body)
	return err
}

func (c *Client) UnlinkCategory(ctx context.Context, tweetID, categoryID uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete,
		resource("/tweet-categories/tweet", tweetID.String(), "category", categoryID.String()), nil)
	return err
}

// --- Hashtags ---

func (c *Client) Hashtags(ctx context.Context) ([]models.Hashtag, error) {
	return do[[]models.Hashtag](ctx, c, http.MethodGet, "/hashtags", nil)
}

func (c *Client) PopularHashtags(ctx context.Context) ([]models.Hashtag, error) {
	return do[[]models.Hashtag](ctx, c, http.MethodGet, "/hashtags/popular", nil)
}

func (c *Client) CreateHashtag(ctx context.Context, req HashtagRequest) (*models.Hashtag, error) {
	return do[*models.Hashtag](ctx, c, http.MethodPost, "/hashtags", req)
}

func (c *Client) DeleteHashtag(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, resource("/hashtags", id.String()), nil)
	return err
}

func (c *Client) TweetHashtags(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error) {
	return do[[]models.TweetHashtag](ctx, c, http.MethodGet, resource("/tweet-hashtags/tweet", tweetID.String()), nil)
}

func (c *Client) LinkHashtag(ctx context.Context, tweetID, hashtagID uuid.UUID) error {
	body := map[string]uuid.UUID{"tweet_id": tweetID, "hashtag_id": hashtagID}
	_, err := do[struct{}](ctx, c, http.MethodPost, "/tweet-hashtags", body)
	return err
}

func (c *Client) UnlinkHashtag(ctx context.Context, tweetID, hashtagID uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete,
		resource("/tweet-hashtags/tweet", tweetID.String(), "hashtag", hashtagID.String()), nil)
	return err
}

// --- Collections ---

func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	return do[[]models.Collection](ctx, c, http.MethodGet, "/collections/ordered", nil)
}

func (c *Client) CollectionWithTweets(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	return do[*models.Collection](ctx, c, http.MethodGet, resource("/collections", id.String(), "with-tweets"), nil)
}

func (c *Client) CreateCollection(ctx context.Context, req CollectionRequest) (*models.Collection, error) {
	return do[*models.Collection](ctx, c, http.MethodPost, "/collections", req)
}

func (c *Client) UpdateCollection(ctx context.Context, id uuid.UUID, req CollectionRequest) (*models.Collection, error) {
	return do[*models.Collection](ctx, c, http.MethodPut, resource("/collections", id.String()), req)
}

func (c *Client) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, resource("/collections", id.String()), nil)
	return err
}

func (c *Client) AssignTweets(ctx context.Context, collectionID uuid.UUID, tweetIDs []uuid.UUID) (*AssignResult, error) {
	body := map[string][]uuid.UUID{"tweet_ids": tweetIDs}
	return do[*AssignResult](ctx, c, http.MethodPost,
		resource("/collection-tweets/collection", collectionID.String(), "assign"), body)
}

// ReorderCollection sets new display orders keyed by tweet id.
func (c *Client) ReorderCollection(ctx context.Context, collectionID uuid.UUID, orders map[uuid.UUID]int) error {
	_, err := do[struct{}](ctx, c, http.MethodPut,
		resource("/collection-tweets/collection", collectionID.String(), "order"), orders)
	return err
}

func (c *Client) RemoveFromCollection(ctx context.Context, collectionID, tweetID uuid.UUID) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete,
		resource("/collection-tweets/collection", collectionID.String(), "tweet", tweetID.String()), nil)
	return err
}
