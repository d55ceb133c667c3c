package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
)

type seedCategory struct {
	name, description, color string
	order                    int
	children                 []seedCategory
}

var seedCategories = []seedCategory{
	{name: "Programming", description: "Programming topics and tutorials", color: "#3498db", order: 1, children: []seedCategory{
		{name: "C#", description: "C# programming language", color: "#9b59b6", order: 1},
		{name: "JavaScript", description: "JavaScript programming language", color: "#f39c12", order: 2},
	}},
	{name: "Database", description: "Database design and management", color: "#2ecc71", order: 2, children: []seedCategory{
		{name: "SQL Server", description: "Microsoft SQL Server", color: "#1abc9c", order: 1},
	}},
	{name: "UI/UX Design", description: "User interface and experience design", color: "#e74c3c", order: 3},
}

var seedHashtags = []struct {
	name, description string
	usage             int
	popular           bool
}{
	{"programming", "Content related to computer programming and software development", 25, true},
	{"dotnet", "Content related to .NET platform and ecosystem", 18, true},
	{"csharp", "Content related to C# programming language", 22, true},
	{"aspnetcore", "Content related to ASP.NET Core web framework", 15, true},
	{"javascript", "Content related to JavaScript programming language", 8, false},
	{"database", "Content related to databases and data storage", 5, false},
	{"ai", "Content related to artificial intelligence and machine learning", 12, true},
	{"bookmarkbrain", "Official hashtag for BookMarkBrain project discussions", 3, false},
}

var seedTweets = []struct {
	content, author, url string
	age                  time.Duration
	seen                 bool
}{
	{"Understanding the fundamentals of #Operating_System is crucial for any software developer. Here's why thread management matters...", "techguru", "https://twitter.com/techguru/status/1234567890", 5 * 24 * time.Hour, false},
	{"#ASPNETCore 9 is bringing some amazing performance improvements. Here's how the new middleware pipeline works...", "dotnetdev", "https://twitter.com/dotnetdev/status/1234567892", 2 * 24 * time.Hour, false},
	{"Exploring the relationship between #NoSQL databases and traditional RDBMS. When should you choose one over the other?", "databasewhiz", "https://twitter.com/databasewhiz/status/1234567893", 24 * time.Hour, false},
	{"Why #Clean_Architecture matters in enterprise applications. A thread on maintainability and scalability...", "architectureguru", "https://twitter.com/architectureguru/status/1234567895", 4 * 24 * time.Hour, true},
}

var seedCollections = []struct {
	name, description, icon string
	order                   int
}{
	{"Programming Basics", "Fundamental concepts and practices in software development", "https://example.com/icons/programming.png", 1},
	{"Advanced Database Concepts", "Deep dives into database design, optimization, and management", "https://example.com/icons/database.png", 2},
}

// Seed populates an empty database with sample categories, hashtags, tweets
// and collections. It is a no-op once any category exists.
func Seed(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		log.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var categoryIDs []uuid.UUID
	var insert func(c seedCategory, parent *uuid.UUID) error
	insert = func(c seedCategory, parent *uuid.UUID) error {
		id := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, description, color_hex, display_order, parent_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.name, c.description, c.color, c.order, parent,
		); err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
		categoryIDs = append(categoryIDs, id)
		for _, child := range c.children {
			if err := insert(child, &id); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range seedCategories {
		if err := insert(c, nil); err != nil {
			return err
		}
	}

	for _, h := range seedHashtags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO hashtags (name, description, usage_count, is_popular)
			VALUES ($1, $2, $3, $4)`,
			h.name, h.description, h.usage, h.popular,
		); err != nil {
			return fmt.Errorf("seed hashtag %s: %w", h.name, err)
		}
	}

	now := time.Now().UTC()
	tweetIDs := make([]uuid.UUID, 0, len(seedTweets))
	for _, t := range seedTweets {
		id := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tweets (id, content, author_username, original_url, tweet_date, is_seen, platform_name)
			VALUES ($1, $2, $3, $4, $5, $6, 'Twitter')`,
			id, t.content, t.author, t.url, now.Add(-t.age), t.seen,
		); err != nil {
			return fmt.Errorf("seed tweet %s: %w", t.url, err)
		}
		tweetIDs = append(tweetIDs, id)
	}

	// Link each tweet to one category, round robin.
	for i, tweetID := range tweetIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tweet_categories (tweet_id, category_id) VALUES ($1, $2)`,
			tweetID, categoryIDs[i%len(categoryIDs)],
		); err != nil {
			return fmt.Errorf("seed tweet category: %w", err)
		}
	}

	for _, c := range seedCollections {
		id := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO collections (id, name, description, icon_url, is_public, display_order)
			VALUES ($1, $2, $3, $4, TRUE, $5)`,
			id, c.name, c.description, c.icon, c.order,
		); err != nil {
			return fmt.Errorf("seed collection %s: %w", c.name, err)
		}
		if c.order == 1 {
			for i, tweetID := range tweetIDs {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO collection_tweets (collection_id, tweet_id, display_order) VALUES ($1, $2, $3)`,
					id, tweetID, i+1,
				); err != nil {
					return fmt.Errorf("seed collection tweet: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	log.Info("database seeded with sample data",
		"categories", len(categoryIDs),
		"hashtags", len(seedHashtags),
		"tweets", len(tweetIDs),
		"collections", len(seedCollections),
	)
	return nil
}
