// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"bookmarkbrain/internal/database"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "bookmarkbrain")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "bookmarkbrain")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db, logger.Nop()); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// purge hard-deletes rows created by a test. Junction rows go with their
// parents through ON DELETE CASCADE.
func purge(t *testing.T, db *sql.DB, table string, ids ...uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		for _, id := range ids {
			db.Exec("DELETE FROM "+table+" WHERE id = $1", id)
		}
	})
}

func mustTweet(t *testing.T, s *Store, content string) *models.Tweet {
	t.Helper()
	tw, err := s.Tweets.Create(context.Background(), &models.Tweet{
		Content:        content,
		AuthorUsername: "tester",
		OriginalURL:    "https://example.com/" + uuid.NewString(),
		PlatformName:   models.DefaultPlatform,
	})
	if err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	purge(t, s.db, "tweets", tw.ID)
	return tw
}

func mustCategory(t *testing.T, s *Store, name string, order int, parent *uuid.UUID) *models.Category {
	t.Helper()
	c, err := s.Categories.Create(context.Background(), &models.Category{
		Name: name, ColorHex: "#336699", DisplayOrder: order, ParentID: parent,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	// Children are registered after their parents, so cleanup (LIFO) removes
	// them first and the RESTRICT foreign key is never hit.
	purge(t, s.db, "categories", c.ID)
	return c
}

func mustCollection(t *testing.T, s *Store, name string) *models.Collection {
	t.Helper()
	c, err := s.Collections.Create(context.Background(), &models.Collection{Name: name})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	purge(t, s.db, "collections", c.ID)
	return c
}
