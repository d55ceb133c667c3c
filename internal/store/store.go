// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements PostgreSQL persistence for tweets, categories,
// hashtags, collections and their junction tables. Every record is
// soft-deleted; default queries only see rows with is_deleted = FALSE.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every store can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Store groups the per-entity stores over one connection or transaction.
type Store struct {
	db *sql.DB // nil when the Store is bound to a transaction

	Tweets           *TweetStore
	Categories       *CategoryStore
	Hashtags         *HashtagStore
	Collections      *CollectionStore
	TweetCategories  *TweetCategoryStore
	TweetHashtags    *TweetHashtagStore
	CollectionTweets *CollectionTweetStore
}

// New returns a Store backed by the connection pool.
func New(db *sql.DB) *Store {
	s := bind(db)
	s.db = db
	return s
}

func bind(q DBTX) *Store {
	return &Store{
		Tweets:           &TweetStore{db: q},
		Categories:       &CategoryStore{db: q},
		Hashtags:         &HashtagStore{db: q},
		Collections:      &CollectionStore{db: q},
		TweetCategories:  &TweetCategoryStore{db: q},
		TweetHashtags:    &TweetHashtagStore{db: q},
		CollectionTweets: &CollectionTweetStore{db: q},
	}
}

// InTx runs fn with a Store bound to a new transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. Calling InTx on a
// Store that is already transactional runs fn in the same transaction.
func (s *Store) InTx(ctx context.Context, fn func(*Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// likePattern turns a search term into an ILIKE substring pattern,
// escaping the wildcard characters.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// affected reports whether exec touched at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
