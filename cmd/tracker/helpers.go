package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/config"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/engine"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/parser"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/storage"
)

// initStorage opens the configured database and brings its schema up to
// date. The caller owns the returned storage and must close it.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// newParser builds a parser for the configured timezone.
func newParser() (*parser.Parser, error) {
	loc, err := config.Location(viper.GetString("timezone"))
	if err != nil {
		return nil, err
	}
	return parser.New(loc), nil
}

// newEngine wires storage and parser into a categorization engine.
func newEngine(store *storage.SQLiteStorage) (*engine.CategorizationEngine, error) {
	p, err := newParser()
	if err != nil {
		return nil, err
	}
	return engine.New(store, store, p), nil
}
