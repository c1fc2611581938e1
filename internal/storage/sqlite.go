// Package storage implements the persistence layer on SQLite: user
// categories, the four learned-pattern record types, the decision history,
// and the minimal ledger the auto-categorization path writes to.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Interface checks.
var (
	_ service.Storage      = (*SQLiteStorage)(nil)
	_ service.LedgerWriter = (*SQLiteStorage)(nil)
)

// SQLiteStorage implements the Storage and LedgerWriter interfaces.
type SQLiteStorage struct {
	cacheExpiry   time.Time
	db            *sql.DB
	categoryCache map[int64][]model.Category
	dbPath        string
	cacheMutex    sync.RWMutex
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// _txlock=immediate takes the write lock at BEGIN, so read-modify-write
	// transactions serialize instead of failing at commit.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:            db,
		dbPath:        dbPath,
		categoryCache: make(map[int64][]model.Category),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// cachedCategories returns a user's category list from the cache, or nil.
func (s *SQLiteStorage) cachedCategories(userID int64) []model.Category {
	s.cacheMutex.RLock()

	if time.Now().After(s.cacheExpiry) {
		s.cacheMutex.RUnlock()
		s.cacheMutex.Lock()
		defer s.cacheMutex.Unlock()

		// Double-check after acquiring write lock
		if time.Now().After(s.cacheExpiry) {
			s.categoryCache = make(map[int64][]model.Category)
		}
		return nil
	}

	categories := s.categoryCache[userID]
	s.cacheMutex.RUnlock()
	return categories
}

// cacheCategories stores a user's category list in the cache.
func (s *SQLiteStorage) cacheCategories(userID int64, categories []model.Category) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if len(s.categoryCache) == 0 {
		s.cacheExpiry = time.Now().Add(5 * time.Minute)
	}
	s.categoryCache[userID] = categories
}

// invalidateCategories drops a user's cached category list.
func (s *SQLiteStorage) invalidateCategories(userID int64) {
	s.cacheMutex.Lock()
	delete(s.categoryCache, userID)
	s.cacheMutex.Unlock()
}
