package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 5

// seedCategories are the bilingual starter categories inserted for the
// default user. Names and keywords line up with the parser's static hints.
var seedCategories = []struct {
	name     string
	ctype    string
	keywords string
}{
	{"Groceries", "expense", `["carrefour","كارفور","safeway","سيفوي","سامح","sameh","miles","مايلز"]`},
	{"Dining", "expense", `["مطعم","restaurant","كافيه","cafe","قهوة","coffee","ماكدونالدز","mcdonalds","kfc","طلبات","talabat"]`},
	{"Transport", "expense", `["اوبر","uber","كريم","careem","تكسي","taxi"]`},
	{"Fuel", "expense", `["محطة","station","المناصير","manaseer","توتال","total"]`},
	{"Utilities", "expense", `["كهرباء","electricity","مياه","water","اورانج","orange","زين","zain","امنية","umniah"]`},
	{"Health", "expense", `["صيدلية","pharmacy","مستشفى","hospital","عيادة","clinic"]`},
	{"Shopping", "expense", `["امازون","amazon","نون","noon","شي ان","shein"]`},
	{"Sent Transfers", "expense", `[]`},
	{"Other Expenses", "expense", `[]`},
	{"Miscellaneous", "expense", `[]`},
	{"Salary", "income", `["راتب","رواتب","salary","payroll"]`},
	{"Received Transfers", "income", `[]`},
	{"Other Income", "income", `[]`},
}

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
					keywords TEXT NOT NULL DEFAULT '[]',
					is_active BOOLEAN DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, name)
				)`,

				`CREATE TABLE IF NOT EXISTS merchant_learnings (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					merchant TEXT NOT NULL,
					category_id INTEGER NOT NULL,
					message_type TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					average_amount REAL NOT NULL DEFAULT 0,
					use_count INTEGER NOT NULL DEFAULT 0,
					last_used DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, merchant, category_id, message_type),
					FOREIGN KEY (category_id) REFERENCES categories(id)
				)`,
				`CREATE INDEX idx_merchant_learnings_lookup
					ON merchant_learnings(user_id, merchant, message_type)`,

				`CREATE TABLE IF NOT EXISTS category_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					category_id INTEGER NOT NULL,
					message_type TEXT NOT NULL,
					ranges TEXT NOT NULL DEFAULT '[]',
					transaction_count INTEGER NOT NULL DEFAULT 0,
					last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, category_id, message_type),
					FOREIGN KEY (category_id) REFERENCES categories(id)
				)`,

				`CREATE TABLE IF NOT EXISTS cliq_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					sender TEXT NOT NULL,
					transaction_type TEXT NOT NULL,
					category_id INTEGER NOT NULL,
					average_amount REAL NOT NULL DEFAULT 0,
					amount_variance REAL NOT NULL DEFAULT 0,
					confidence REAL NOT NULL DEFAULT 0,
					use_count INTEGER NOT NULL DEFAULT 0,
					is_recurring BOOLEAN NOT NULL DEFAULT 0,
					is_business_like BOOLEAN NOT NULL DEFAULT 0,
					last_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, sender, transaction_type),
					FOREIGN KEY (category_id) REFERENCES categories(id)
				)`,

				`CREATE TABLE IF NOT EXISTS categorization_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					merchant TEXT NOT NULL DEFAULT '',
					amount REAL NOT NULL,
					category_id INTEGER NOT NULL,
					message_type TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					was_correct BOOLEAN NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_history_user_category
					ON categorization_history(user_id, category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add ledger entries table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS entries (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER NOT NULL,
					category_id INTEGER NOT NULL,
					amount REAL NOT NULL,
					merchant TEXT NOT NULL DEFAULT '',
					type TEXT NOT NULL,
					source TEXT NOT NULL,
					original_message TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					occurred_at DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (category_id) REFERENCES categories(id)
				)`,
				`CREATE INDEX idx_entries_user_date ON entries(user_id, occurred_at)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Index cliq patterns by sender",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_cliq_patterns_sender
				ON cliq_patterns(user_id, sender)`)
			return err
		},
	},
	{
		Version:     4,
		Description: "Seed bilingual starter categories",
		Up: func(tx *sql.Tx) error {
			for _, seed := range seedCategories {
				if _, err := tx.Exec(`
					INSERT OR IGNORE INTO categories (user_id, name, type, keywords)
					VALUES (?, ?, ?, ?)
				`, defaultUserID, seed.name, seed.ctype, seed.keywords); err != nil {
					return fmt.Errorf("failed to seed category %q: %w", seed.name, err)
				}
			}
			return nil
		},
	},
	{
		Version:     5,
		Description: "Deduplicate ledger entries by message hash",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE entries ADD COLUMN message_hash TEXT NOT NULL DEFAULT ''`,
				`CREATE UNIQUE INDEX idx_entries_hash
					ON entries(user_id, message_hash) WHERE message_hash != ''`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// defaultUserID owns the seeded categories. Additional users start empty.
const defaultUserID = 1

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
