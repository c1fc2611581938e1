package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// GetCategories returns a user's active categories with their keyword lists.
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID int64) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	if cached := s.cachedCategories(userID); cached != nil {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, keywords, is_active, created_at
		FROM categories
		WHERE user_id = ? AND is_active = 1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheCategories(userID, categories)
	return categories, nil
}

// GetCategoryByID returns one category owned by the user.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, userID, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, keywords, is_active, created_at
		FROM categories
		WHERE id = ? AND user_id = ?
	`, id, userID)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// CreateCategory adds a category with an optional keyword list.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType, keywords []string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	if keywords == nil {
		keywords = []string{}
	}
	encoded, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type, keywords)
		VALUES (?, ?, ?, ?)
	`, userID, name, string(categoryType), string(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	s.invalidateCategories(userID)
	return s.GetCategoryByID(ctx, userID, id)
}

// scannable covers both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanCategory(row scannable) (*model.Category, error) {
	var category model.Category
	var keywords string

	err := row.Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&keywords,
		&category.IsActive,
		&category.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	if err := json.Unmarshal([]byte(keywords), &category.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords for category %d: %w", category.ID, err)
	}
	return &category, nil
}
