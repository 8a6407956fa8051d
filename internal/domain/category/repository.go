package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store errors surfaced to the API layer.
var (
	ErrRuleNotFound = errors.New("category not found")
	ErrRuleExists   = errors.New("category already exists")
	ErrInvalidRule  = errors.New("category needs a name and at least one keyword")
)

// Repository persists category rules in sqlite. Category names are unique
// case-insensitively; keyword order within a rule and rule order across the
// table are preserved through position columns.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the sqlite database at path, creates the
// schema, and seeds the starter rules when the table is empty. Use ":memory:"
// for an ephemeral store.
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open category store: %w", err)
	}

	r := &Repository{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := r.seedIfEmpty(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE COLLATE NOCASE NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS category_keywords (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
		);`,
	}
	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to init category schema: %w", err)
		}
	}
	return nil
}

func (r *Repository) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, rule := range StarterRules() {
		if err := r.Add(ctx, rule); err != nil {
			return fmt.Errorf("failed to seed starter categories: %w", err)
		}
	}
	return nil
}

// List returns all rules in stored order, keywords in stored order.
func (r *Repository) List(ctx context.Context) ([]Rule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name
		FROM categories c
		ORDER BY c.position ASC, c.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type entry struct {
		id   int64
		rule Rule
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.rule.Name); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		kws, err := r.keywordsFor(ctx, entries[i].id)
		if err != nil {
			return nil, err
		}
		entries[i].rule.Keywords = kws
	}

	rules := make([]Rule, len(entries))
	for i, e := range entries {
		rules[i] = e.rule
	}
	return rules, nil
}

func (r *Repository) keywordsFor(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT keyword FROM category_keywords
		WHERE category_id = ?
		ORDER BY position ASC, id ASC
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// Add inserts a new rule at the end of the list. The name must not collide
// with an existing rule (case-insensitive).
func (r *Repository) Add(ctx context.Context, rule Rule) error {
	name, keywords, err := sanitizeRule(rule)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE name = ? COLLATE NOCASE`, name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrRuleExists
	}

	var maxPos sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(position) FROM categories`).Scan(&maxPos); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO categories (name, position) VALUES (?, ?)`,
		name, maxPos.Int64+1)
	if err != nil {
		return err
	}
	categoryID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertKeywords(ctx, tx, categoryID, keywords); err != nil {
		return err
	}

	return tx.Commit()
}

// Update renames a rule and/or replaces its keywords. An empty newName keeps
// the current name; nil keywords keep the current keyword list. The rule's
// position in the ordering is unchanged.
func (r *Repository) Update(ctx context.Context, name string, newName string, keywords []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var categoryID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name)).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRuleNotFound
	}
	if err != nil {
		return err
	}

	if newName = strings.TrimSpace(newName); newName != "" {
		var clash int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM categories WHERE name = ? COLLATE NOCASE AND id != ?`,
			newName, categoryID).Scan(&clash)
		if err != nil {
			return err
		}
		if clash > 0 {
			return ErrRuleExists
		}
		if _, err := tx.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, newName, categoryID); err != nil {
			return err
		}
	}

	if keywords != nil {
		cleaned := cleanKeywords(keywords)
		if len(cleaned) == 0 {
			return ErrInvalidRule
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM category_keywords WHERE category_id = ?`, categoryID); err != nil {
			return err
		}
		if err := insertKeywords(ctx, tx, categoryID, cleaned); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a rule by name (case-insensitive).
func (r *Repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func insertKeywords(ctx context.Context, tx *sql.Tx, categoryID int64, keywords []string) error {
	for i, kw := range keywords {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_keywords (category_id, keyword, position) VALUES (?, ?, ?)`,
			categoryID, kw, i); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeRule(rule Rule) (string, []string, error) {
	name := strings.TrimSpace(rule.Name)
	keywords := cleanKeywords(rule.Keywords)
	if name == "" || len(keywords) == 0 {
		return "", nil, ErrInvalidRule
	}
	return name, keywords, nil
}

func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return cleaned
}
