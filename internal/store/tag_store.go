package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Tag represents a row in the tags table. Tags are a shared vocabulary:
// identity is derived solely from exact, case-sensitive name equality, and
// a tag record exists only while at least one bookmark references it.
type Tag struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// TagStore is the sqlx-backed implementation of TagStoreIface.
type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// ResolveOrCreate looks a tag up by exact name and lazily creates it if
// absent. Safe under concurrent resolution of the same name: if the insert
// loses a race, the winner's row is fetched and returned instead.
func (s *TagStore) ResolveOrCreate(ctx context.Context, name string) (*Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: tag name must not be blank", ErrValidation)
	}
	return resolveOrCreateTag(ctx, s.db, name)
}

// resolveOrCreateTx is the transactional variant used by BookmarkStore while
// attaching tags inside a bookmark write.
func (s *TagStore) resolveOrCreateTx(ctx context.Context, tx *sqlx.Tx, name string) (*Tag, error) {
	return resolveOrCreateTag(ctx, tx, name)
}

// queryer is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx that the
// tag queries need.
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func resolveOrCreateTag(ctx context.Context, q queryer, name string) (*Tag, error) {
	var existing Tag
	err := q.GetContext(ctx, &existing, `SELECT * FROM tags WHERE name = ?`, name)
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, storeErr("lookup tag", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = q.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)
	`, id, name, now)
	if err != nil {
		// Race: a concurrent caller inserted the same name first. Retry the
		// lookup once; a second miss means the unique index itself is broken.
		if isUniqueConstraintError(err) {
			err = q.GetContext(ctx, &existing, `SELECT * FROM tags WHERE name = ?`, name)
			if err == sql.ErrNoRows {
				return nil, storeErr("tag unique index violated but tag absent on retry", err)
			}
			if err != nil {
				return nil, storeErr("retry tag lookup", err)
			}
			return &existing, nil
		}
		return nil, storeErr("insert tag", err)
	}

	return &Tag{ID: id, Name: name, CreatedAt: now}, nil
}

// GetByName returns the tag matching name exactly, or ErrNotFound.
func (s *TagStore) GetByName(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tags WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("get tag", err)
	}
	return &t, nil
}

// ListAll returns all tags ordered by name.
func (s *TagStore) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, storeErr("list tags", err)
	}
	return tags, nil
}

// deleteOrphansTx removes tags whose reference count dropped to zero. It runs
// at the end of every bookmark transaction that removes tag associations.
func deleteOrphansTx(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM bookmark_tags)
	`)
	return err
}

// isUniqueConstraintError checks whether err indicates a unique constraint
// violation. Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
