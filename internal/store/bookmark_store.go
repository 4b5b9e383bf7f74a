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

// Bookmark represents a row in the bookmarks table plus its expanded tag
// names. OwnerID is immutable after creation; Tags preserve the insertion
// order of the tag set with duplicates collapsed.
type Bookmark struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	Memo      string    `db:"memo"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Tags []string `db:"-"`
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
// Every write that removes tag associations ends with orphan-tag cleanup
// inside the same transaction.
type BookmarkStore struct {
	db   *sqlx.DB
	tags *TagStore
}

func NewBookmarkStore(db *sqlx.DB, tags *TagStore) *BookmarkStore {
	return &BookmarkStore{db: db, tags: tags}
}

// Create inserts a new bookmark for ownerID with the given tag set. Tag
// names are resolved (or lazily created) before the associations are
// written; the whole operation is one transaction.
func (s *BookmarkStore) Create(ctx context.Context, ownerID, title, url, memo string, tagNames []string) (*Bookmark, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id must not be blank", ErrValidation)
	}
	if err := ValidateBookmarkInput(title, url); err != nil {
		return nil, err
	}
	names, err := dedupeTagNames(tagNames)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin create", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookmarks (id, owner_id, title, url, memo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, ownerID, title, url, memo, now, now)
	if err != nil {
		return nil, storeErr("insert bookmark", err)
	}

	if err := s.attachTagsTx(ctx, tx, id, names); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit create", err)
	}

	return s.GetOwned(ctx, ownerID, id)
}

// GetOwned fetches a bookmark with tags expanded. Returns ErrNotFound if no
// bookmark with that id exists at all, ErrForbidden if it exists but belongs
// to a different owner.
func (s *BookmarkStore) GetOwned(ctx context.Context, ownerID, id string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, `SELECT * FROM bookmarks WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bookmark %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("get bookmark", err)
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("bookmark %q: %w", id, ErrForbidden)
	}

	tags, err := s.loadTags(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Tags = tags
	return &b, nil
}

// Update replaces title, url, memo, and the entire tag set. Existing
// associations are cleared and the new names attached; tags left with no
// references are removed before the transaction commits. updated_at changes
// on every successful call, including tag-only changes.
func (s *BookmarkStore) Update(ctx context.Context, ownerID, id, title, url, memo string, tagNames []string) (*Bookmark, error) {
	if err := ValidateBookmarkInput(title, url); err != nil {
		return nil, err
	}
	names, err := dedupeTagNames(tagNames)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin update", err)
	}
	defer tx.Rollback()

	if err := checkOwnedTx(ctx, tx, ownerID, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE bookmarks SET title = ?, url = ?, memo = ?, updated_at = ? WHERE id = ?
	`, title, url, memo, now, id)
	if err != nil {
		return nil, storeErr("update bookmark", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, id)
	if err != nil {
		return nil, storeErr("clear bookmark tags", err)
	}

	if err := s.attachTagsTx(ctx, tx, id, names); err != nil {
		return nil, err
	}

	if err := deleteOrphansTx(ctx, tx); err != nil {
		return nil, storeErr("delete orphan tags", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit update", err)
	}

	return s.GetOwned(ctx, ownerID, id)
}

// Delete removes the bookmark, its tag associations, and any tags orphaned
// by the removal, all in one transaction.
func (s *BookmarkStore) Delete(ctx context.Context, ownerID, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("begin delete", err)
	}
	defer tx.Rollback()

	if err := checkOwnedTx(ctx, tx, ownerID, id); err != nil {
		return err
	}

	// Associations are removed explicitly rather than relying on the FK
	// cascade, which SQLite only honors with foreign_keys=ON.
	_, err = tx.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, id)
	if err != nil {
		return storeErr("clear bookmark tags", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete bookmark", err)
	}

	if err := deleteOrphansTx(ctx, tx); err != nil {
		return storeErr("delete orphan tags", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit delete", err)
	}
	return nil
}

// ListOwned returns one page of the owner's bookmarks, default order by
// creation time ascending.
func (s *BookmarkStore) ListOwned(ctx context.Context, ownerID string, page PageRequest) (*BookmarkPage, error) {
	page = page.normalize()

	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM bookmarks WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, storeErr("count bookmarks", err)
	}

	var rows []*Bookmark
	err = s.db.SelectContext(ctx, &rows, `
		SELECT * FROM bookmarks WHERE owner_id = ?`+page.orderClause("")+`
		LIMIT ? OFFSET ?
	`, ownerID, page.Size, page.offset())
	if err != nil {
		return nil, storeErr("list bookmarks", err)
	}

	return s.expandPage(ctx, rows, page, total)
}

// ListByTag returns one page of the owner's bookmarks whose tag set contains
// tagName (exact match).
func (s *BookmarkStore) ListByTag(ctx context.Context, ownerID, tagName string, page PageRequest) (*BookmarkPage, error) {
	page = page.normalize()

	var total int
	err := s.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM bookmarks b
		INNER JOIN bookmark_tags bt ON bt.bookmark_id = b.id
		INNER JOIN tags t ON t.id = bt.tag_id
		WHERE b.owner_id = ? AND t.name = ?
	`, ownerID, tagName)
	if err != nil {
		return nil, storeErr("count bookmarks by tag", err)
	}

	var rows []*Bookmark
	err = s.db.SelectContext(ctx, &rows, `
		SELECT b.* FROM bookmarks b
		INNER JOIN bookmark_tags bt ON bt.bookmark_id = b.id
		INNER JOIN tags t ON t.id = bt.tag_id
		WHERE b.owner_id = ? AND t.name = ?`+page.orderClause("b.")+`
		LIMIT ? OFFSET ?
	`, ownerID, tagName, page.Size, page.offset())
	if err != nil {
		return nil, storeErr("list bookmarks by tag", err)
	}

	return s.expandPage(ctx, rows, page, total)
}

// Search returns one page of the owner's bookmarks whose title or URL
// contains keyword, case-insensitive.
func (s *BookmarkStore) Search(ctx context.Context, ownerID, keyword string, page PageRequest) (*BookmarkPage, error) {
	page = page.normalize()
	pattern := "%" + strings.ToLower(keyword) + "%"

	var total int
	err := s.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM bookmarks
		WHERE owner_id = ? AND (LOWER(title) LIKE ? OR LOWER(url) LIKE ?)
	`, ownerID, pattern, pattern)
	if err != nil {
		return nil, storeErr("count bookmark search", err)
	}

	var rows []*Bookmark
	err = s.db.SelectContext(ctx, &rows, `
		SELECT * FROM bookmarks
		WHERE owner_id = ? AND (LOWER(title) LIKE ? OR LOWER(url) LIKE ?)`+page.orderClause("")+`
		LIMIT ? OFFSET ?
	`, ownerID, pattern, pattern, page.Size, page.offset())
	if err != nil {
		return nil, storeErr("search bookmarks", err)
	}

	return s.expandPage(ctx, rows, page, total)
}

// attachTagsTx resolves each name via the tag registry and writes the
// association rows, preserving insertion order through the position column.
func (s *BookmarkStore) attachTagsTx(ctx context.Context, tx *sqlx.Tx, bookmarkID string, names []string) error {
	for i, name := range names {
		tag, err := s.tags.resolveOrCreateTx(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag_id, position) VALUES (?, ?, ?)
		`, bookmarkID, tag.ID, i)
		if err != nil {
			return storeErr("attach tag", err)
		}
	}
	return nil
}

// checkOwnedTx verifies existence and ownership inside a write transaction.
func checkOwnedTx(ctx context.Context, tx *sqlx.Tx, ownerID, id string) error {
	var rowOwner string
	err := tx.GetContext(ctx, &rowOwner, `SELECT owner_id FROM bookmarks WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("bookmark %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return storeErr("check bookmark owner", err)
	}
	if rowOwner != ownerID {
		return fmt.Errorf("bookmark %q: %w", id, ErrForbidden)
	}
	return nil
}

// loadTags returns the bookmark's tag names in insertion order.
func (s *BookmarkStore) loadTags(ctx context.Context, bookmarkID string) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, `
		SELECT t.name FROM tags t
		INNER JOIN bookmark_tags bt ON bt.tag_id = t.id
		WHERE bt.bookmark_id = ?
		ORDER BY bt.position ASC
	`, bookmarkID)
	if err != nil {
		return nil, storeErr("load bookmark tags", err)
	}
	return names, nil
}

func (s *BookmarkStore) expandPage(ctx context.Context, rows []*Bookmark, page PageRequest, total int) (*BookmarkPage, error) {
	for _, b := range rows {
		tags, err := s.loadTags(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Tags = tags
	}
	if rows == nil {
		rows = []*Bookmark{}
	}
	return &BookmarkPage{Content: rows, Page: page.Page, Size: page.Size, TotalElements: total}, nil
}
