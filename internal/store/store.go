package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no bookmark with the requested id exists.
	ErrNotFound = errors.New("bookmark not found")

	// ErrForbidden is returned when a bookmark exists but belongs to a
	// different owner than the one presented.
	ErrForbidden = errors.New("bookmark belongs to another owner")

	// ErrValidation is returned for blank titles/URLs, malformed URLs, and
	// blank tag names. These are caller faults and are never retried.
	ErrValidation = errors.New("invalid input")

	// ErrStoreUnavailable wraps transient failures talking to the database.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeErr wraps a driver error so callers can test errors.Is(err, ErrStoreUnavailable)
// while the original cause stays in the message.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// BookmarkStoreIface exposes all bookmark data operations. Every operation
// takes the caller's resolved owner id and enforces visibility against it.
// No handler may query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	Create(ctx context.Context, ownerID, title, url, memo string, tagNames []string) (*Bookmark, error)
	GetOwned(ctx context.Context, ownerID, id string) (*Bookmark, error)
	Update(ctx context.Context, ownerID, id, title, url, memo string, tagNames []string) (*Bookmark, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListOwned(ctx context.Context, ownerID string, page PageRequest) (*BookmarkPage, error)
	ListByTag(ctx context.Context, ownerID, tagName string, page PageRequest) (*BookmarkPage, error)
	Search(ctx context.Context, ownerID, keyword string, page PageRequest) (*BookmarkPage, error)
}

// TagStoreIface exposes tag vocabulary operations. Tags are shared across
// owners; orphan cleanup happens inside bookmark write transactions.
type TagStoreIface interface {
	ResolveOrCreate(ctx context.Context, name string) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	ListAll(ctx context.Context) ([]*Tag, error)
}
