package api

import (
	"time"

	"github.com/markerhq/marker/internal/store"
)

// BookmarkRequest is the create/update payload. Update replaces all fields,
// including the whole tag set.
type BookmarkRequest struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Memo  string   `json:"memo"`
	Tags  []string `json:"tags"`
}

// BookmarkResponse is a single bookmark as returned to the caller.
type BookmarkResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Memo      string    `json:"memo"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageResponse is one page of bookmarks plus pagination metadata.
type PageResponse struct {
	Content       []*BookmarkResponse `json:"content"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalElements int                 `json:"total_elements"`
	TotalPages    int                 `json:"total_pages"`
}

func toBookmarkResponse(b *store.Bookmark) *BookmarkResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return &BookmarkResponse{
		ID:        b.ID,
		Title:     b.Title,
		URL:       b.URL,
		Memo:      b.Memo,
		Tags:      tags,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toPageResponse(p *store.BookmarkPage) *PageResponse {
	content := make([]*BookmarkResponse, 0, len(p.Content))
	for _, b := range p.Content {
		content = append(content, toBookmarkResponse(b))
	}
	return &PageResponse{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}
