package store

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortColumns whitelists the columns callers may sort by. Anything else
// falls back to the default so caller input is never interpolated into SQL.
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// PageRequest describes one page of a listing: a 0-based page index, a page
// size, and an optional sort key/direction.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction string // "asc" or "desc"
}

// normalize clamps the request to sane bounds and the sort to whitelisted
// columns. Default order is creation time ascending.
func (p PageRequest) normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if !sortColumns[p.Sort] {
		p.Sort = "created_at"
	}
	if p.Direction != "desc" {
		p.Direction = "asc"
	}
	return p
}

// orderClause returns the ORDER BY fragment for the (already normalized)
// request, with a column prefix such as "b." for joined queries.
func (p PageRequest) orderClause(prefix string) string {
	dir := "ASC"
	if p.Direction == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + prefix + p.Sort + " " + dir
}

func (p PageRequest) offset() int {
	return p.Page * p.Size
}

// BookmarkPage is one page of bookmarks plus the metadata needed to compute
// total pages.
type BookmarkPage struct {
	Content       []*Bookmark
	Page          int
	Size          int
	TotalElements int
}

// TotalPages derives the page count from TotalElements and Size.
func (p *BookmarkPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}
