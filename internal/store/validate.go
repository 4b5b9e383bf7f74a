package store

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateBookmarkInput checks the minimal constraints the store defends
// regardless of upstream validation: non-blank title, non-blank URL with an
// http(s) scheme and a host.
func ValidateBookmarkInput(title, rawURL string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: url must not be blank", ErrValidation)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url %q is not a valid http(s) URL", ErrValidation, rawURL)
	}
	return nil
}

// dedupeTagNames collapses duplicates while preserving insertion order
// (first occurrence wins). Blank names are rejected.
func dedupeTagNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: tag name must not be blank", ErrValidation)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
