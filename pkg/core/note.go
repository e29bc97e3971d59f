package core

import (
	"fmt"
	"strings"
	"time"
)

// Note is the central entity of the domain.
// It is a title/content pair with an identity and timestamps,
// agnostic to the storage format used to persist it.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Matches reports whether query is a case-insensitive substring of the title or the content.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// Patch is a partial update of a Note. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
}

// SetTitle returns a Patch that only replaces the title.
func SetTitle(title string) Patch {
	return Patch{Title: &title}
}

// SetContent returns a Patch that only replaces the content.
func SetContent(content string) Patch {
	return Patch{Content: &content}
}

// IsEmpty reports whether the patch carries no field.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// apply merges the patch into n and stamps UpdatedAt.
// The new UpdatedAt is always strictly after the previous one.
func (p Patch) apply(n *Note, now time.Time) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if !now.After(n.UpdatedAt) {
		now = n.UpdatedAt.Add(time.Nanosecond)
	}
	n.UpdatedAt = now
}

// ValidateCollection checks the invariants of a decoded collection:
// non-empty unique ids and CreatedAt not after UpdatedAt.
func ValidateCollection(notes []Note) error {
	seen := make(map[string]struct{}, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			return fmt.Errorf("%w: note %d has no id", ErrCorrupt, i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrCorrupt, n.ID)
		}
		seen[n.ID] = struct{}{}
		if n.CreatedAt.After(n.UpdatedAt) {
			return fmt.Errorf("%w: note %q updated before it was created", ErrCorrupt, n.ID)
		}
	}
	return nil
}
