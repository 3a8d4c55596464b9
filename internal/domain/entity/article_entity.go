package entity

import "time"

// Article is a news post. AuthorID is nil for anonymous articles; it is
// set at creation and never reassigned. UpdatedAt equals CreatedAt at
// creation and is refreshed on every successful edit, so
// UpdatedAt >= CreatedAt always holds.
type Article struct {
	ID       int64
	Title    string
	Content  string
	AuthorID *int64

	// AuthorUsername is a read-side field populated by repository joins;
	// empty for anonymous articles.
	AuthorUsername string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the given caller is the article's author.
// An absent caller or an anonymous article matches nobody.
func (a *Article) OwnedBy(userID *int64) bool {
	if userID == nil || a.AuthorID == nil {
		return false
	}
	return *a.AuthorID == *userID
}
