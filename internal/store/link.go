package store

import "time"

// DefaultEmoji is stored when a link is created without an emoji.
const DefaultEmoji = "🔗"

// Link is one bookmarked resource. ID and CreatedAt are only assigned by the
// SQL backend; file records are addressed by position and omit both.
type Link struct {
	ID          string    `json:"id,omitempty" db:"id" yaml:"id,omitempty"`
	Title       string    `json:"title" db:"title" yaml:"title"`
	URL         string    `json:"url" db:"url" yaml:"url"`
	Emoji       string    `json:"emoji" db:"emoji" yaml:"emoji"`
	Description string    `json:"description" db:"description" yaml:"description"`
	CreatedAt   time.Time `json:"createdAt,omitzero" db:"created_at" yaml:"createdAt,omitempty"`
}

// LinkInput is the candidate record accepted by Create.
type LinkInput struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// LinkPatch carries the fields an Update overwrites. Nil fields are left
// untouched on the stored record.
type LinkPatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	URL         *string `json:"url" validate:"omitnil,min=1"`
	Emoji       *string `json:"emoji"`
	Description *string `json:"description"`
}

// Empty reports whether the patch changes nothing.
func (p LinkPatch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Emoji == nil && p.Description == nil
}

// normalize materializes the optional fields. It is the only place defaults
// are substituted.
func (l *Link) normalize() {
	if l.Emoji == "" {
		l.Emoji = DefaultEmoji
	}
}
