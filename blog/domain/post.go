package domain

import (
	"context"
	"strings"
	"time"
)

// PublishDateLayout is the calendar-date format of Post.PublishDate.
const PublishDateLayout = "2006-01-02"

// Post represents a content record managed by the board.
// Posts are never edited after creation; they are only appended to or removed from the collection.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	PublishDate string    `json:"publishDate"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft holds the candidate fields of a post before validation.
type Draft struct {
	Title       string
	Description string
	ImageURL    string
	PublishDate string
	Category    string
}

// Trimmed returns a copy of the draft with surrounding whitespace removed from the free-text fields.
func (d Draft) Trimmed() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		ImageURL:    strings.TrimSpace(d.ImageURL),
		PublishDate: strings.TrimSpace(d.PublishDate),
		Category:    strings.TrimSpace(d.Category),
	}
}

// PostRepository persists the whole post collection.
// Append and Remove are pure over the passed collection and overwrite the stored value with their result.
type PostRepository interface {
	// Load returns the stored collection, or an empty one when it cannot be read.
	Load(ctx context.Context) []Post

	// Current returns the stored collection and reports read failures instead of hiding them.
	Current(ctx context.Context) ([]Post, error)

	Append(ctx context.Context, p Post, existing []Post) ([]Post, error)
	Remove(ctx context.Context, id string, existing []Post) ([]Post, error)

	// Atomically runs fn so that reads and writes made with its ctx see no other writer in between.
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyValueStore is a flat, string-keyed blob store.
type KeyValueStore interface {
	// Get returns the value for key. found is false when the key has never been set.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Atomically runs fn in a single transaction. Get and Set called with its ctx join it.
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}
