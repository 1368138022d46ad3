package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
)

// RecordShape tags which field-naming convention a stored record uses.
type RecordShape int

const (
	ShapeCurrent RecordShape = iota
	ShapeLegacy
)

func (s RecordShape) String() string {
	if s == ShapeLegacy {
		return "legacy"
	}
	return "current"
}

// Record is one decoded element of the stored collection.
// It is either a CurrentRecord or a LegacyRecord.
type Record interface {
	Shape() RecordShape
	Normalize(now time.Time, newID func() string) domain.Post
}

// looseString accepts JSON strings, numbers and booleans; null leaves it empty.
// Older clients stored ids as numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = looseString(n.String())
		return nil
	}

	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unsupported value %s", b)
	}
	*s = looseString(strconv.FormatBool(v))
	return nil
}

// legacyFields are the field names written by the first version of the board.
type legacyFields struct {
	ID          looseString `json:"id"`
	Title       looseString `json:"titulo"`
	Description looseString `json:"descricao"`
	Cover       looseString `json:"capa"`
	Date        looseString `json:"data"`
	Type        looseString `json:"tipo"`
	CreatedAt   looseString `json:"createdAt"`
}

type currentFields struct {
	ID          looseString `json:"id"`
	Title       looseString `json:"title"`
	Description looseString `json:"description"`
	ImageURL    looseString `json:"imageUrl"`
	PublishDate looseString `json:"publishDate"`
	Category    looseString `json:"category"`
	CreatedAt   looseString `json:"createdAt"`
}

func (f currentFields) empty() bool {
	return f.Title == "" && f.Description == "" && f.ImageURL == "" && f.PublishDate == "" && f.Category == ""
}

// CurrentRecord uses the current field names. Individual fields written by
// transitional clients may still only exist under their legacy names, so the
// legacy values are kept as per-field fallbacks.
type CurrentRecord struct {
	fields   currentFields
	fallback legacyFields
}

func (r CurrentRecord) Shape() RecordShape { return ShapeCurrent }

func (r CurrentRecord) Normalize(now time.Time, newID func() string) domain.Post {
	return domain.Post{
		ID:          normalizeID(firstNonEmpty(r.fields.ID, r.fallback.ID), newID),
		Title:       string(firstNonEmpty(r.fields.Title, r.fallback.Title)),
		Description: string(firstNonEmpty(r.fields.Description, r.fallback.Description)),
		ImageURL:    string(firstNonEmpty(r.fields.ImageURL, r.fallback.Cover)),
		PublishDate: string(firstNonEmpty(r.fields.PublishDate, r.fallback.Date)),
		Category:    normalizeCategory(firstNonEmpty(r.fields.Category, r.fallback.Type)),
		CreatedAt:   normalizeCreatedAt(r.fields.CreatedAt, now),
	}
}

// LegacyRecord carries only the legacy field names.
type LegacyRecord struct {
	fields legacyFields
}

func (r LegacyRecord) Shape() RecordShape { return ShapeLegacy }

func (r LegacyRecord) Normalize(now time.Time, newID func() string) domain.Post {
	return domain.Post{
		ID:          normalizeID(r.fields.ID, newID),
		Title:       string(r.fields.Title),
		Description: string(r.fields.Description),
		ImageURL:    string(r.fields.Cover),
		PublishDate: string(r.fields.Date),
		Category:    normalizeCategory(r.fields.Type),
		CreatedAt:   normalizeCreatedAt(r.fields.CreatedAt, now),
	}
}

// DecodeRecord classifies a single stored element.
// A record carrying none of the current content fields is a LegacyRecord.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("record is not an object")
	}

	var current currentFields
	if err := json.Unmarshal(trimmed, &current); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	var legacy legacyFields
	if err := json.Unmarshal(trimmed, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode legacy fields: %w", err)
	}

	if current.empty() {
		return LegacyRecord{fields: legacy}, nil
	}
	return CurrentRecord{fields: current, fallback: legacy}, nil
}

func firstNonEmpty(values ...looseString) looseString {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeID(id looseString, newID func() string) string {
	if id == "" {
		return newID()
	}
	return string(id)
}

func normalizeCategory(raw looseString) domain.Category {
	c := domain.NormalizeCategory(string(raw))
	if c == "" {
		return domain.CategoryArticle
	}
	return c
}

func normalizeCreatedAt(raw looseString, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return now
	}
	return t
}
