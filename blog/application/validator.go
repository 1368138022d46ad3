package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrImageURLRequired    = errors.New("image URL is required")
	ErrImageURLScheme      = errors.New("image URL must start with http")
	ErrPublishDateRequired = errors.New("publish date is required")
	ErrPublishDateInvalid  = errors.New("publish date must be a calendar date (YYYY-MM-DD)")
	ErrPublishDatePast     = errors.New("publish date must be today or later")
	ErrCategoryRequired    = errors.New("category is required")
	ErrCategoryUnknown     = errors.New("category must be one of article, news, tutorial, interview")
)

// ValidationError reports the first rule a draft failed.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validator checks drafts against the submission rules, in a fixed order, stopping at the first failure.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a Validator. A nil clock uses time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

func (v *Validator) Validate(d domain.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrTitleRequired}
	}

	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrDescriptionRequired}
	}

	imageURL := strings.TrimSpace(d.ImageURL)
	if imageURL == "" {
		return &ValidationError{Field: "imageUrl", Err: ErrImageURLRequired}
	}
	if !strings.HasPrefix(imageURL, "http") {
		return &ValidationError{Field: "imageUrl", Err: ErrImageURLScheme}
	}

	if d.PublishDate == "" {
		return &ValidationError{Field: "publishDate", Err: ErrPublishDateRequired}
	}

	now := v.now()
	publishDate, err := time.ParseInLocation(domain.PublishDateLayout, strings.TrimSpace(d.PublishDate), now.Location())
	if err != nil {
		return &ValidationError{Field: "publishDate", Err: ErrPublishDateInvalid}
	}
	if publishDate.Before(startOfDay(now)) {
		return &ValidationError{Field: "publishDate", Err: ErrPublishDatePast}
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		return &ValidationError{Field: "category", Err: ErrCategoryRequired}
	}
	if !domain.Category(category).Valid() {
		return &ValidationError{Field: "category", Err: ErrCategoryUnknown}
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
