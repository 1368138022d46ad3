package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PostService owns the in-memory post collection and keeps it identical to the persisted one.
// Writes start from a fresh read of storage, so changes made by another writer are kept,
// and the in-memory collection only changes after the repository has stored the new value.
type PostService struct {
	repo      domain.PostRepository
	validator *Validator

	now   func() time.Time
	newID func() string

	mu    sync.RWMutex
	posts []domain.Post
}

func NewPostService(repo domain.PostRepository, validator *Validator) *PostService {
	return &PostService{
		repo:      repo,
		validator: validator,
		now:       time.Now,
		newID:     uuid.NewString,
		posts:     []domain.Post{},
	}
}

// Load replaces the in-memory collection with the persisted one.
func (s *PostService) Load(ctx context.Context) {
	posts := s.repo.Load(ctx)

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	log.Info().Int("count", len(posts)).Msg("Loaded posts")
}

// Posts returns a copy of the collection in insertion order.
func (s *PostService) Posts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Get returns the post with the given id.
func (s *PostService) Get(id string) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.FindPost(s.posts, id)
}

// Create validates d and, when it passes, appends a new post to the collection.
// Validation failures are returned as *ValidationError and leave the collection untouched.
func (s *PostService) Create(ctx context.Context, d domain.Draft) (domain.Post, error) {
	if err := s.validator.Validate(d); err != nil {
		return domain.Post{}, err
	}

	d = d.Trimmed()
	post := domain.Post{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		PublishDate: d.PublishDate,
		Category:    domain.Category(d.Category),
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []domain.Post
	err := s.repo.Atomically(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Current(ctx)
		if err != nil {
			return err
		}
		if _, exists := domain.FindPost(existing, post.ID); exists {
			return fmt.Errorf("post ID %s already exists", post.ID)
		}

		updated, err = s.repo.Append(ctx, post, existing)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("postID", post.ID).Msg("Failed to persist new post")
		return domain.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	s.posts = updated

	log.Info().Str("postID", post.ID).Str("category", string(post.Category)).Msg("Created post")
	return post, nil
}

// Delete removes the post with the given id. Deleting an unknown id is not an error.
func (s *PostService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing, updated []domain.Post
	err := s.repo.Atomically(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.repo.Current(ctx)
		if err != nil {
			return err
		}

		updated, err = s.repo.Remove(ctx, id, existing)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("postID", id).Msg("Failed to persist post removal")
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if len(updated) != len(existing) {
		log.Info().Str("postID", id).Msg("Removed post")
	}
	s.posts = updated

	return nil
}

// Dashboard summarizes the current collection.
func (s *PostService) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return BuildDashboard(s.posts)
}
