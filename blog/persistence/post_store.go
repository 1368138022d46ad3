package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var _ domain.PostRepository = (*PostStore)(nil)

// DefaultStorageKey is the key the collection is stored under.
const DefaultStorageKey = "posts"

// PostStore keeps the whole post collection as a single JSON array under one key.
type PostStore struct {
	kv  domain.KeyValueStore
	key string

	now   func() time.Time
	newID func(index int, raw []byte) string
}

// recordIDNamespace scopes the ids derived for stored records without a usable one.
var recordIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("postboard:posts"))

// derivedID is stable for as long as the element at index is stored unchanged,
// so every read of one stored collection assigns the same ids.
func derivedID(index int, raw []byte) string {
	return uuid.NewSHA1(recordIDNamespace, append([]byte(strconv.Itoa(index)+":"), raw...)).String()
}

// NewPostStore creates a PostStore persisting to kv under key. An empty key selects DefaultStorageKey.
func NewPostStore(kv domain.KeyValueStore, key string) *PostStore {
	if key == "" {
		key = DefaultStorageKey
	}

	return &PostStore{
		kv:    kv,
		key:   key,
		now:   func() time.Time { return time.Now().UTC() },
		newID: derivedID,
	}
}

// Load reads and normalizes the stored collection.
// Missing, empty or unreadable content yields an empty collection; Load never fails.
func (s *PostStore) Load(ctx context.Context) []domain.Post {
	posts, err := s.Current(ctx)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("Failed to read posts, starting empty")
		return []domain.Post{}
	}
	return posts
}

// Current reads and normalizes the stored collection.
// Only a failed read is an error; malformed content is an empty collection, as for Load.
func (s *PostStore) Current(ctx context.Context) ([]domain.Post, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	if !found {
		return []domain.Post{}, nil
	}

	posts, err := s.decode(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("Stored posts are unreadable, starting empty")
		return []domain.Post{}, nil
	}

	return posts, nil
}

// Atomically runs fn in one storage transaction.
func (s *PostStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.kv.Atomically(ctx, fn)
}

func (s *PostStore) decode(raw []byte) ([]domain.Post, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []domain.Post{}, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("failed to decode post collection: %w", err)
	}

	now := s.now()
	posts := make([]domain.Post, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))
	legacy := 0
	for i, el := range elements {
		record, err := DecodeRecord(el)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping unreadable post record")
			continue
		}
		if record.Shape() == ShapeLegacy {
			legacy++
		}

		newID := func() string { return s.newID(i, el) }
		p := record.Normalize(now, newID)
		if _, dup := seen[p.ID]; dup {
			oldID := p.ID
			p.ID = newID()
			log.Warn().Int("index", i).Str("postID", oldID).Str("newID", p.ID).Msg("Duplicate post id, assigned a new one")
		}
		seen[p.ID] = struct{}{}
		posts = append(posts, p)
	}

	if legacy > 0 {
		log.Info().Int("count", legacy).Msg("Normalized legacy post records")
	}

	return posts, nil
}

// Append adds p to the end of existing and persists the result.
func (s *PostStore) Append(ctx context.Context, p domain.Post, existing []domain.Post) ([]domain.Post, error) {
	updated := domain.AppendPost(existing, p)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove drops the post with the given id from existing and persists the result.
// Removing an unknown id still rewrites the stored collection.
func (s *PostStore) Remove(ctx context.Context, id string, existing []domain.Post) ([]domain.Post, error) {
	updated := domain.RemovePost(existing, id)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostStore) save(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, payload); err != nil {
		return fmt.Errorf("failed to save posts: %w", err)
	}

	return nil
}
