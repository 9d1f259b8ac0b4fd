package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is the normal outcome of fetching an absent record. Corrupt
// stored JSON reads the same way at the boundary, but is logged so the two
// cases stay distinguishable in diagnostics.
var ErrNotFound = errors.New("store: record not found")

// Record is anything that can live in the store: it names its collection and
// its unique key. Values are serialized as JSON under "{collection}:{key}".
type Record interface {
	Collection() string
	Key() string
}

// Store is a thin object-mapping layer over a Redis backend. Writes are
// unconditional overwrites; there is no versioning and no optimistic
// concurrency.
type Store struct {
	rdb *redis.Client
}

func New(addr string) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func recordKey(collection, id string) string {
	return collection + ":" + id
}

// Save overwrites the record under "{collection}:{key}".
func (s *Store) Save(ctx context.Context, rec Record) error {
	return s.save(ctx, rec, 0)
}

// SaveTTL saves the record with an expiry, for cache-type records.
func (s *Store) SaveTTL(ctx context.Context, rec Record, ttl time.Duration) error {
	return s.save(ctx, rec, ttl)
}

func (s *Store) save(ctx context.Context, rec Record, ttl time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", rec.Collection(), err)
	}
	key := recordKey(rec.Collection(), rec.Key())
	if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Fetch loads "{collection}:{id}" into dest. A missing key returns
// ErrNotFound; so does a value that no longer unmarshals.
func (s *Store) Fetch(ctx context.Context, collection, id string, dest any) error {
	key := recordKey(collection, id)
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		log.Printf("store: discarding corrupt record %s: %v", key, err)
		return ErrNotFound
	}
	return nil
}

// List enumerates every record of a collection via a full key scan. Records
// that fail to decode are skipped. O(keys in the store); fine for the small
// personal datasets this targets.
func List[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	keys, err := s.rdb.Keys(ctx, collection+":*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s keys: %w", collection, err)
	}
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		b, err := s.rdb.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var item T
		if err := json.Unmarshal(b, &item); err != nil {
			log.Printf("store: skipping corrupt record %s: %v", key, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
