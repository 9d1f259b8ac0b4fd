package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Secondary indexes. Owner sets ("{prefix}:{owner}" -> member ids) avoid full
// collection scans; the product-name index maps lowercased display names to
// product codes for substring search.
//
// Index writes are not transactional with the primary save: a crash in
// between can orphan an index entry. Readers tolerate members that no longer
// resolve to a record.

const nameIndexPrefix = "product_name:"

// AddToSet registers member in the unordered set at key.
func (s *Store) AddToSet(ctx context.Context, key, member string) error {
	if err := s.rdb.SAdd(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("failed to add %s to %s: %w", member, key, err)
	}
	return nil
}

// RemoveFromSet drops member from the set at key.
func (s *Store) RemoveFromSet(ctx context.Context, key, member string) error {
	if err := s.rdb.SRem(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("failed to remove %s from %s: %w", member, key, err)
	}
	return nil
}

// SetMembers returns the members of the set at key; an absent set is empty.
func (s *Store) SetMembers(ctx context.Context, key string) ([]string, error) {
	members, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read set %s: %w", key, err)
	}
	return members, nil
}

// IndexProductName maps the lowercased display name to the product code.
func (s *Store) IndexProductName(ctx context.Context, name, code string) error {
	key := nameIndexPrefix + strings.ToLower(name)
	if err := s.rdb.Set(ctx, key, code, 0).Err(); err != nil {
		return fmt.Errorf("failed to index product name %q: %w", name, err)
	}
	return nil
}

// SearchProductNames scans the name index for entries containing the
// lowercased query and returns the matching product codes.
func (s *Store) SearchProductNames(ctx context.Context, query string) ([]string, error) {
	pattern := nameIndexPrefix + "*" + strings.ToLower(query) + "*"
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan name index: %w", err)
	}
	codes := make([]string, 0, len(keys))
	for _, key := range keys {
		code, err := s.rdb.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve name index %s: %w", key, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
