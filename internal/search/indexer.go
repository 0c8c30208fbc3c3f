package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"microblog/internal/models"

	"github.com/go-redis/redis/v8"
)

// Indexer mirrors searchable entities into a full-text index.
type Indexer interface {
	Index(ctx context.Context, posts []models.Post) error
	Remove(ctx context.Context, ids []uint) error
	Search(ctx context.Context, query string) ([]uint, error)
}

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases and splits a body into index terms.
func tokenize(body string) []string {
	return tokenRe.FindAllString(strings.ToLower(body), -1)
}

// RedisIndexer is a token index over redis sets: one set of post ids
// per term, plus a per-post set of terms so documents can be removed.
type RedisIndexer struct {
	client *redis.Client
	prefix string
}

// NewRedisIndexer creates a redis-backed indexer.
func NewRedisIndexer(client *redis.Client) *RedisIndexer {
	return &RedisIndexer{client: client, prefix: "search"}
}

func (ix *RedisIndexer) termKey(term string) string {
	return fmt.Sprintf("%s:term:%s", ix.prefix, term)
}

func (ix *RedisIndexer) docKey(id uint) string {
	return fmt.Sprintf("%s:post:%d", ix.prefix, id)
}

// Index adds the posts' terms to the index.
func (ix *RedisIndexer) Index(ctx context.Context, posts []models.Post) error {
	pipe := ix.client.Pipeline()
	for _, post := range posts {
		terms := tokenize(post.Body)
		for _, term := range terms {
			pipe.SAdd(ctx, ix.termKey(term), post.ID)
			pipe.SAdd(ctx, ix.docKey(post.ID), term)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Remove deletes the posts from the index.
func (ix *RedisIndexer) Remove(ctx context.Context, ids []uint) error {
	for _, id := range ids {
		terms, err := ix.client.SMembers(ctx, ix.docKey(id)).Result()
		if err != nil {
			return err
		}
		pipe := ix.client.Pipeline()
		for _, term := range terms {
			pipe.SRem(ctx, ix.termKey(term), id)
		}
		pipe.Del(ctx, ix.docKey(id))
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Search returns ids of posts containing every query term, newest id
// first.
func (ix *RedisIndexer) Search(ctx context.Context, query string) ([]uint, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	keys := make([]string, len(terms))
	for i, term := range terms {
		keys[i] = ix.termKey(term)
	}

	members, err := ix.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids, nil
}
