package search

import (
	"context"
	"sync"

	"microblog/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const collectorKey = "search:collector"

// Hook observes the store's commit boundary: gorm callbacks collect
// posts dirtied inside a transaction, and after the transaction
// commits the whole batch is forwarded to the indexer exactly once.
type Hook struct {
	indexer Indexer
	logger  *logrus.Logger
}

// NewHook creates a commit hook over the indexer.
func NewHook(indexer Indexer, logger *logrus.Logger) *Hook {
	return &Hook{indexer: indexer, logger: logger}
}

// Register installs the collection callbacks on the database handle.
func (h *Hook) Register(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").
		Register("search:collect_create", h.collectWrite); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").
		Register("search:collect_update", h.collectWrite); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").
		Register("search:collect_delete", h.collectDelete)
}

// Transaction runs fn in one gorm transaction and, on commit, flushes
// the posts collected during it to the indexer.
func (h *Hook) Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	c := newCollector()
	if err := db.WithContext(ctx).Set(collectorKey, c).Transaction(fn); err != nil {
		return err
	}
	h.flush(ctx, c)
	return nil
}

func (h *Hook) collectWrite(db *gorm.DB) {
	post, ok := statementPost(db)
	if !ok {
		return
	}
	if c := collectorFrom(db); c != nil {
		c.add(*post)
		return
	}
	// Mutation outside a wrapped transaction: forward immediately.
	h.flushOne(db.Statement.Context, *post)
}

func (h *Hook) collectDelete(db *gorm.DB) {
	post, ok := statementPost(db)
	if !ok || post.ID == 0 {
		return
	}
	if c := collectorFrom(db); c != nil {
		c.remove(post.ID)
		return
	}
	if err := h.indexer.Remove(db.Statement.Context, []uint{post.ID}); err != nil {
		h.logger.WithError(err).Error("remove post from search index")
	}
}

func (h *Hook) flush(ctx context.Context, c *collector) {
	added, removed := c.drain()
	if len(added) > 0 {
		if err := h.indexer.Index(ctx, added); err != nil {
			h.logger.WithError(err).Error("index posts")
		}
	}
	if len(removed) > 0 {
		if err := h.indexer.Remove(ctx, removed); err != nil {
			h.logger.WithError(err).Error("remove posts from search index")
		}
	}
}

func (h *Hook) flushOne(ctx context.Context, post models.Post) {
	if err := h.indexer.Index(ctx, []models.Post{post}); err != nil {
		h.logger.WithError(err).Error("index post")
	}
}

// statementPost extracts the post a statement operated on, if any.
func statementPost(db *gorm.DB) (*models.Post, bool) {
	if db.Error != nil {
		return nil, false
	}
	post, ok := db.Statement.Dest.(*models.Post)
	if !ok || post == nil {
		return nil, false
	}
	return post, true
}

// collectorFrom reads the per-transaction collector, if the statement
// runs inside a wrapped transaction.
func collectorFrom(db *gorm.DB) *collector {
	v, ok := db.Get(collectorKey)
	if !ok {
		return nil
	}
	c, ok := v.(*collector)
	if !ok {
		return nil
	}
	return c
}

// collector accumulates dirtied posts for one transaction, deduplicated
// by id.
type collector struct {
	mu      sync.Mutex
	added   map[uint]models.Post
	order   []uint
	removed []uint
}

func newCollector() *collector {
	return &collector{added: make(map[uint]models.Post)}
}

func (c *collector) add(post models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.added[post.ID]; !seen {
		c.order = append(c.order, post.ID)
	}
	c.added[post.ID] = post
}

func (c *collector) remove(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.added, id)
	c.removed = append(c.removed, id)
}

func (c *collector) drain() ([]models.Post, []uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := make([]models.Post, 0, len(c.added))
	for _, id := range c.order {
		if post, ok := c.added[id]; ok {
			added = append(added, post)
		}
	}
	removed := c.removed
	c.added = make(map[uint]models.Post)
	c.order = nil
	c.removed = nil
	return added, removed
}
