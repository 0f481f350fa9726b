// Package listing keeps an in-memory entity collection with search, filter
// and pagination state, and patches it after confirmed mutations.
package listing

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dsignme/internal/apiclient"
)

// DefaultPageSize is used when Config.PageSize is not positive.
const DefaultPageSize = 6

var (
	// ErrNotReady is returned by Load while a required collection has not loaded.
	ErrNotReady = errors.New("listing: dependency not loaded")
	// ErrUnknownFilter is returned by SetFilter for a name not in Config.Filters.
	ErrUnknownFilter = errors.New("listing: unknown filter")
)

// Filter narrows the collection by a named value. Values "" and "all"
// disable the filter.
type Filter[T any] struct {
	Name  string
	Match func(item T, value string) bool
}

// Dependency is another collection that must be loaded first.
type Dependency interface {
	Loaded() bool
}

// Messages are the fallback texts of notices.
type Messages struct {
	LoadFailed   string
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
}

// Config describes one collection. Key and Load are required; a nil
// Notifier discards notices.
type Config[T any] struct {
	PageSize   int
	Key        func(T) string
	SearchText func(T) []string
	Filters    []Filter[T]
	Load       func(ctx context.Context) ([]T, error)
	Requires   []Dependency
	Notifier   Notifier
	Messages   Messages
}

// Controller owns one collection. It is safe for concurrent use; the lock
// is never held across Load or mutation calls.
type Controller[T any] struct {
	cfg     Config[T]
	filters map[string]Filter[T]

	mu      sync.Mutex
	items   []T
	query   string
	active  map[string]string
	page    int
	loading bool
	loaded  bool
	loadErr error
	loadSeq int
}

// New returns an empty controller on page 1.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Notifier == nil {
		cfg.Notifier = discard{}
	}
	cfg.Messages = cfg.Messages.withDefaults()
	filters := make(map[string]Filter[T], len(cfg.Filters))
	for _, f := range cfg.Filters {
		filters[f.Name] = f
	}
	return &Controller[T]{
		cfg:     cfg,
		filters: filters,
		items:   []T{},
		active:  make(map[string]string),
		page:    1,
	}
}

// Load fetches the whole collection and replaces the items. On failure the
// collection becomes empty and the error is reported.
func (c *Controller[T]) Load(ctx context.Context) error {
	for _, dep := range c.cfg.Requires {
		if !dep.Loaded() {
			return ErrNotReady
		}
	}

	c.mu.Lock()
	c.loading = true
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	items, err := c.cfg.Load(ctx)

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		return err
	}
	c.loading = false
	c.loaded = true
	c.loadErr = err
	if err != nil {
		c.items = []T{}
	} else {
		c.items = c.withIdentity(items)
	}
	c.page = clampPage(c.page, c.totalPagesLocked())
	c.mu.Unlock()

	if err != nil {
		c.notify(ctx, failure(err, c.cfg.Messages.LoadFailed))
	}
	return err
}

func (c *Controller[T]) withIdentity(items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if c.cfg.Key(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// Loaded reports whether a load has completed, successfully or not.
func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Err is the error of the last completed load, nil after a success.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// SetSearchQuery replaces the search text and returns to page 1.
func (c *Controller[T]) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.page = 1
}

// SetFilter sets or clears a named filter and returns to page 1.
func (c *Controller[T]) SetFilter(name, value string) error {
	if _, ok := c.filters[name]; !ok {
		return ErrUnknownFilter
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if inactive(value) {
		delete(c.active, name)
	} else {
		c.active[name] = value
	}
	c.page = 1
	return nil
}

// SetPage moves to p, clamped to the existing pages, and returns the page
// actually selected.
func (c *Controller[T]) SetPage(p int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = clampPage(p, c.totalPagesLocked())
	return c.page
}

func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller[T]) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Items returns a copy of the whole collection in fetch order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Find returns the item with the given key.
func (c *Controller[T]) Find(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(key); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Visible is the current page of the filtered collection.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

func (c *Controller[T]) FilteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filteredLocked())
}

func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller[T]) filteredLocked() []T {
	q := strings.ToLower(strings.TrimSpace(c.query))
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if q != "" && !c.matchesQuery(it, q) {
			continue
		}
		if !c.matchesFilters(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (c *Controller[T]) matchesQuery(item T, q string) bool {
	if c.cfg.SearchText == nil {
		return true
	}
	for _, text := range c.cfg.SearchText(item) {
		if strings.Contains(strings.ToLower(text), q) {
			return true
		}
	}
	return false
}

func (c *Controller[T]) matchesFilters(item T) bool {
	for name, value := range c.active {
		if !c.filters[name].Match(item, value) {
			return false
		}
	}
	return true
}

func (c *Controller[T]) visibleLocked() []T {
	filtered := c.filteredLocked()
	start := (c.page - 1) * c.cfg.PageSize
	if start >= len(filtered) {
		return []T{}
	}
	end := min(start+c.cfg.PageSize, len(filtered))
	return append([]T(nil), filtered[start:end]...)
}

func (c *Controller[T]) totalPagesLocked() int {
	n := len(c.filteredLocked())
	return (n + c.cfg.PageSize - 1) / c.cfg.PageSize
}

func (c *Controller[T]) indexLocked(key string) int {
	for i, it := range c.items {
		if c.cfg.Key(it) == key {
			return i
		}
	}
	return -1
}

func clampPage(p, total int) int {
	if p > total {
		p = total
	}
	if p < 1 {
		p = 1
	}
	return p
}

func inactive(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all")
}

func failure(err error, fallback string) Notice {
	return Notice{Level: LevelError, Title: "Error", Message: apiclient.FriendlyMessage(err, fallback)}
}

func (m Messages) withDefaults() Messages {
	def := func(v *string, s string) {
		if *v == "" {
			*v = s
		}
	}
	def(&m.LoadFailed, "Failed to load data.")
	def(&m.Created, "Created successfully.")
	def(&m.CreateFailed, "Failed to create.")
	def(&m.Updated, "Updated successfully.")
	def(&m.UpdateFailed, "Failed to update.")
	def(&m.Deleted, "Deleted successfully.")
	def(&m.DeleteFailed, "Failed to delete.")
	return m
}
