package listing

// View is an immutable snapshot of a controller for rendering.
type View[T any] struct {
	Items      []T               `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
	Filtered   int               `json:"filtered"`
	Query      string            `json:"query"`
	Filters    map[string]string `json:"filters"`
	Loading    bool              `json:"loading"`
	Loaded     bool              `json:"loaded"`
	// Empty means loading finished and nothing matches. It is never set
	// while loading.
	Empty bool   `json:"empty"`
	Error string `json:"error,omitempty"`
}

func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	filters := make(map[string]string, len(c.active))
	for k, v := range c.active {
		filters[k] = v
	}
	filtered := len(c.filteredLocked())
	v := View[T]{
		Items:      c.visibleLocked(),
		Page:       c.page,
		PageSize:   c.cfg.PageSize,
		TotalPages: c.totalPagesLocked(),
		Total:      len(c.items),
		Filtered:   filtered,
		Query:      c.query,
		Filters:    filters,
		Loading:    c.loading,
		Loaded:     c.loaded,
		Empty:      c.loaded && !c.loading && filtered == 0,
	}
	if c.loadErr != nil {
		v.Error = failure(c.loadErr, c.cfg.Messages.LoadFailed).Message
	}
	return v
}
