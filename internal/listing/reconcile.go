package listing

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when the server confirms a create without
// assigning an identity. The collection is left unchanged.
var ErrNoIdentity = errors.New("listing: server returned an item without identity")

// Create runs call and appends the returned entity once it is confirmed.
func (c *Controller[T]) Create(ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	item, err := call(ctx)
	if err == nil && c.cfg.Key(item) == "" {
		err = ErrNoIdentity
	}
	if err != nil {
		c.notify(ctx, failure(err, c.cfg.Messages.CreateFailed))
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if i := c.indexLocked(c.cfg.Key(item)); i >= 0 {
		c.items[i] = item
	} else {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	c.notify(ctx, success(c.cfg.Messages.Created))
	return item, nil
}

// Update runs call and replaces the item with key id by the returned entity.
// An item missing from the collection is appended.
func (c *Controller[T]) Update(ctx context.Context, id string, call func(context.Context) (T, error)) (T, error) {
	item, err := call(ctx)
	if err != nil {
		c.notify(ctx, failure(err, c.cfg.Messages.UpdateFailed))
		var zero T
		return zero, err
	}
	key := c.cfg.Key(item)
	if key == "" {
		key = id
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		i = c.indexLocked(key)
	}
	if i >= 0 {
		c.items[i] = item
	} else {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	c.notify(ctx, success(c.cfg.Messages.Updated))
	return item, nil
}

// Delete runs call and removes the item with key id. When that empties the
// current page the controller steps back one page.
func (c *Controller[T]) Delete(ctx context.Context, id string, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		c.notify(ctx, failure(err, c.cfg.Messages.DeleteFailed))
		return err
	}

	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	if c.page > 1 && len(c.visibleLocked()) == 0 {
		c.page--
	}
	c.mu.Unlock()

	c.notify(ctx, success(c.cfg.Messages.Deleted))
	return nil
}

// Patch changes an item in place without a server call.
func (c *Controller[T]) Patch(id string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return false
	}
	c.items[i] = fn(c.items[i])
	return true
}

func success(msg string) Notice {
	return Notice{Level: LevelSuccess, Title: "Success", Message: msg}
}
