package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
	Kind string
}

type fetcher struct {
	mu    sync.Mutex
	items []item
	err   error
	calls int
}

func (f *fetcher) load(context.Context) ([]item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]item(nil), f.items...), f.err
}

func newController(t *testing.T, items []item, opts ...func(*Config[item])) (*Controller[item], *Inbox) {
	t.Helper()
	inbox := &Inbox{}
	f := &fetcher{items: items}
	cfg := Config[item]{
		PageSize:   6,
		Key:        func(it item) string { return it.ID },
		SearchText: func(it item) []string { return []string{it.Name} },
		Filters: []Filter[item]{
			{Name: "kind", Match: func(it item, v string) bool { return it.Kind == v }},
		},
		Load:     f.load,
		Notifier: inbox,
	}
	for _, o := range opts {
		o(&cfg)
	}
	c := New(cfg)
	require.NoError(t, c.Load(context.Background()))
	return c, inbox
}

func letters(n int) []item {
	out := make([]item, n)
	for i := 0; i < n; i++ {
		l := string(rune('A' + i))
		out[i] = item{ID: "id-" + l, Name: l}
	}
	return out
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSettersResetPage(t *testing.T) {
	c, _ := newController(t, letters(20))

	c.SetPage(3)
	c.SetSearchQuery("")
	assert.Equal(t, 1, c.Page())

	c.SetPage(2)
	require.NoError(t, c.SetFilter("kind", "all"))
	assert.Equal(t, 1, c.Page())

	c.SetPage(2)
	require.ErrorIs(t, c.SetFilter("missing", "x"), ErrUnknownFilter)
	assert.Equal(t, 2, c.Page(), "unknown filter must not change state")
}

func TestVisibleSliceSize(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			c, _ := newController(t, letters(n))
			for p := 1; p <= max(1, c.TotalPages()); p++ {
				c.SetPage(p)
				want := min(6, c.FilteredCount()-(p-1)*6)
				assert.Len(t, c.Visible(), max(0, want))
				assert.LessOrEqual(t, len(c.Visible()), 6)
			}
		})
	}
}

func TestSetPageClamps(t *testing.T) {
	c, _ := newController(t, letters(7))
	assert.Equal(t, 2, c.SetPage(9))
	assert.Equal(t, 1, c.SetPage(0))

	empty, _ := newController(t, nil)
	assert.Equal(t, 1, empty.SetPage(4))
}

func TestSevenItemsDeleteLastOnSecondPage(t *testing.T) {
	c, inbox := newController(t, letters(7))

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, names(c.Visible()))
	assert.Equal(t, 2, c.TotalPages())

	c.SetPage(2)
	assert.Equal(t, []string{"G"}, names(c.Visible()))

	err := c.Delete(context.Background(), "id-G", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, names(c.Visible()))
	assert.Equal(t, []Notice{{Level: LevelSuccess, Title: "Success", Message: "Deleted successfully."}}, inbox.Drain())
}

func TestDeleteKeepsPageWhenItemsRemain(t *testing.T) {
	c, _ := newController(t, letters(8))
	c.SetPage(2)
	require.NoError(t, c.Delete(context.Background(), "id-H", func(context.Context) error { return nil }))
	assert.Equal(t, 2, c.Page())
	assert.Equal(t, []string{"G"}, names(c.Visible()))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	c, _ := newController(t, []item{{ID: "1", Name: "Logo Design"}, {ID: "2", Name: "Website"}})
	c.SetSearchQuery("log")
	assert.Equal(t, []string{"Logo Design"}, names(c.Visible()))

	c.SetSearchQuery("LOG")
	assert.Equal(t, 1, c.FilteredCount())
}

func TestFilterCombinesWithSearch(t *testing.T) {
	c, _ := newController(t, []item{
		{ID: "1", Name: "Logo one", Kind: "image"},
		{ID: "2", Name: "Logo two", Kind: "video"},
		{ID: "3", Name: "Site", Kind: "image"},
	})
	require.NoError(t, c.SetFilter("kind", "image"))
	c.SetSearchQuery("logo")
	assert.Equal(t, []string{"Logo one"}, names(c.Visible()))

	require.NoError(t, c.SetFilter("kind", "all"))
	assert.Equal(t, 2, c.FilteredCount())
}

func TestCreateUsesServerResponse(t *testing.T) {
	c, inbox := newController(t, letters(2))
	submitted := item{Name: "New"}

	got, err := c.Create(context.Background(), func(context.Context) (item, error) {
		return item{ID: "srv-1", Name: "New (saved)"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", got.ID)
	assert.NotEqual(t, submitted, got)

	count := 0
	for _, it := range c.Items() {
		if it.ID == "srv-1" {
			count++
			assert.Equal(t, "New (saved)", it.Name)
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, inbox.Drain(), 1)
}

func TestCreateWithoutIdentityIsRejected(t *testing.T) {
	c, inbox := newController(t, letters(2))
	before := c.Items()

	_, err := c.Create(context.Background(), func(context.Context) (item, error) {
		return item{Name: "anon"}, nil
	})
	require.ErrorIs(t, err, ErrNoIdentity)
	assert.Empty(t, cmp.Diff(before, c.Items()))
	assert.Equal(t, LevelError, inbox.Drain()[0].Level)
}

func TestUpdateReplacesWithServerObject(t *testing.T) {
	c, _ := newController(t, []item{{ID: "1", Name: "Old", Kind: "image"}, {ID: "2", Name: "Other"}})

	_, err := c.Update(context.Background(), "1", func(context.Context) (item, error) {
		return item{ID: "1", Name: "Renamed"}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]item{{ID: "1", Name: "Renamed"}, {ID: "2", Name: "Other"}}, c.Items()))
}

func TestUpdateAppendsMissingItem(t *testing.T) {
	c, _ := newController(t, letters(1))
	_, err := c.Update(context.Background(), "x", func(context.Context) (item, error) {
		return item{ID: "x", Name: "X"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "X"}, names(c.Items()))
}

func TestFailedMutationsLeaveItemsUnchanged(t *testing.T) {
	c, inbox := newController(t, letters(7), func(cfg *Config[item]) {
		cfg.Messages.DeleteFailed = "Failed to delete category."
	})
	before := c.Items()
	netErr := errors.New("connection reset")
	ctx := context.Background()

	_, err := c.Create(ctx, func(context.Context) (item, error) { return item{}, netErr })
	require.ErrorIs(t, err, netErr)
	_, err = c.Update(ctx, "id-A", func(context.Context) (item, error) { return item{}, netErr })
	require.ErrorIs(t, err, netErr)
	err = c.Delete(ctx, "id-A", func(context.Context) error { return netErr })
	require.ErrorIs(t, err, netErr)

	assert.Empty(t, cmp.Diff(before, c.Items()))
	notices := inbox.Drain()
	require.Len(t, notices, 3)
	for _, n := range notices {
		assert.Equal(t, LevelError, n.Level)
	}
	assert.Equal(t, "Failed to delete category.", notices[2].Message)
}

func TestLoadFailureEmptiesAndNotifies(t *testing.T) {
	inbox := &Inbox{}
	f := &fetcher{items: letters(3)}
	c := New(Config[item]{Key: func(it item) string { return it.ID }, Load: f.load, Notifier: inbox})
	require.NoError(t, c.Load(context.Background()))
	require.Len(t, c.Items(), 3)

	f.err = errors.New("boom")
	require.Error(t, c.Load(context.Background()))
	assert.Empty(t, c.Items())

	v := c.View()
	assert.True(t, v.Loaded)
	assert.False(t, v.Loading)
	assert.True(t, v.Empty)
	assert.Equal(t, "Failed to load data.", v.Error)
	assert.Len(t, inbox.Drain(), 1)
}

func TestLoadDropsItemsWithoutIdentity(t *testing.T) {
	c, _ := newController(t, []item{{ID: "1", Name: "a"}, {Name: "b"}})
	assert.Equal(t, []string{"a"}, names(c.Items()))
}

func TestLoadWaitsForDependency(t *testing.T) {
	parentFetch := &fetcher{items: letters(2)}
	parent := New(Config[item]{Key: func(it item) string { return it.ID }, Load: parentFetch.load})
	childFetch := &fetcher{items: letters(1)}
	child := New(Config[item]{
		Key:      func(it item) string { return it.ID },
		Load:     childFetch.load,
		Requires: []Dependency{parent},
	})

	require.ErrorIs(t, child.Load(context.Background()), ErrNotReady)
	assert.Equal(t, 0, childFetch.calls)

	require.NoError(t, parent.Load(context.Background()))
	require.NoError(t, child.Load(context.Background()))
	assert.Equal(t, 1, childFetch.calls)
}

func TestViewBeforeLoadIsNotEmpty(t *testing.T) {
	c := New(Config[item]{Key: func(it item) string { return it.ID }, Load: (&fetcher{}).load})
	v := c.View()
	assert.False(t, v.Empty)
	assert.False(t, v.Loaded)
	assert.Equal(t, 6, v.PageSize)
}

func TestPatch(t *testing.T) {
	c, _ := newController(t, letters(2))
	ok := c.Patch("id-B", func(it item) item { it.Kind = "read"; return it })
	require.True(t, ok)
	got, _ := c.Find("id-B")
	assert.Equal(t, "read", got.Kind)
	assert.False(t, c.Patch("nope", func(it item) item { return it }))
}

func TestErrClearsAfterSuccessfulReload(t *testing.T) {
	f := &fetcher{items: letters(2), err: errors.New("boom")}
	c := New(Config[item]{Key: func(it item) string { return it.ID }, Load: f.load})

	require.Error(t, c.Load(context.Background()))
	require.Error(t, c.Err())

	f.err = nil
	require.NoError(t, c.Load(context.Background()))
	assert.NoError(t, c.Err())
	assert.Len(t, c.Items(), 2)
}

func TestNotifierFromContext(t *testing.T) {
	c, shared := newController(t, letters(1))
	var mine Inbox
	ctx := WithNotifier(context.Background(), &mine)

	_, err := c.Create(ctx, func(context.Context) (item, error) { return item{ID: "x", Name: "X"}, nil })
	require.NoError(t, err)

	assert.Empty(t, shared.Drain())
	notices := mine.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, LevelSuccess, notices[0].Level)
}
