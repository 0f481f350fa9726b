package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDialogFlow(t *testing.T) {
	c, _ := newController(t, letters(3))
	var deleted []string
	d := NewDeleteDialog(c, func(_ context.Context, id string) error {
		deleted = append(deleted, id)
		return nil
	})

	require.ErrorIs(t, d.Confirm(context.Background()), ErrDialogBusy)

	require.NoError(t, d.Request("id-B"))
	assert.Equal(t, Confirming, d.State())
	assert.Equal(t, "id-B", d.Target())
	require.ErrorIs(t, d.Request("id-C"), ErrDialogBusy)

	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, []string{"id-B"}, deleted)
	assert.Equal(t, []string{"A", "C"}, names(c.Items()))
}

func TestDeleteDialogCancel(t *testing.T) {
	c, _ := newController(t, letters(2))
	d := NewDeleteDialog(c, func(context.Context, string) error {
		t.Fatal("delete must not run after cancel")
		return nil
	})
	require.NoError(t, d.Request("id-A"))
	require.NoError(t, d.Cancel())
	assert.Equal(t, Idle, d.State())
	require.ErrorIs(t, d.Confirm(context.Background()), ErrDialogBusy)
}

func TestDeleteDialogRejectsDoubleSubmit(t *testing.T) {
	c, _ := newController(t, letters(2))
	entered := make(chan struct{})
	release := make(chan struct{})
	d := NewDeleteDialog(c, func(context.Context, string) error {
		close(entered)
		<-release
		return nil
	})
	require.NoError(t, d.Request("id-A"))

	done := make(chan error, 1)
	go func() { done <- d.Confirm(context.Background()) }()
	<-entered

	assert.Equal(t, Submitting, d.State())
	require.ErrorIs(t, d.Confirm(context.Background()), ErrDialogBusy)
	require.ErrorIs(t, d.Cancel(), ErrDialogBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"B"}, names(c.Items()))
}

func TestDeleteDialogFailureKeepsItem(t *testing.T) {
	c, inbox := newController(t, letters(2))
	d := NewDeleteDialog(c, func(context.Context, string) error { return errors.New("offline") })
	require.NoError(t, d.Request("id-A"))
	require.Error(t, d.Confirm(context.Background()))
	assert.Equal(t, Idle, d.State())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, LevelError, inbox.Drain()[0].Level)
}

func TestInboxDrain(t *testing.T) {
	var b Inbox
	assert.Equal(t, []Notice{}, b.Drain())
	b.Notify(Notice{Level: LevelSuccess, Message: "x"})
	NotifierFunc(b.Notify).Notify(Notice{Level: LevelError, Message: "y"})
	assert.Len(t, b.Drain(), 2)
	assert.Empty(t, b.Drain())
}
