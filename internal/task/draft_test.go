package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_SaveCommitsDraft(t *testing.T) {
	s := openStore(t, &memPersister{})
	a := s.Create("T1", "first")

	var e Editor
	e.Begin(a)
	require.NoError(t, e.SetTitle("T2"))

	// The store is untouched while editing.
	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Title)

	applied, err := e.Save(s)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, DraftClosed, e.State())

	got, err = s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "first", got.Description)
	assert.Equal(t, a.CreationDate, got.CreationDate)
}

func TestEditor_CancelLeavesStoreUnchanged(t *testing.T) {
	p := &memPersister{}
	s := openStore(t, p)
	a := s.Create("T1", "first")
	saves := p.saves

	var e Editor
	e.Begin(a)
	require.NoError(t, e.SetTitle("T2"))
	require.NoError(t, e.SetDescription("second"))
	e.Cancel()

	assert.False(t, e.Editing())
	assert.Equal(t, []Task{a}, s.Tasks())
	assert.Equal(t, saves, p.saves)
}

func TestEditor_EmptyFieldsAreLegal(t *testing.T) {
	s := openStore(t, &memPersister{})
	a := s.Create("T1", "first")

	var e Editor
	e.Begin(a)
	require.NoError(t, e.SetTitle(""))
	require.NoError(t, e.SetDescription(""))
	_, err := e.Save(s)
	require.NoError(t, err)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
	assert.Equal(t, "", got.Description)
}

func TestEditor_SaveAfterDeleteDoesNotRecreate(t *testing.T) {
	s := openStore(t, &memPersister{})
	a := s.Create("T1", "")

	var e Editor
	e.Begin(a)
	require.NoError(t, e.SetTitle("T2"))
	s.Delete(a.ID)

	applied, err := e.Save(s)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, s.Len())
}

func TestEditor_ClosedOperationsFail(t *testing.T) {
	var e Editor
	assert.Equal(t, DraftClosed, e.State())

	assert.ErrorIs(t, e.SetTitle("x"), ErrDraftClosed)
	assert.ErrorIs(t, e.SetDescription("x"), ErrDraftClosed)
	_, err := e.Draft()
	assert.ErrorIs(t, err, ErrDraftClosed)
	_, err = e.Save(openStore(t, &memPersister{}))
	assert.ErrorIs(t, err, ErrDraftClosed)
}

func TestEditor_DraftIsACopy(t *testing.T) {
	s := openStore(t, &memPersister{})
	a := s.Create("T1", "")

	var e Editor
	e.Begin(a)
	require.NoError(t, e.SetTitle("changed"))

	draft, err := e.Draft()
	require.NoError(t, err)
	assert.Equal(t, "changed", draft.Title)
	assert.Equal(t, "T1", a.Title)
	assert.Equal(t, "editing", e.State().String())
}
