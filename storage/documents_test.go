package storage

import (
	"docsync/errors"
	"fmt"
	"log/slog"
	"testing"

	"docsync/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDiskStore(t *testing.T) *DocumentStore {
	t.Helper()
	backend := NewDiskBackend(t.TempDir())
	require.NoError(t, backend.EnsureRoot())
	return NewDocumentStore(backend, slog.Default())
}

func TestDocumentStore_Create_ThenCreateAgain(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	// When the same name is created twice
	first := store.Create("notes.txt")
	second := store.Create("notes.txt")

	// Then only the first succeeds and the document stays empty
	req.True(first)
	req.False(second)
	content, err := store.Read("notes.txt")
	req.NoError(err)
	req.Empty(content)
}

func TestDocumentStore_Create_InvalidName(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	for _, name := range []string{"", "   ", "../etc", "a/b", `a\b`, "a..b"} {
		req.False(store.Create(name), "name %q must be rejected", name)
	}
}

func TestDocumentStore_WriteRead_RoundTrip(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	req.NoError(store.Write("doc.txt", "x"))

	content, err := store.Read("doc.txt")
	req.NoError(err)
	req.Equal("x", content)
}

func TestDocumentStore_Write_UnescapesLiteralNewlines(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	// Given content holding the literal two-character sequence backslash-n
	req.NoError(store.Write("doc.txt", `line1\nline2\nline3`))

	// Then every such sequence is persisted as an actual newline
	content, err := store.Read("doc.txt")
	req.NoError(err)
	req.Equal("line1\nline2\nline3", content)
}

func TestDocumentStore_Write_NameErrors(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	req.ErrorIs(store.Write("", "x"), errors.ErrEmptyName)
	req.ErrorIs(store.Write("   ", "x"), errors.ErrEmptyName)
	req.ErrorIs(store.Write("../up", "x"), errors.ErrInvalidName)
	req.ErrorIs(store.Write("a/b", "x"), errors.ErrInvalidName)
	req.ErrorIs(store.Write(`a\b`, "x"), errors.ErrInvalidName)
}

func TestDocumentStore_Read_NotFound(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	_, err := store.Read("missing.txt")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestDocumentStore_List_SkipsDirectories(t *testing.T) {
	req := require.New(t)
	backend := NewDiskBackend(t.TempDir())
	req.NoError(backend.EnsureRoot())
	store := NewDocumentStore(backend, slog.Default())

	req.True(store.Create("a.txt"))
	req.True(store.Create("b.txt"))
	// a directory in the root must not show up as a document
	req.NoError(NewDiskBackend(backend.root + "/subdir").EnsureRoot())

	req.ElementsMatch([]string{"a.txt", "b.txt"}, store.List())
}

func TestDocumentStore_List_BackendFailureDegradesToEmpty(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().ListRegularEntries().Return(nil, fmt.Errorf("disk on fire"))

	store := NewDocumentStore(backend, slog.Default())

	// A listing failure is logged, not raised
	req.Empty(store.List())
}

func TestDocumentStore_Exists(t *testing.T) {
	req := require.New(t)
	store := newDiskStore(t)

	req.False(store.Exists("doc.txt"))
	req.True(store.Create("doc.txt"))
	req.True(store.Exists("doc.txt"))

	// invalid names are false, never an error
	req.False(store.Exists("../doc.txt"))
	req.False(store.Exists(" "))
}

func TestDocumentStore_Exists_BackendFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Exists("doc.txt").Return(false, fmt.Errorf("backend down"))

	store := NewDocumentStore(backend, slog.Default())
	req.False(store.Exists("doc.txt"))
}

func TestDocumentStore_Create_NoSideEffectOnBackendError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Exists("doc.txt").Return(false, nil)
	backend.EXPECT().Write("doc.txt", "").Return(fmt.Errorf("no space left"))

	store := NewDocumentStore(backend, slog.Default())
	req.False(store.Create("doc.txt"))
}
