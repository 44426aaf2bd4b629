package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/linkboard/internal/store"
)

const linksPath = "/data/links.json"

func newFileStore(t *testing.T) (*store.FileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := store.NewFileStore(fs, linksPath)
	require.NoError(t, s.Init(context.Background()))
	return s, fs
}

func titles(links []*store.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Title
	}
	return out
}

func TestFileStore_InitSeedsDefaults(t *testing.T) {
	s, fs := newFileStore(t)

	links, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, titles(store.DefaultLinks()), titles(links))

	ok, err := afero.Exists(fs, linksPath)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStore_InitKeepsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, linksPath, []byte(`[]`), 0o644))

	s := store.NewFileStore(fs, linksPath)
	require.NoError(t, s.Init(context.Background()))

	links, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestFileStore_LegacyRecordsAreNormalized(t *testing.T) {
	fs := afero.NewMemMapFs()
	legacy := `[{"title":"Wiki","url":"https://wiki.example"}, null]`
	require.NoError(t, afero.WriteFile(fs, linksPath, []byte(legacy), 0o644))

	links, err := store.NewFileStore(fs, linksPath).List(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, store.DefaultEmoji, links[0].Emoji)
	assert.Equal(t, "", links[0].Description)
}

func TestFileStore_CreateAppendsAndPersists(t *testing.T) {
	s, fs := newFileStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, store.LinkInput{Title: "Docs", URL: "https://docs.example"})
	require.NoError(t, err)
	assert.Equal(t, "Docs", created.Title)
	assert.Equal(t, store.DefaultEmoji, created.Emoji)
	assert.Empty(t, created.ID)
	assert.True(t, created.CreatedAt.IsZero())

	// A second store over the same fs sees the write.
	links, err := store.NewFileStore(fs, linksPath).List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 7)
	assert.Equal(t, *created, *links[6])

	raw, err := afero.ReadFile(fs, linksPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"title\": \"LMS Kampus\"")
	assert.NotContains(t, string(raw), "createdAt")
}

func TestFileStore_CreateValidation(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    store.LinkInput
		field string
	}{
		{"missing title", store.LinkInput{URL: "https://x.example"}, "title"},
		{"missing url", store.LinkInput{Title: "X"}, "url"},
		{"both missing", store.LinkInput{Emoji: "🚀"}, "title"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.in)
			var verr *store.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)

			links, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, links, 6)
		})
	}
}

func TestFileStore_DeleteShiftsLaterLinks(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()
	before, err := s.List(ctx)
	require.NoError(t, err)

	removed, err := s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Google Classroom", removed.Title)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 5)
	assert.Equal(t, before[0].Title, after[0].Title)
	assert.Equal(t, before[2].Title, after[1].Title)
	assert.Equal(t, before[5].Title, after[4].Title)
}

func TestFileStore_DeleteNotFound(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	for _, ref := range []string{"6", "-1", "abc", "", "1.5", "99999999999999999999"} {
		t.Run(fmt.Sprintf("ref=%q", ref), func(t *testing.T) {
			_, err := s.Delete(ctx, ref)
			assert.ErrorIs(t, err, store.ErrNotFound)

			links, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, links, 6)
		})
	}
}

func TestFileStore_DeleteUntilEmpty(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	for range 6 {
		_, err := s.Delete(ctx, "0")
		require.NoError(t, err)
	}
	links, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = s.Delete(ctx, "0")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_ConcurrentCreatesAreNotLost(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, linksPath, []byte(`[]`), 0o644))
	s := store.NewFileStore(fs, linksPath)
	ctx := context.Background()
	const n = 25

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			_, err := s.Create(ctx, store.LinkInput{
				Title: fmt.Sprintf("link-%d", i),
				URL:   fmt.Sprintf("https://example.com/%d", i),
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	links, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, links, n)

	seen := map[string]bool{}
	for _, l := range links {
		seen[l.Title] = true
	}
	assert.Len(t, seen, n)

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")
	assert.Equal(t, "links.json", entries[0].Name())
}

func TestFileStore_ConcurrentReadsDuringWrites(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	var g errgroup.Group
	for i := range 10 {
		g.Go(func() error {
			_, err := s.Create(ctx, store.LinkInput{Title: fmt.Sprint(i), URL: "https://example.com"})
			return err
		})
		g.Go(func() error {
			links, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(links) < 6 || len(links) > 16 {
				return fmt.Errorf("unexpected length %d", len(links))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestFileStore_WriteFailureLeavesCollectionUnchanged(t *testing.T) {
	_, mem := newFileStore(t)
	ro := store.NewFileStore(afero.NewReadOnlyFs(mem), linksPath)
	ctx := context.Background()

	_, err := ro.Create(ctx, store.LinkInput{Title: "New", URL: "https://new.example"})
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	_, err = ro.Delete(ctx, "0")
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	links, err := ro.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, titles(store.DefaultLinks()), titles(links))
}

func TestFileStore_CorruptFileIsUnavailable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, linksPath, []byte(`{"not":"an array"`), 0o644))
	s := store.NewFileStore(fs, linksPath)
	ctx := context.Background()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), store.ErrStorageUnavailable)

	_, err = s.Create(ctx, store.LinkInput{Title: "A", URL: "https://a.example"})
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	raw, err := afero.ReadFile(fs, linksPath)
	require.NoError(t, err)
	assert.Equal(t, `{"not":"an array"`, string(raw))
}

func TestFileStore_MissingFileIsUnavailable(t *testing.T) {
	s := store.NewFileStore(afero.NewMemMapFs(), linksPath)

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStorageUnavailable))
	assert.False(t, errors.Is(err, store.ErrNotFound))
}
