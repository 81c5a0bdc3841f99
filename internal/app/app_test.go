package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Interreferences/NoWayDpl-back/internal/auth"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

type fixture struct {
	ctx   context.Context
	db    *store.DB
	disk  *storage.Disk
	cat   *Catalog
	audio int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := store.NewSQLiteDB(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	disk, err := storage.NewDisk(filepath.Join(dir, "static"))
	require.NoError(t, err)

	cat := NewCatalog(db, disk, auth.NewHasher(bcrypt.MinCost), logger.Discard())
	require.NoError(t, cat.Bootstrap(context.Background()))

	return &fixture{ctx: context.Background(), db: db, disk: disk, cat: cat}
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func audioUpload(name string) storage.Upload {
	return storage.BytesUpload{Filename: name, Data: []byte("not really audio")}
}

func imageUpload(name string) storage.Upload {
	return storage.BytesUpload{Filename: name, Data: []byte{0x89, 'P', 'N', 'G'}}
}

func (f *fixture) artist(t *testing.T, name string) *domain.Artist {
	t.Helper()
	a, err := f.cat.Artists.Create(f.ctx, ArtistInput{Name: strPtr(name)}, nil, nil)
	require.NoError(t, err)
	return a
}

func (f *fixture) track(t *testing.T, title string, artistIDs ...int) *domain.Track {
	t.Helper()
	tr, err := f.cat.Tracks.Create(f.ctx, TrackInput{Title: strPtr(title), ArtistIDs: artistIDs}, audioUpload(title+".mp3"))
	require.NoError(t, err)
	return tr
}

func (f *fixture) label(t *testing.T, name string) *domain.Label {
	t.Helper()
	l, err := f.cat.Labels.Create(f.ctx, name)
	require.NoError(t, err)
	return l
}

// files lists the stored files of a bucket.
func (f *fixture) files(t *testing.T, bucket string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.disk.Root(), bucket))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, bucket+"/"+e.Name())
	}
	return names
}

func artistIDsOf(artists []domain.Artist) []int {
	ids := make([]int, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	return ids
}
