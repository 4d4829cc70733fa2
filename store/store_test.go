package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TIrth999999/Cinemas/model"
	"github.com/TIrth999999/Cinemas/session"
)

func isolateDirs(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG overrides only apply on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func TestSessionRoundTrip(t *testing.T) {
	isolateDirs(t)
	repo := Sessions{}

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	rec := session.Record{Token: "tok", ExpireAt: expiry, Email: "user@example.com"}
	require.NoError(t, repo.Save(rec))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "user@example.com", got.Email)
	assert.True(t, got.ExpireAt.Equal(expiry))
}

func TestSessionLoadMissingFile(t *testing.T) {
	isolateDirs(t)

	got, err := Sessions{}.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Token)
}

func TestSessionFilePermissions(t *testing.T) {
	isolateDirs(t)
	repo := Sessions{}
	require.NoError(t, repo.Save(session.Record{Token: "tok", ExpireAt: time.Now().Add(time.Hour)}))

	path, err := configPath("session.json")
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSessionClear(t *testing.T) {
	isolateDirs(t)
	repo := Sessions{}
	require.NoError(t, repo.Save(session.Record{Token: "tok", ExpireAt: time.Now().Add(time.Hour)}))

	require.NoError(t, repo.Clear())
	got, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Token)

	// Clearing twice must not error.
	require.NoError(t, repo.Clear())
}

func TestMovieCacheRoundTrip(t *testing.T) {
	isolateDirs(t)

	movies := []model.Movie{{Id: "m1", Name: "Interstellar", Duration: 169}}
	require.NoError(t, SaveMovieCache(movies))

	got, fresh, err := LoadMovieCache()
	require.NoError(t, err)
	assert.True(t, fresh)
	require.Len(t, got, 1)
	assert.Equal(t, "Interstellar", got[0].Name)
}

func TestMovieCacheMissing(t *testing.T) {
	isolateDirs(t)

	got, fresh, err := LoadMovieCache()
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Empty(t, got)
}

func TestMovieCacheStale(t *testing.T) {
	isolateDirs(t)

	require.NoError(t, SaveMovieCache([]model.Movie{{Id: "m1", Name: "Old"}}))

	// Age the envelope past the TTL by rewriting its timestamp.
	path, err := cachePath("movies.json")
	require.NoError(t, err)
	cache, err := loadCache[[]model.Movie](path)
	require.NoError(t, err)
	cache.UpdatedAt = time.Now().Add(-time.Hour)
	payload, err := json.Marshal(cache)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	got, fresh, err := LoadMovieCache()
	require.NoError(t, err)
	assert.False(t, fresh)
	require.Len(t, got, 1)
	assert.Equal(t, "Old", got[0].Name)
}

func TestTheaterCacheRoundTrip(t *testing.T) {
	isolateDirs(t)

	theaters := []model.Theater{{Id: "t1", Name: "PVR", Location: "Pune"}}
	require.NoError(t, SaveTheaterCache(theaters))

	got, fresh, err := LoadTheaterCache()
	require.NoError(t, err)
	assert.True(t, fresh)
	require.Len(t, got, 1)
	assert.Equal(t, "PVR", got[0].Name)
}

func TestCorruptCacheSurfacesError(t *testing.T) {
	isolateDirs(t)

	path, err := cachePath("movies.json")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err = LoadMovieCache()
	assert.Error(t, err)
}
