package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/TIrth999999/Cinemas/model"
	"github.com/TIrth999999/Cinemas/session"
)

const (
	movieCacheTTL   = 10 * time.Minute
	theaterCacheTTL = 10 * time.Minute
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// sessionFile mirrors the keys the web client kept in browser storage.
type sessionFile struct {
	AccessToken string `json:"accessToken"`
	ExpireAt    int64  `json:"expireAt"`
	UserEmail   string `json:"userEmail"`
}

// Sessions is the file-backed session.Repository. One file, removed whole on
// logout so the clear is atomic.
type Sessions struct{}

func (Sessions) Load() (session.Record, error) {
	path, err := configPath("session.json")
	if err != nil {
		return session.Record{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Record{}, nil
		}
		return session.Record{}, err
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return session.Record{}, err
	}
	rec := session.Record{Token: file.AccessToken, Email: file.UserEmail}
	if file.ExpireAt > 0 {
		rec.ExpireAt = time.Unix(file.ExpireAt, 0)
	}
	return rec, nil
}

func (Sessions) Save(rec session.Record) error {
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file := sessionFile{
		AccessToken: rec.Token,
		UserEmail:   rec.Email,
	}
	if !rec.ExpireAt.IsZero() {
		file.ExpireAt = rec.ExpireAt.Unix()
	}
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (Sessions) Clear() error {
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func LoadMovieCache() ([]model.Movie, bool, error) {
	path, err := cachePath("movies.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Movie](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= movieCacheTTL, nil
}

func SaveMovieCache(movies []model.Movie) error {
	path, err := cachePath("movies.json")
	if err != nil {
		return err
	}
	return saveCache(path, movies)
}

func LoadTheaterCache() ([]model.Theater, bool, error) {
	path, err := cachePath("theaters.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Theater](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= theaterCacheTTL, nil
}

func SaveTheaterCache(theaters []model.Theater) error {
	path, err := cachePath("theaters.json")
	if err != nil {
		return err
	}
	return saveCache(path, theaters)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cinemas", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cinemas", name), nil
}
