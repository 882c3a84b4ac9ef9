package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"momsdigitales/util/model"
)

// Snapshot es lo que se cachea entre ejecuciones: token y usuario.
type Snapshot struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type Store interface {
	// Load devuelve ok=false si no hay sesión guardada.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

// OpenStore elige el almacén: una URL redis:// o rediss:// usa Redis, cualquier otra cosa es una ruta de fichero.
func OpenStore(location, profile string) (Store, error) {
	if strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://") {
		return NewRedisStore(location, profile)
	}
	if profile != "" && profile != "default" {
		ext := filepath.Ext(location)
		location = strings.TrimSuffix(location, ext) + "-" + profile + ext
	}
	return NewFileStore(location), nil
}

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) (Snapshot, bool, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("reading session file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding session file: %w", err)
	}
	return snap, snap.Token != "", nil
}

func (f *FileStore) Save(_ context.Context, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

const redisKeyPrefix = "momsdigitales:session:"

type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(redisURL, profile string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url inválida: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opt), profile), nil
}

func NewRedisStoreWithClient(client *redis.Client, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, key: redisKeyPrefix + profile}
}

func (r *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding session: %w", err)
	}
	return snap, snap.Token != "", nil
}

func (r *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if exp, ok := expiry(snap.Token); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return r.Clear(ctx)
		}
	}
	return r.client.Set(ctx, r.key, data, ttl).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
