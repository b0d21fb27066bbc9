package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data map[string]string
	err  error
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = fmt.Sprintf("%s", value)
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStorage(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}}
	store := newRedisStorage(fake, "")

	empty, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing key failed: %v", err)
	}
	if len(empty.Teams) != 0 {
		t.Errorf("expected empty league, got %+v", empty)
	}

	l := sampleLeague(t)
	if err := store.Save(l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, ok := fake.data[DefaultRedisKey]; !ok {
		t.Fatalf("document not stored under %s: %v", DefaultRedisKey, fake.data)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(l, loaded); diff != "" {
		t.Errorf("loaded league mismatch (-want +got):\n%s", diff)
	}
}

func TestRedisStorage_Errors(t *testing.T) {
	boom := errors.New("connection reset")
	store := newRedisStorage(&fakeRedis{data: map[string]string{}, err: boom}, "league")

	if _, err := store.Load(); !errors.Is(err, boom) {
		t.Errorf("Load error = %v, want %v", err, boom)
	}
	if err := store.Save(sampleLeague(t)); !errors.Is(err, boom) {
		t.Errorf("Save error = %v, want %v", err, boom)
	}
}
