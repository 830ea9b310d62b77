package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/edusync-platform/school-service/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, 42, models.RoleInstitutionAdmin, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	got, err := store.Get(ctx, created.Token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 42 || got.Role != models.RoleInstitutionAdmin || got.InstitutionID != 7 {
		t.Errorf("got %+v, want user 42 / institution_admin / institution 7", got)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 1, models.RoleTeacher, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 1, models.RoleStudent, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after TTL: got %v, want ErrNotFound", err)
	}
}

func TestRedisStoreUnknownToken(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, err := store.Get(context.Background(), "no-such-token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 9, models.RoleStudent, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 9 {
		t.Errorf("UserID = %d, want 9", got.UserID)
	}

	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-time.Minute)

	sess, err := store.Create(context.Background(), 1, models.RoleTeacher, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Get(context.Background(), sess.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session: got %v, want ErrNotFound", err)
	}
}
