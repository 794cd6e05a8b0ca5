package core

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisAccountStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisAccountStore(client)
}

func TestRedisAccountStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	created, err := store.Create(ctx, AccountRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first id = %d, want 1", created.ID)
	}

	got, err := store.FindByID(ctx, created.ID)
	if err != nil || got != created {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}
	if _, err := store.FindByID(ctx, 99); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("missing id error = %v", err)
	}

	if _, err := store.Create(ctx, AccountRequest{FirstName: "John", LastName: "Smith", Email: "john@example.com"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("FindAll = %+v", all)
	}

	updated, err := store.Update(ctx, 1, AccountRequest{FirstName: "Janet", LastName: "Doe", Email: "janet@example.com"})
	if err != nil || updated.FirstName != "Janet" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	if _, err := store.Update(ctx, 99, AccountRequest{}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("update missing id error = %v", err)
	}

	exists, err := store.ExistsByID(ctx, 2)
	if err != nil || !exists {
		t.Fatalf("ExistsByID = %v, %v", exists, err)
	}

	if err := store.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := store.Delete(ctx, 2); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("second delete error = %v", err)
	}
	all, err = store.FindAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("FindAll after delete = %+v, %v", all, err)
	}
}

func TestRedisAccountStoreIDsKeepIncreasing(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	a, err := store.Create(ctx, AccountRequest{FirstName: "A", LastName: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	b, err := store.Create(ctx, AccountRequest{FirstName: "B", LastName: "B", Email: "b@example.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("id %d reused after delete of %d", b.ID, a.ID)
	}
}
