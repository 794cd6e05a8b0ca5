package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryAccountStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAccountStore()

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

	if _, err := store.FindByID(ctx, 42); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("missing id error = %v", err)
	}

	second, err := store.Create(ctx, AccountRequest{FirstName: "John", LastName: "Smith", Email: "john@example.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 2 || all[0].ID != created.ID || all[1].ID != second.ID {
		t.Fatalf("FindAll = %+v", all)
	}

	updated, err := store.Update(ctx, created.ID, AccountRequest{FirstName: "Janet", LastName: "Doe", Email: "janet@example.com"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != created.ID || updated.FirstName != "Janet" {
		t.Fatalf("Update = %+v", updated)
	}
	if _, err := store.Update(ctx, 42, AccountRequest{}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("update missing id error = %v", err)
	}

	exists, err := store.ExistsByID(ctx, second.ID)
	if err != nil || !exists {
		t.Fatalf("ExistsByID = %v, %v", exists, err)
	}

	if err := store.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := store.Delete(ctx, second.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("second delete error = %v", err)
	}
	exists, err = store.ExistsByID(ctx, second.ID)
	if err != nil || exists {
		t.Fatalf("ExistsByID after delete = %v, %v", exists, err)
	}
}

func TestMemoryAccountStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAccountStore()

	const workers = 8
	const cycles = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < cycles; i++ {
				a, err := store.Create(ctx, AccountRequest{
					FirstName: "Jane",
					LastName:  "Doe",
					Email:     fmt.Sprintf("w%d-%d@example.com", w, i),
				})
				if err != nil {
					t.Errorf("worker %d: Create error: %v", w, err)
					return
				}
				if _, err := store.FindByID(ctx, a.ID); err != nil {
					t.Errorf("worker %d: FindByID error: %v", w, err)
					return
				}
				if _, err := store.FindAll(ctx); err != nil {
					t.Errorf("worker %d: FindAll error: %v", w, err)
					return
				}
				if _, err := store.Update(ctx, a.ID, AccountRequest{
					FirstName: "Janet",
					LastName:  "Doe",
					Email:     fmt.Sprintf("w%d-%d-updated@example.com", w, i),
				}); err != nil {
					t.Errorf("worker %d: Update error: %v", w, err)
					return
				}
				if err := store.Delete(ctx, a.ID); err != nil {
					t.Errorf("worker %d: Delete error: %v", w, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("%d accounts left after every worker deleted its own", len(all))
	}
}
