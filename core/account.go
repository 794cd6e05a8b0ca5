package core

import (
	"context"
	"errors"
)

// Account is the stored entity. The id is assigned by the store on create
// and immutable afterwards.
type Account struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// AccountRequest is the inbound create/update payload, validated by
// ValidateAccountRequest before it reaches a store.
type AccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ErrAccountNotFound is returned by stores when an id does not exist.
var ErrAccountNotFound = errors.New("account not found")

// AccountStore defines persistence operations for accounts. Implementations
// own their mutation concurrency; callers treat every operation as a single
// blocking call with no retry.
type AccountStore interface {
	Create(ctx context.Context, req AccountRequest) (Account, error)
	FindByID(ctx context.Context, id int64) (Account, error)
	FindAll(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, id int64, req AccountRequest) (Account, error)
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
