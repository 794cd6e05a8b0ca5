package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgAccountStore implements AccountStore using pgxpool.
//
// Expected schema:
//
//	CREATE TABLE accounts (
//	    id         BIGSERIAL PRIMARY KEY,
//	    first_name TEXT NOT NULL,
//	    last_name  TEXT NOT NULL,
//	    email      TEXT NOT NULL
//	);
type PgAccountStore struct {
	db *pgxpool.Pool
}

func NewPgAccountStore(db *pgxpool.Pool) *PgAccountStore {
	return &PgAccountStore{db: db}
}

func (s *PgAccountStore) Create(ctx context.Context, req AccountRequest) (Account, error) {
	const q = `INSERT INTO accounts (first_name, last_name, email) VALUES ($1,$2,$3) RETURNING id`
	a := Account{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	if err := s.db.QueryRow(ctx, q, req.FirstName, req.LastName, req.Email).Scan(&a.ID); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *PgAccountStore) FindByID(ctx context.Context, id int64) (Account, error) {
	const q = `SELECT id, first_name, last_name, email FROM accounts WHERE id=$1`
	var a Account
	if err := s.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (s *PgAccountStore) FindAll(ctx context.Context) ([]Account, error) {
	rows, err := s.db.Query(ctx, `SELECT id, first_name, last_name, email FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Account, 0)
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PgAccountStore) Update(ctx context.Context, id int64, req AccountRequest) (Account, error) {
	const q = `UPDATE accounts SET first_name=$1, last_name=$2, email=$3 WHERE id=$4`
	tag, err := s.db.Exec(ctx, q, req.FirstName, req.LastName, req.Email, id)
	if err != nil {
		return Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return Account{}, ErrAccountNotFound
	}
	return Account{ID: id, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}, nil
}

func (s *PgAccountStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *PgAccountStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var one int
	if err := s.db.QueryRow(ctx, `SELECT 1 FROM accounts WHERE id=$1`, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
