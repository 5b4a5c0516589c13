package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-dealership/internal/model"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// FindByEmail returns the full account record including the password hash.
// This is the only lookup that surfaces the hash; it exists solely for
// login verification.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx,
		`SELECT account_id, account_firstname, account_lastname, account_email,
		        account_password, account_type, created_at, updated_at
		 FROM account WHERE lower(account_email) = lower($1)`, strings.TrimSpace(email)).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email,
			&a.PasswordHash, &a.Type, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Account{}, model.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("find account by email: %w", err)
	}
	return a, nil
}

// FindByID returns the identity fields only; the password hash never leaves
// the login path.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (model.AccountIdentity, error) {
	var identity model.AccountIdentity
	err := r.pool.QueryRow(ctx,
		`SELECT account_id, account_firstname, account_lastname, account_email, account_type
		 FROM account WHERE account_id = $1`, id).
		Scan(&identity.AccountID, &identity.FirstName, &identity.LastName,
			&identity.Email, &identity.Type)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AccountIdentity{}, model.ErrAccountNotFound
	}
	if err != nil {
		return model.AccountIdentity{}, fmt.Errorf("find account by id: %w", err)
	}
	return identity, nil
}

// EmailExists reports whether another account already uses the email.
// excludeID lets profile updates keep their own address.
func (r *AccountRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM account
			WHERE lower(account_email) = lower($1) AND account_id <> $2
		)`, strings.TrimSpace(email), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (int64, error) {
	var id int64
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO account
		 (account_firstname, account_lastname, account_email, account_password, account_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING account_id`,
		firstName, lastName, strings.TrimSpace(email), passwordHash, model.AccountTypeClient, now).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account
		 SET account_firstname = $2, account_lastname = $3, account_email = $4, updated_at = $5
		 WHERE account_id = $1`,
		id, firstName, lastName, strings.TrimSpace(email), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update account profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account SET account_password = $2, updated_at = $3 WHERE account_id = $1`,
		id, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update account password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
