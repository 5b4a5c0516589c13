package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-dealership/internal/model"
)

const bcryptCost = 12

// AccountStore is the credential store contract. FindByEmail is the only
// operation that returns the password hash.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	FindByID(ctx context.Context, id int64) (model.AccountIdentity, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, firstName, lastName, email, passwordHash string) (int64, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type tokenIssuer interface {
	Issue(identity model.AccountIdentity) (string, error)
}

type AccountService struct {
	store AccountStore
	codec tokenIssuer
}

func NewAccountService(store AccountStore, codec tokenIssuer) *AccountService {
	return &AccountService{store: store, codec: codec}
}

// Register creates a Client account with a hashed password. It does not log
// the new account in; the caller sends the user to the login page.
func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) error {
	email = strings.TrimSpace(email)

	taken, err := s.store.EmailExists(ctx, email, 0)
	if err != nil {
		return err
	}
	if taken {
		return model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.store.Create(ctx, firstName, lastName, email, string(hash)); err != nil {
		return err
	}
	return nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both come back as ErrInvalidCredentials so the responses
// are indistinguishable.
func (s *AccountService) Login(ctx context.Context, email, password string) (model.AccountIdentity, string, error) {
	account, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrAccountNotFound) {
		return model.AccountIdentity{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.AccountIdentity{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return model.AccountIdentity{}, "", model.ErrInvalidCredentials
	}

	identity := account.Identity()
	signed, err := s.codec.Issue(identity)
	if err != nil {
		return model.AccountIdentity{}, "", err
	}
	return identity, signed, nil
}

// UpdateProfile changes name and email, then re-issues a token from a fresh
// store lookup so the session reflects the new values. Tokens issued before
// the update stay valid until their own expiry and keep the old fields.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID int64, firstName, lastName, email string) (model.AccountIdentity, string, error) {
	email = strings.TrimSpace(email)

	taken, err := s.store.EmailExists(ctx, email, accountID)
	if err != nil {
		return model.AccountIdentity{}, "", err
	}
	if taken {
		return model.AccountIdentity{}, "", model.ErrEmailTaken
	}

	if err := s.store.UpdateProfile(ctx, accountID, firstName, lastName, email); err != nil {
		return model.AccountIdentity{}, "", err
	}

	return s.reissue(ctx, accountID)
}

// UpdatePassword hashes and stores the new password and re-issues a token.
func (s *AccountService) UpdatePassword(ctx context.Context, accountID int64, password string) (model.AccountIdentity, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.AccountIdentity{}, "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, accountID, string(hash)); err != nil {
		return model.AccountIdentity{}, "", err
	}

	return s.reissue(ctx, accountID)
}

func (s *AccountService) reissue(ctx context.Context, accountID int64) (model.AccountIdentity, string, error) {
	identity, err := s.store.FindByID(ctx, accountID)
	if err != nil {
		return model.AccountIdentity{}, "", err
	}

	signed, err := s.codec.Issue(identity)
	if err != nil {
		return model.AccountIdentity{}, "", err
	}
	return identity, signed, nil
}
