package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-dealership/internal/model"
)

type fakeAccountStore struct {
	accounts map[string]model.Account
	nextID   int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]model.Account{}, nextID: 1}
}

func (s *fakeAccountStore) seed(t *testing.T, email, password, accountType string) model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := model.Account{
		ID:           s.nextID,
		FirstName:    "Sam",
		LastName:     "Lowry",
		Email:        email,
		Type:         accountType,
		PasswordHash: string(hash),
	}
	s.nextID++
	s.accounts[email] = account
	return account
}

func (s *fakeAccountStore) FindByEmail(_ context.Context, email string) (model.Account, error) {
	account, ok := s.accounts[email]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *fakeAccountStore) FindByID(_ context.Context, id int64) (model.AccountIdentity, error) {
	for _, account := range s.accounts {
		if account.ID == id {
			return account.Identity(), nil
		}
	}
	return model.AccountIdentity{}, model.ErrAccountNotFound
}

func (s *fakeAccountStore) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	account, ok := s.accounts[email]
	return ok && account.ID != excludeID, nil
}

func (s *fakeAccountStore) Create(_ context.Context, firstName, lastName, email, passwordHash string) (int64, error) {
	id := s.nextID
	s.nextID++
	s.accounts[email] = model.Account{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Type:         model.AccountTypeClient,
		PasswordHash: passwordHash,
	}
	return id, nil
}

func (s *fakeAccountStore) UpdateProfile(_ context.Context, id int64, firstName, lastName, email string) error {
	for key, account := range s.accounts {
		if account.ID == id {
			delete(s.accounts, key)
			account.FirstName = firstName
			account.LastName = lastName
			account.Email = email
			s.accounts[email] = account
			return nil
		}
	}
	return model.ErrAccountNotFound
}

func (s *fakeAccountStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	for key, account := range s.accounts {
		if account.ID == id {
			account.PasswordHash = passwordHash
			s.accounts[key] = account
			return nil
		}
	}
	return model.ErrAccountNotFound
}

type fakeIssuer struct {
	issued []model.AccountIdentity
}

func (f *fakeIssuer) Issue(identity model.AccountIdentity) (string, error) {
	f.issued = append(f.issued, identity)
	return "token-for-" + identity.Email, nil
}

func TestAccountService_Register(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store, &fakeIssuer{})

	err := svc.Register(context.Background(), "Ada", "Byron", "ada@example.com", "Sufficient#Pass1")
	require.NoError(t, err)

	account, err := store.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeClient, account.Type)
	assert.NotEqual(t, "Sufficient#Pass1", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("Sufficient#Pass1")))
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	store := newFakeAccountStore()
	store.seed(t, "taken@example.com", "whatever", model.AccountTypeClient)
	svc := NewAccountService(store, &fakeIssuer{})

	err := svc.Register(context.Background(), "Ada", "Byron", "taken@example.com", "Sufficient#Pass1")
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAccountService_Login(t *testing.T) {
	store := newFakeAccountStore()
	store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	issuer := &fakeIssuer{}
	svc := NewAccountService(store, issuer)

	identity, token, err := svc.Login(context.Background(), "sam@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", identity.Email)
	assert.Equal(t, "token-for-sam@example.com", token)
}

func TestAccountService_LoginFailuresAreUniform(t *testing.T) {
	store := newFakeAccountStore()
	store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	svc := NewAccountService(store, &fakeIssuer{})

	// Wrong password and unknown email must be indistinguishable.
	_, _, wrongPassword := svc.Login(context.Background(), "sam@example.com", "wrong")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "wrong")

	assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAccountService_UpdateProfileReissuesToken(t *testing.T) {
	store := newFakeAccountStore()
	account := store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	issuer := &fakeIssuer{}
	svc := NewAccountService(store, issuer)

	identity, token, err := svc.UpdateProfile(context.Background(), account.ID, "Samuel", "Lowry", "samuel@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Samuel", identity.FirstName)
	assert.Equal(t, "samuel@example.com", identity.Email)
	assert.Equal(t, "token-for-samuel@example.com", token)

	// The reissued token comes from a fresh store read, not the old session.
	require.NotEmpty(t, issuer.issued)
	assert.Equal(t, "samuel@example.com", issuer.issued[len(issuer.issued)-1].Email)
}

func TestAccountService_UpdateProfileRejectsTakenEmail(t *testing.T) {
	store := newFakeAccountStore()
	account := store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	store.seed(t, "other@example.com", "whatever", model.AccountTypeClient)
	svc := NewAccountService(store, &fakeIssuer{})

	_, _, err := svc.UpdateProfile(context.Background(), account.ID, "Sam", "Lowry", "other@example.com")
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAccountService_UpdateProfileKeepingOwnEmail(t *testing.T) {
	store := newFakeAccountStore()
	account := store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	svc := NewAccountService(store, &fakeIssuer{})

	_, _, err := svc.UpdateProfile(context.Background(), account.ID, "Samuel", "Lowry", "sam@example.com")
	assert.NoError(t, err)
}

func TestAccountService_UpdatePassword(t *testing.T) {
	store := newFakeAccountStore()
	account := store.seed(t, "sam@example.com", "correct-horse", model.AccountTypeClient)
	issuer := &fakeIssuer{}
	svc := NewAccountService(store, issuer)

	_, token, err := svc.UpdatePassword(context.Background(), account.ID, "NewSufficient#Pass1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Old password no longer works, new one does.
	_, _, err = svc.Login(context.Background(), "sam@example.com", "correct-horse")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "sam@example.com", "NewSufficient#Pass1")
	assert.NoError(t, err)
}
