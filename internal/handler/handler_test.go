package handler

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-dealership/internal/model"
	"go-dealership/internal/service"
	"go-dealership/internal/view"
)

// In-memory stores backing the real services, so handler tests exercise the
// full handler -> service -> store path without a database.

type memAccounts struct {
	byEmail map[string]model.Account
	nextID  int64
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: map[string]model.Account{}, nextID: 1}
}

func (s *memAccounts) seed(t *testing.T, email, password, accountType string) model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := model.Account{
		ID:           s.nextID,
		FirstName:    "Pat",
		LastName:     "Reyes",
		Email:        email,
		Type:         accountType,
		PasswordHash: string(hash),
	}
	s.nextID++
	s.byEmail[email] = account
	return account
}

func (s *memAccounts) FindByEmail(_ context.Context, email string) (model.Account, error) {
	account, ok := s.byEmail[email]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *memAccounts) FindByID(_ context.Context, id int64) (model.AccountIdentity, error) {
	for _, account := range s.byEmail {
		if account.ID == id {
			return account.Identity(), nil
		}
	}
	return model.AccountIdentity{}, model.ErrAccountNotFound
}

func (s *memAccounts) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	account, ok := s.byEmail[email]
	return ok && account.ID != excludeID, nil
}

func (s *memAccounts) Create(_ context.Context, firstName, lastName, email, passwordHash string) (int64, error) {
	id := s.nextID
	s.nextID++
	s.byEmail[email] = model.Account{
		ID: id, FirstName: firstName, LastName: lastName,
		Email: email, Type: model.AccountTypeClient, PasswordHash: passwordHash,
	}
	return id, nil
}

func (s *memAccounts) UpdateProfile(_ context.Context, id int64, firstName, lastName, email string) error {
	for key, account := range s.byEmail {
		if account.ID == id {
			delete(s.byEmail, key)
			account.FirstName, account.LastName, account.Email = firstName, lastName, email
			s.byEmail[email] = account
			return nil
		}
	}
	return model.ErrAccountNotFound
}

func (s *memAccounts) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	for key, account := range s.byEmail {
		if account.ID == id {
			account.PasswordHash = passwordHash
			s.byEmail[key] = account
			return nil
		}
	}
	return model.ErrAccountNotFound
}

type memClassifications struct {
	list      []model.Classification
	deleteErr error
}

func (s *memClassifications) List(context.Context) ([]model.Classification, error) {
	return s.list, nil
}

func (s *memClassifications) FindByID(_ context.Context, id int64) (model.Classification, error) {
	for _, c := range s.list {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Classification{}, model.ErrClassificationNotFound
}

func (s *memClassifications) NameExists(_ context.Context, name string) (bool, error) {
	for _, c := range s.list {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memClassifications) Create(_ context.Context, name string) (int64, error) {
	id := int64(len(s.list) + 1)
	s.list = append(s.list, model.Classification{ID: id, Name: name})
	return id, nil
}

func (s *memClassifications) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, c := range s.list {
		if c.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return nil
		}
	}
	return model.ErrClassificationNotFound
}

type memInventory struct {
	vehicles map[int64]model.Vehicle
	nextID   int64
}

func newMemInventory() *memInventory {
	return &memInventory{vehicles: map[int64]model.Vehicle{}, nextID: 1}
}

func (s *memInventory) ListByClassification(_ context.Context, classificationID int64) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range s.vehicles {
		if v.ClassificationID == classificationID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *memInventory) FindByID(_ context.Context, id int64) (model.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return model.Vehicle{}, model.ErrVehicleNotFound
	}
	return v, nil
}

func (s *memInventory) Create(_ context.Context, v model.Vehicle) (int64, error) {
	v.ID = s.nextID
	s.nextID++
	s.vehicles[v.ID] = v
	return v.ID, nil
}

func (s *memInventory) Update(_ context.Context, v model.Vehicle) error {
	if _, ok := s.vehicles[v.ID]; !ok {
		return model.ErrVehicleNotFound
	}
	s.vehicles[v.ID] = v
	return nil
}

func (s *memInventory) Delete(_ context.Context, id int64) error {
	if _, ok := s.vehicles[id]; !ok {
		return model.ErrVehicleNotFound
	}
	delete(s.vehicles, id)
	return nil
}

type memReviews struct {
	reviews map[int64]model.Review
	nextID  int64
}

func newMemReviews() *memReviews {
	return &memReviews{reviews: map[int64]model.Review{}, nextID: 1}
}

func (s *memReviews) ListByVehicle(_ context.Context, vehicleID int64) ([]model.VehicleReview, error) {
	var out []model.VehicleReview
	for _, r := range s.reviews {
		if r.VehicleID == vehicleID {
			out = append(out, model.VehicleReview{
				ID: r.ID, Text: r.Text, Date: r.Date,
				FirstName: "Pat", LastName: "Reyes",
			})
		}
	}
	return out, nil
}

func (s *memReviews) ListByAccount(_ context.Context, accountID int64) ([]model.AccountReview, error) {
	var out []model.AccountReview
	for _, r := range s.reviews {
		if r.AccountID == accountID {
			out = append(out, s.joined(r))
		}
	}
	return out, nil
}

func (s *memReviews) FindOwned(_ context.Context, reviewID, accountID int64) (model.AccountReview, error) {
	r, ok := s.reviews[reviewID]
	if !ok || r.AccountID != accountID {
		return model.AccountReview{}, model.ErrReviewNotAuthorized
	}
	return s.joined(r), nil
}

func (s *memReviews) Create(_ context.Context, vehicleID, accountID int64, text string) (int64, error) {
	id := s.nextID
	s.nextID++
	s.reviews[id] = model.Review{ID: id, Text: text, Date: time.Now(), VehicleID: vehicleID, AccountID: accountID}
	return id, nil
}

func (s *memReviews) UpdateOwned(_ context.Context, reviewID, accountID int64, text string) error {
	r, ok := s.reviews[reviewID]
	if !ok || r.AccountID != accountID {
		return model.ErrReviewNotAuthorized
	}
	r.Text = text
	s.reviews[reviewID] = r
	return nil
}

func (s *memReviews) DeleteOwned(_ context.Context, reviewID, accountID int64) error {
	r, ok := s.reviews[reviewID]
	if !ok || r.AccountID != accountID {
		return model.ErrReviewNotAuthorized
	}
	delete(s.reviews, reviewID)
	return nil
}

func (s *memReviews) joined(r model.Review) model.AccountReview {
	return model.AccountReview{
		ID: r.ID, Text: r.Text, Date: r.Date,
		VehicleID: r.VehicleID, AccountID: r.AccountID,
		VehicleYear: 2019, VehicleMake: "Ford", VehicleModel: "Ranger",
	}
}

type stubIssuer struct{}

func (stubIssuer) Issue(identity model.AccountIdentity) (string, error) {
	return "signed-session-for-" + identity.Email, nil
}

// testEnv wires real services over the in-memory stores.
type testEnv struct {
	accounts        *memAccounts
	classifications *memClassifications
	inventory       *memInventory
	reviews         *memReviews

	base             *Base
	accountService   *service.AccountService
	inventoryService *service.InventoryService
	reviewService    *service.ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	views, err := view.New("Redline Motors")
	require.NoError(t, err)

	env := &testEnv{
		accounts:        newMemAccounts(),
		classifications: &memClassifications{list: []model.Classification{{ID: 1, Name: "Sedan"}}},
		inventory:       newMemInventory(),
		reviews:         newMemReviews(),
	}

	env.accountService = service.NewAccountService(env.accounts, stubIssuer{})
	env.inventoryService = service.NewInventoryService(env.classifications, env.inventory, nil)
	env.reviewService = service.NewReviewService(env.reviews)
	env.base = NewBase(views, env.inventoryService, false)

	return env
}

func clientIdentity(account model.Account) model.AccountIdentity {
	return account.Identity()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
