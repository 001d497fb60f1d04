package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/config"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	cartsrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/carts"
	productsrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/products"
	refreshtokensrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/shopkeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createOut   *models.User
	createErr   error
	createCalls int

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "generated-id"
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	createErr   error
	createCalls int
	lastToken   string
	lastUserID  string

	findOut *models.RefreshToken
	findErr error

	delErr   error
	delCalls int
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createCalls++
	f.lastToken = token
	f.lastUserID = userID
	return f.createErr
}

func (f *fakeRefreshRepo) FindLive(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.delCalls++
	return f.delErr
}

type fakeProductsRepo struct {
	listOut []*models.Product
	listErr error
	exists  map[int64]bool
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeProductsRepo) Exists(ctx context.Context, productID int64) (bool, error) {
	return f.exists[productID], nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	p *fakeProductsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository           { return m.p }

var _ cartsrepo.Repository = (*fakeCartsRepo)(nil)

// --- Register ---

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	if err := s.Register(context.Background(), "bob@x.com", "hunter2"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rm.u.createCalls != 1 {
		t.Fatalf("expected one insert, got %d", rm.u.createCalls)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	for _, tc := range []struct{ email, password string }{
		{"", "hunter2"},
		{"bob@x.com", ""},
		{"", ""},
	} {
		if err := s.Register(context.Background(), tc.email, tc.password); !errors.Is(err, common.ErrMissingField) {
			t.Fatalf("(%q,%q): want ErrMissingField, got %v", tc.email, tc.password, err)
		}
	}
}

func TestRegister_DuplicateEmail_FastPath(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Email: "bob@x.com"}}}
	s := newUserService(t, db, rm)

	err := s.Register(context.Background(), "bob@x.com", "hunter2")
	if !errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("want ErrorEmailExists, got %v", err)
	}
	if rm.u.createCalls != 0 {
		t.Fatalf("no insert expected, got %d", rm.u.createCalls)
	}
}

func TestRegister_DuplicateEmail_ConstraintWins(t *testing.T) {
	// The fast-path check misses a concurrent registration; the unique
	// index rejects the insert and the race still maps to ErrorEmailExists.
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createErr: common.ErrorAlreadyExists,
	}}
	s := newUserService(t, db, rm)

	err := s.Register(context.Background(), "bob@x.com", "hunter2")
	if !errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("want ErrorEmailExists, got %v", err)
	}
}

func TestRegister_StorageErrorIsNotDuplicate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createErr: errors.New("db down"),
	}}
	s := newUserService(t, db, rm)

	err := s.Register(context.Background(), "bob@x.com", "hunter2")
	if err == nil || errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("want a storage error, got %v", err)
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Email: "bob@x.com", PasswordHash: hash}},
		r: &fakeRefreshRepo{},
	}
	s := newUserService(t, db, rm)

	pair, err := s.Login(context.Background(), "bob@x.com", "hunter2")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if rm.r.createCalls != 1 || rm.r.lastUserID != "u1" || rm.r.lastToken != pair.RefreshToken {
		t.Fatalf("refresh token not persisted correctly: %+v", rm.r)
	}

	gotID, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("k"))
	if err != nil || gotID != "u1" {
		t.Fatalf("access token does not verify to u1: %q, %v", gotID, err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{})

	if _, err := s.Login(context.Background(), "", "pw"); !errors.Is(err, common.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
	if _, err := s.Login(context.Background(), "a@x.com", ""); !errors.Is(err, common.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("correct")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	// Unknown email.
	s1 := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}})
	_, errUnknown := s1.Login(context.Background(), "nouser@x.com", "anything")

	// Existing account, wrong password.
	s2 := newUserService(t, db, &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Email: "a@x.com", PasswordHash: hash}},
	})
	_, errWrongPw := s2.Login(context.Background(), "a@x.com", "wrong")

	if !errors.Is(errUnknown, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown email: want ErrorInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want ErrorInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("error shapes differ: %q vs %q", errUnknown, errWrongPw)
	}
}

// --- Refresh ---

func TestRefresh_Success_NotConsumed(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Token: "refresh-xyz", Expires: time.Now().Add(10 * time.Minute)},
	}}
	s := newUserService(t, db, rm)

	first, err := s.Refresh(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	second, err := s.Refresh(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("second Refresh error: %v", err)
	}

	if first == "" || second == "" {
		t.Fatal("expected access tokens from both calls")
	}
	if first == second {
		t.Fatal("each refresh must mint a distinct access token")
	}
	if rm.r.delCalls != 0 {
		t.Fatalf("refresh must not consume the token, %d deletes observed", rm.r.delCalls)
	}

	gotID, err := auth.GetUserIDFromToken(second, []byte("k"))
	if err != nil || gotID != "u1" {
		t.Fatalf("minted token does not verify to u1: %q, %v", gotID, err)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{})
	if _, err := s.Refresh(context.Background(), ""); !errors.Is(err, common.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestRefresh_DeadToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	if _, err := s.Refresh(context.Background(), "gone"); !errors.Is(err, common.ErrRefreshTokenInvalid) {
		t.Fatalf("want ErrRefreshTokenInvalid, got %v", err)
	}
}

// --- Logout ---

func TestLogout_Idempotent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{}}
	s := newUserService(t, db, rm)

	if err := s.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("first Logout error: %v", err)
	}
	// The row is gone now; a second revoke must still report success.
	if err := s.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("second Logout error: %v", err)
	}
	if rm.r.delCalls != 2 {
		t.Fatalf("expected two delete calls, got %d", rm.r.delCalls)
	}
}

func TestLogout_MissingToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeRepoManager{})
	if err := s.Logout(context.Background(), ""); !errors.Is(err, common.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestLogout_StorageError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{delErr: errors.New("db down")}}
	s := newUserService(t, db, rm)

	if err := s.Logout(context.Background(), "tok"); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
