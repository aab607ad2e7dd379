package app

import (
	"errors"
	"testing"
	"time"

	"github.com/bpmutter/tappdin-backend/internal/model"
	"github.com/bpmutter/tappdin-backend/internal/pkg/password"
)

// --- fakes ---

type fakeStore struct {
	users    map[uint]*model.User
	checkins []model.Checkin
	lists    []model.List
	liked    []model.LikedBrewery
	nextID   uint

	storeReads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[uint]*model.User{}, nextID: 1}
}

func (f *fakeStore) Create(u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) GetByEmail(email string) (*model.User, error) {
	f.storeReads++
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByID(id uint) (*model.User, error) {
	f.storeReads++
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Update(u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return errors.New("missing user")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteCascade(userID uint) error {
	if _, ok := f.users[userID]; !ok {
		return errors.New("missing user")
	}
	keepCheckins := f.checkins[:0]
	for _, c := range f.checkins {
		if c.UserID != userID {
			keepCheckins = append(keepCheckins, c)
		}
	}
	f.checkins = keepCheckins

	keepLists := f.lists[:0]
	for _, l := range f.lists {
		if l.UserID != userID {
			keepLists = append(keepLists, l)
		}
	}
	f.lists = keepLists

	keepLiked := f.liked[:0]
	for _, lb := range f.liked {
		if lb.UserID != userID {
			keepLiked = append(keepLiked, lb)
		}
	}
	f.liked = keepLiked

	delete(f.users, userID)
	return nil
}

func (f *fakeStore) ListByUserID(userID uint) ([]model.Checkin, error) {
	var out []model.Checkin
	for _, c := range f.checkins {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newAccountService(store *fakeStore) *AccountService {
	return &AccountService{
		userRepo:      store,
		checkinRepo:   store,
		jwtSecret:     "test-secret",
		jwtExpiration: time.Hour,
	}
}

func mustSignup(t *testing.T, s *AccountService, email, pass, username string) *AuthResult {
	t.Helper()
	res, err := s.Signup(SignupInput{Email: email, Password: pass, Username: username})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	return res
}

// --- tests ---

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)

	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	if res.Token == "" || res.User.ID == 0 {
		t.Fatalf("expected a token and a fresh user id, got %+v", res)
	}
	if res.User.PasswordHash == "abc123" {
		t.Fatalf("password hash must not equal the plaintext")
	}

	login, err := svc.Login(LoginInput{Email: "amy@example.com", Password: "abc123"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Fatalf("login resolved wrong user: got %d want %d", login.User.ID, res.User.ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	mustSignup(t, svc, "amy@example.com", "abc123", "amy")

	_, err := svc.Signup(SignupInput{Email: "Amy@Example.com", Password: "other", Username: "amy2"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	mustSignup(t, svc, "amy@example.com", "abc123", "amy")

	_, errUnknown := svc.Login(LoginInput{Email: "nobody@example.com", Password: "abc123"})
	_, errWrongPw := svc.Login(LoginInput{Email: "amy@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, ErrLoginFailed) {
		t.Fatalf("unknown email: expected ErrLoginFailed, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrLoginFailed) {
		t.Fatalf("wrong password: expected ErrLoginFailed, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestGetProfile_DeletedUser(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)

	_, err := svc.GetProfile(99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing user, got %v", err)
	}
}

func TestUpdateProfile_SelfServiceOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")

	_, err := svc.UpdateProfile(res.User.ID, res.User.ID+1, UpdateProfileInput{Username: "x", Email: "x@example.com"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for cross-user update, got %v", err)
	}

	updated, err := svc.UpdateProfile(res.User.ID, res.User.ID, UpdateProfileInput{
		Username:  "amy2",
		FirstName: "Amy",
		LastName:  "Pond",
		AboutYou:  "stout enjoyer",
		Email:     "amy2@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Username != "amy2" || updated.Email != "amy2@example.com" || updated.AboutYou != "stout enjoyer" {
		t.Fatalf("profile fields not applied: %+v", updated)
	}
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	id := res.User.ID

	out, err := svc.ChangePassword(id, id, "abc123", "xyz789")
	if err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success=true, got %+v", out)
	}

	stored := store.users[id].PasswordHash
	if !password.Verify("xyz789", stored) {
		t.Fatalf("new password must verify against the stored hash")
	}
	if password.Verify("abc123", stored) {
		t.Fatalf("old password must no longer verify")
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	id := res.User.ID
	before := store.users[id].PasswordHash

	out, err := svc.ChangePassword(id, id, "wrong", "xyz789")
	if err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected success=false for wrong old password")
	}
	if store.users[id].PasswordHash != before {
		t.Fatalf("stored hash must be unchanged on mismatch")
	}
}

func TestDeleteAccount_Cascade(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.nextID = 7 // the scenario user gets id 7
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	id := res.User.ID
	if id != 7 {
		t.Fatalf("scenario setup: expected id 7, got %d", id)
	}

	for i := 0; i < 3; i++ {
		store.checkins = append(store.checkins, model.Checkin{ID: uint(i + 1), UserID: id, BeerID: 1, Rating: 4})
	}
	store.lists = append(store.lists, model.List{ID: 1, UserID: id, Name: "favorites"})

	out, err := svc.DeleteAccount(id, id, "abc123", "abc123")
	if err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success=true, got %+v", out)
	}
	if len(store.checkins) != 0 || len(store.lists) != 0 || len(store.liked) != 0 {
		t.Fatalf("dependent records survived the cascade: %d checkins, %d lists, %d liked",
			len(store.checkins), len(store.lists), len(store.liked))
	}
	if _, ok := store.users[id]; ok {
		t.Fatalf("user row survived the cascade")
	}

	// A repeat delete finds no user, not a second success.
	_, err = svc.DeleteAccount(id, id, "abc123", "abc123")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("repeat delete: expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccount_ConfirmMismatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	id := res.User.ID

	reads := store.storeReads
	out, err := svc.DeleteAccount(id, id, "abc123", "different")
	if err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected success=false on confirm mismatch")
	}
	if store.storeReads != reads {
		t.Fatalf("confirm mismatch must be decided without store access")
	}
	if _, ok := store.users[id]; !ok {
		t.Fatalf("user must remain intact")
	}
}

func TestDeleteAccount_WrongPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newAccountService(store)
	res := mustSignup(t, svc, "amy@example.com", "abc123", "amy")
	id := res.User.ID
	store.checkins = append(store.checkins, model.Checkin{ID: 1, UserID: id, BeerID: 1, Rating: 5})

	out, err := svc.DeleteAccount(id, id, "wrong", "wrong")
	if err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected success=false for wrong delete password")
	}
	if len(store.checkins) != 1 {
		t.Fatalf("no records may be deleted on mismatch")
	}
	if _, ok := store.users[id]; !ok {
		t.Fatalf("user must remain intact")
	}
}
