package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/itemboard/internal/cache/memory"
	"github.com/dropDatabas3/itemboard/internal/directory"
	"github.com/dropDatabas3/itemboard/internal/security/password"
	"github.com/dropDatabas3/itemboard/internal/security/sessioncookie"
)

// fakeDirectory implementa Directory en memoria para los tests.
type fakeDirectory struct {
	users map[string]*directory.User // por id
	// failWith fuerza todos los métodos a devolver este error.
	failWith error
	// createErr fuerza solo CreateUser a fallar.
	createErr error

	byIDCalls int
	nextID    int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]*directory.User{}}
}

func (f *fakeDirectory) addUser(username, plain string) *directory.User {
	hash, _ := password.Hash(plain)
	f.nextID++
	u := &directory.User{
		ID:           fmt.Sprintf("u-%d", f.nextID),
		Username:     username,
		PasswordHash: hash,
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeDirectory) GetUserByID(_ context.Context, id string) (*directory.User, error) {
	f.byIDCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, directory.ErrNotFound
}

func (f *fakeDirectory) GetUserByUsername(_ context.Context, username string) (*directory.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, username, passwordHash string) (*directory.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u := &directory.User{
		ID:           fmt.Sprintf("u-%d", f.nextID),
		Username:     username,
		PasswordHash: passwordHash,
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func newTestService(t *testing.T, dir Directory) Service {
	t.Helper()
	codec, err := sessioncookie.New(sessioncookie.Options{
		Secret: []byte("test-session-secret"),
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return NewService(Deps{Directory: dir, Cookies: codec})
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	dir := newFakeDirectory()
	svc := newTestService(t, dir)

	u, err := svc.Register(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if u.ID == "" || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	// El directorio nunca guarda la password en claro.
	stored := dir.users[u.ID]
	if stored.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify("secret1", stored.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	_, err := svc.Register(context.Background(), "alice", "otherpass")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_DirectoryUnavailable(t *testing.T) {
	dir := newFakeDirectory()
	dir.failWith = fmt.Errorf("%w: connection refused", directory.ErrUnavailable)
	svc := newTestService(t, dir)

	_, err := svc.Register(context.Background(), "alice", "secret1")
	if !errors.Is(err, directory.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable passthrough, got %v", err)
	}
}

func TestRegister_CreateFails(t *testing.T) {
	dir := newFakeDirectory()
	dir.createErr = errors.New("graphql: Uniqueness violation")
	svc := newTestService(t, dir)

	_, err := svc.Register(context.Background(), "alice", "secret1")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("want ErrRegistrationFailed, got %v", err)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	dir := newFakeDirectory()
	want := dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	u, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if u.ID != want.ID {
		t.Fatalf("want user %s, got %s", want.ID, u.ID)
	}
}

func TestLogin_SameErrorForUnknownUserAndBadPassword(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	_, errUnknown := svc.Login(context.Background(), "nobody", "secret1")
	_, errBadPass := svc.Login(context.Background(), "alice", "wrongpass")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errBadPass, ErrInvalidCredentials) {
		t.Fatalf("bad password: want ErrInvalidCredentials, got %v", errBadPass)
	}
	// Indistinguibles: mismo error exacto para ambos casos.
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatal("errors must be indistinguishable")
	}
}

func TestResolveSession_NoCookie(t *testing.T) {
	dir := newFakeDirectory()
	svc := newTestService(t, dir)

	r := httptest.NewRequest("GET", "/profile", nil)
	res := svc.ResolveSession(context.Background(), r)
	if res.Authenticated() || res.Stale {
		t.Fatalf("want anonymous, got %+v", res)
	}
}

func TestResolveSession_ValidCookie(t *testing.T) {
	dir := newFakeDirectory()
	u := dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	cookie, err := svc.SessionCookie(u.ID)
	if err != nil {
		t.Fatalf("SessionCookie err: %v", err)
	}
	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(cookie)

	res := svc.ResolveSession(context.Background(), r)
	if !res.Authenticated() {
		t.Fatalf("want authenticated, got %+v", res)
	}
	if res.User.ID != u.ID || res.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}

func TestResolveSession_DeletedUserIsStale(t *testing.T) {
	dir := newFakeDirectory()
	u := dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	cookie, err := svc.SessionCookie(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	delete(dir.users, u.ID)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(cookie)

	res := svc.ResolveSession(context.Background(), r)
	if res.Authenticated() {
		t.Fatal("want not authenticated")
	}
	if !res.Stale {
		t.Fatal("want Stale for deleted user")
	}
}

func TestResolveSession_DirectoryDownDegradesToAnonymous(t *testing.T) {
	dir := newFakeDirectory()
	u := dir.addUser("alice", "secret1")
	svc := newTestService(t, dir)

	cookie, err := svc.SessionCookie(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	dir.failWith = fmt.Errorf("%w: timeout", directory.ErrUnavailable)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(cookie)

	res := svc.ResolveSession(context.Background(), r)
	if res.Authenticated() {
		t.Fatal("want not authenticated")
	}
	// El usuario puede seguir existiendo: la cookie no se marca stale.
	if res.Stale {
		t.Fatal("transient outage must not force logout")
	}
}

func TestResolveSession_CacheSkipsDirectory(t *testing.T) {
	dir := newFakeDirectory()
	u := dir.addUser("alice", "secret1")

	codec, err := sessioncookie.New(sessioncookie.Options{Secret: []byte("s")})
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(Deps{
		Directory:    dir,
		Cookies:      codec,
		Cache:        memory.New(time.Minute),
		UserCacheTTL: time.Minute,
	})

	cookie, err := svc.SessionCookie(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(cookie)

	for i := 0; i < 3; i++ {
		if res := svc.ResolveSession(context.Background(), r); !res.Authenticated() {
			t.Fatalf("round %d: want authenticated", i)
		}
	}
	if dir.byIDCalls != 1 {
		t.Fatalf("want 1 directory lookup with cache, got %d", dir.byIDCalls)
	}
}
