package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type invokeCall struct {
	wf        entity.WorkflowConfig
	req       entity.GenerationRequest
	sessionID string
}

type fakeInvoker struct {
	mu    sync.Mutex
	calls []invokeCall
	env   entity.Envelope
	err   error
	panic bool
}

func (f *fakeInvoker) Invoke(_ context.Context, wf entity.WorkflowConfig, req entity.GenerationRequest, sessionID string) (entity.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, invokeCall{wf: wf, req: req, sessionID: sessionID})
	f.mu.Unlock()
	if f.panic {
		panic("invoker exploded")
	}
	return f.env, f.err
}

func (f *fakeInvoker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeProjects struct {
	mu      sync.Mutex
	saved   []*entity.Project
	saveErr error
}

func (r *fakeProjects) Save(_ context.Context, p *entity.Project) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, p)
	return nil
}

func (r *fakeProjects) ListByOwner(_ context.Context, ownerID string) ([]*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Project
	for _, p := range r.saved {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeExporter struct {
	exported []string
	err      error
}

func (e *fakeExporter) Export(_ context.Context, p *entity.Project) error {
	e.exported = append(e.exported, p.ID)
	return e.err
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	getErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*entity.User{}}
}

func (r *fakeUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// plainHasher stores passwords with a prefix; good enough for service tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mapTokens struct{}

func (mapTokens) Issue(userID string) (string, error) { return "token-" + userID, nil }

func (mapTokens) Parse(token string) (string, error) {
	if len(token) <= len("token-") || token[:len("token-")] != "token-" {
		return "", errors.New("malformed token")
	}
	return token[len("token-"):], nil
}
