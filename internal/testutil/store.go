package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/store"
)

// Call records one invocation on FakeStore.
type Call struct {
	Op    string
	ID    string
	Input model.ProjectInput
}

// FakeStore is an in-memory store.Store that records every call. Set Err
// to make the next call fail.
type FakeStore struct {
	mu       sync.Mutex
	projects []model.Project
	calls    []Call
	nextID   int

	// Err, when non-nil, is returned (wrapping store.ErrOperationFailed)
	// by the next call and then cleared.
	Err error
}

// compile-time check
var _ store.Store = (*FakeStore)(nil)

// NewFakeStore returns a store seeded with projects.
func NewFakeStore(projects ...model.Project) *FakeStore {
	return &FakeStore{projects: projects, nextID: 42}
}

// Calls returns a copy of the recorded calls.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls for one operation.
func (f *FakeStore) CallsTo(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeStore) record(c Call) error {
	f.calls = append(f.calls, c)
	if f.Err != nil {
		err := f.Err
		f.Err = nil
		return fmt.Errorf("%s: %v: %w", c.Op, err, store.ErrOperationFailed)
	}
	return nil
}

func (f *FakeStore) ListProjects(_ context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "list"}); err != nil {
		return nil, err
	}
	out := make([]model.Project, len(f.projects))
	for i, p := range f.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *FakeStore) GetProject(_ context.Context, id string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "get", ID: id}); err != nil {
		return nil, err
	}
	for _, p := range f.projects {
		if p.ID == id {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get %s: %w", id, store.ErrOperationFailed)
}

func (f *FakeStore) CreateProject(_ context.Context, in model.ProjectInput) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "create", Input: in}); err != nil {
		return nil, err
	}
	p := model.Project{
		ID:           strconv.Itoa(f.nextID),
		Title:        in.Title,
		Description:  in.Description,
		Technologies: in.Technologies,
		DownloadURL:  in.DownloadURL,
		GithubURL:    in.GithubURL,
		LiveURL:      in.LiveURL,
	}
	f.nextID++
	f.projects = append(f.projects, p)
	c := p.Clone()
	return &c, nil
}

func (f *FakeStore) UpdateProject(_ context.Context, id string, in model.ProjectInput) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "update", ID: id, Input: in}); err != nil {
		return nil, err
	}
	for i, p := range f.projects {
		if p.ID != id {
			continue
		}
		f.projects[i] = model.Project{
			ID:           id,
			Title:        in.Title,
			Description:  in.Description,
			Technologies: in.Technologies,
			DownloadURL:  in.DownloadURL,
			GithubURL:    in.GithubURL,
			LiveURL:      in.LiveURL,
			CreatedAt:    p.CreatedAt,
		}
		c := f.projects[i].Clone()
		return &c, nil
	}
	return nil, fmt.Errorf("update %s: %w", id, store.ErrOperationFailed)
}

func (f *FakeStore) DeleteProject(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "delete", ID: id}); err != nil {
		return err
	}
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", id, store.ErrOperationFailed)
}
