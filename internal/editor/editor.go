// Package editor holds the create/edit workflow for a single project,
// independent of any view. A view drives it in three steps: Prepare
// validates and gates the submission, Commit performs the request (safe
// to run off the UI loop), and Finish applies the outcome.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/techlist"
)

// State is the submission state of an editor.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode tells whether the editor creates a new project or updates one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

var (
	// ErrBusy is returned by Prepare while a submission is outstanding.
	ErrBusy = errors.New("submission already in progress")

	// ErrClosed is returned by Prepare after a successful submission.
	ErrClosed = errors.New("editor is closed")
)

// Notification titles.
const (
	MsgCreated      = "Project created successfully!"
	MsgCreateFailed = "Failed to create project"
	MsgUpdated      = "Project updated successfully!"
	MsgUpdateFailed = "Failed to update project"
)

// Editor owns the draft of one project plus its technology list.
type Editor struct {
	mode  Mode
	id    string
	draft model.Draft
	techs *techlist.List
	state State
	errs  FieldErrors
}

// NewCreate returns an editor with a blank draft.
func NewCreate() *Editor {
	return &Editor{mode: ModeCreate, techs: techlist.New(nil)}
}

// NewEdit returns an editor seeded from a copy of p.
func NewEdit(p model.Project) *Editor {
	c := p.Clone()
	return &Editor{
		mode:  ModeEdit,
		id:    c.ID,
		draft: model.NewDraft(&c),
		techs: techlist.New(c.Technologies),
	}
}

func (e *Editor) Mode() Mode   { return e.mode }
func (e *Editor) State() State { return e.state }

// ProjectID is the id of the project being edited, empty when creating.
func (e *Editor) ProjectID() string { return e.id }

func (e *Editor) Draft() model.Draft { return e.draft }

// SetDraft replaces the text fields. Ignored while submitting so the
// values in flight match what is shown.
func (e *Editor) SetDraft(d model.Draft) {
	if e.state == Submitting {
		return
	}
	e.draft = d
}

// FieldErrors returns the errors from the last failed validation.
func (e *Editor) FieldErrors() FieldErrors { return e.errs }

// AddTechnology appends text to the technology list. See techlist.List.Add.
func (e *Editor) AddTechnology(text string) bool { return e.techs.Add(text) }

// RemoveTechnology removes text from the technology list.
func (e *Editor) RemoveTechnology(text string) bool { return e.techs.Remove(text) }

func (e *Editor) Technologies() []string { return e.techs.Items() }

// Prepare validates the draft and, on success, moves the editor to
// Submitting and returns the request body with the technology list merged
// in. A validation failure returns FieldErrors and leaves the editor Idle.
func (e *Editor) Prepare() (model.ProjectInput, error) {
	switch e.state {
	case Submitting:
		return model.ProjectInput{}, ErrBusy
	case Closed:
		return model.ProjectInput{}, ErrClosed
	}

	e.state = Validating
	if errs := ValidateDraft(e.draft); len(errs) > 0 {
		e.errs = errs
		e.state = Idle
		return model.ProjectInput{}, errs
	}

	e.errs = nil
	e.state = Submitting
	return e.draft.Input(e.techs.Items()), nil
}

// Commit sends in to the store and, on success, invalidates the affected
// cache keys. It reads only immutable editor fields so it may run in a
// tea.Cmd while the view keeps handling input.
func (e *Editor) Commit(ctx context.Context, s store.Store, cache *querycache.Cache, in model.ProjectInput) (*model.Project, error) {
	if e.mode == ModeCreate {
		p, err := s.CreateProject(ctx, in)
		if err != nil {
			return nil, err
		}
		cache.Invalidate(querycache.ProjectsKey)
		return p, nil
	}

	p, err := s.UpdateProject(ctx, e.id, in)
	if err != nil {
		return nil, err
	}
	cache.Invalidate(querycache.ProjectsKey, querycache.ProjectKey(e.id))
	return p, nil
}

// Finish applies the result of Commit. Success closes the editor; failure
// returns it to Idle with the draft untouched.
func (e *Editor) Finish(err error) model.Notification {
	if err != nil {
		e.state = Idle
	} else {
		e.state = Closed
	}
	return Outcome(e.mode, err)
}

// Outcome returns the notification reporting a submission in mode that
// ended with err.
func Outcome(mode Mode, err error) model.Notification {
	switch {
	case mode == ModeCreate && err != nil:
		return model.Failure(MsgCreateFailed)
	case mode == ModeCreate:
		return model.Success(MsgCreated)
	case err != nil:
		return model.Failure(MsgUpdateFailed)
	default:
		return model.Success(MsgUpdated)
	}
}

// Submit runs Prepare, Commit and Finish in sequence. Validation and busy
// errors are returned without a notification.
func (e *Editor) Submit(ctx context.Context, s store.Store, cache *querycache.Cache) (*model.Notification, error) {
	in, err := e.Prepare()
	if err != nil {
		return nil, err
	}

	_, err = e.Commit(ctx, s, cache, in)
	n := e.Finish(err)
	return &n, err
}
