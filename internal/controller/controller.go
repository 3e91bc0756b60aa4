// Package controller implements the view/state synchronization machine
// coordinating file intake, the async request lifecycle, and the
// history/detail navigation model. It knows nothing about rendering or
// transport: commands return Effect values describing the async work,
// the caller executes them and reports back through Resolve.
package controller

import (
	"errors"
	"log/slog"

	"github.com/raphaelgruber/cvlens/internal/client"
	"github.com/raphaelgruber/cvlens/internal/history"
	"github.com/raphaelgruber/cvlens/internal/intake"
	"github.com/raphaelgruber/cvlens/internal/models"
)

// State identifies which view is active.
type State int

const (
	// StateIdle: no candidate submitted, no active result.
	StateIdle State = iota
	// StatePending: a submit or fetch is in flight.
	StatePending
	// StateDetail: a result record is active.
	StateDetail
	// StateFailed: the last operation errored; no result active.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateDetail:
		return "detail"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EffectKind distinguishes the two async operations.
type EffectKind int

const (
	// EffectSubmit uploads the candidate file.
	EffectSubmit EffectKind = iota
	// EffectFetch retrieves a record by id.
	EffectFetch
)

func (k EffectKind) String() string {
	if k == EffectSubmit {
		return "submit"
	}
	return "fetch"
}

// Effect describes one async operation the caller must run. Gen tags
// the operation; Resolve discards outcomes whose generation is stale.
type Effect struct {
	Kind      EffectKind
	Gen       uint64
	Candidate intake.Candidate // set for EffectSubmit
	ID        string           // set for EffectFetch
}

// ErrBusy is returned when a command would start a second async
// operation while one is already in flight.
var ErrBusy = errors.New("an operation is already in flight")

// Controller owns the single in-flight-request slot and the sub-state
// of intake, store, and active record.
type Controller struct {
	intake *intake.Intake
	store  *history.Store
	logger *slog.Logger

	state    State
	active   *models.ResumeRecord
	errMsg   string
	gen      uint64
	inflight EffectKind
}

// New creates a controller in Idle over the given intake and store.
func New(in *intake.Intake, store *history.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		intake: in,
		store:  store,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// Active returns the record bound to the detail view, or nil.
func (c *Controller) Active() *models.ResumeRecord { return c.active }

// ErrorMessage returns the message for the Failed state.
func (c *Controller) ErrorMessage() string { return c.errMsg }

// Candidate returns the pending candidate file, or nil.
func (c *Controller) Candidate() *intake.Candidate { return c.intake.Pending() }

// Store exposes the history store for listing views.
func (c *Controller) Store() *history.Store { return c.store }

// SelectFile delegates to the intake. From Idle it is a sub-state
// update only; from Detail or Failed a successful select clears the
// active record or error (a candidate and an active record are never
// both present). A rejected select changes nothing. Rejected while
// Pending.
func (c *Controller) SelectFile(path string) error {
	if c.state == StatePending {
		return ErrBusy
	}
	if err := c.intake.Select(path); err != nil {
		return err
	}
	c.state = StateIdle
	c.active = nil
	c.errMsg = ""
	return nil
}

// ConfirmUpload moves to Pending and returns the submit effect. The
// candidate is not cleared here; it survives a failed submission so the
// user can retry without reselecting.
func (c *Controller) ConfirmUpload() (Effect, error) {
	if c.state == StatePending {
		return Effect{}, ErrBusy
	}
	cand, err := c.intake.Confirm()
	if err != nil {
		return Effect{}, err
	}

	c.gen++
	c.state = StatePending
	c.inflight = EffectSubmit
	c.errMsg = ""
	c.logger.Info("submitting resume", "filename", cand.Filename, "bytes", cand.Size())
	return Effect{Kind: EffectSubmit, Gen: c.gen, Candidate: cand}, nil
}

// SelectEntry moves to Pending and returns the fetch effect for id.
// Selecting the id already active in Detail is a no-op and returns no
// effect, avoiding a redundant fetch.
func (c *Controller) SelectEntry(id string) (Effect, bool, error) {
	if c.state == StatePending {
		return Effect{}, false, ErrBusy
	}
	if c.state == StateDetail && c.active != nil && c.active.ID == id {
		return Effect{}, false, nil
	}

	// Records are immutable once created, so a cached full record can
	// bind to the detail view without another round-trip. Stubs from the
	// server listing have no cached record and still fetch.
	if rec, ok := c.store.Find(id); ok {
		c.intake.Reset()
		c.active = &rec
		c.state = StateDetail
		c.errMsg = ""
		return Effect{}, false, nil
	}

	c.gen++
	c.state = StatePending
	c.inflight = EffectFetch
	c.errMsg = ""
	c.logger.Info("fetching analysis", "id", id)
	return Effect{Kind: EffectFetch, Gen: c.gen, ID: id}, true, nil
}

// NewAnalysis resets to Idle from any state, clearing the active
// record, any error, and the pending candidate. Bumping the generation
// orphans an in-flight operation: its late outcome is discarded.
func (c *Controller) NewAnalysis() {
	c.gen++
	c.state = StateIdle
	c.active = nil
	c.errMsg = ""
	c.intake.Reset()
}

// Resolve reports the outcome of an effect. Outcomes with a stale
// generation are discarded; a late response must never overwrite newer
// state. On success the record is pushed into the history store and
// becomes the active detail; a successful submit also clears the
// candidate. On failure the machine moves to Failed with the
// user-facing message.
func (c *Controller) Resolve(gen uint64, rec models.ResumeRecord, err error) {
	if gen != c.gen || c.state != StatePending {
		c.logger.Debug("discarding stale response", "gen", gen, "current", c.gen)
		return
	}

	if err != nil {
		c.state = StateFailed
		c.errMsg = client.Message(err)
		c.logger.Warn("operation failed", "kind", c.inflight.String(), "error", err)
		return
	}

	c.store.Record(rec)
	// A settled success supersedes the candidate either way: a submit
	// consumed it, a fetch replaced it with an active record.
	c.intake.Reset()
	c.active = &rec
	c.state = StateDetail
	c.logger.Info("analysis ready", "id", rec.ID, "filename", rec.Filename)
}
