package scribble

import (
	"github.com/google/uuid"

	"github.com/beyondbezier/scribbler/pkg/contour"
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/geom"
	"github.com/beyondbezier/scribbler/pkg/noise"
)

// State tracks a group's position in its lifecycle.
type State int

const (
	// StateUninitialized is the zero value before the first computation.
	StateUninitialized State = iota
	// StateValid means the cached result matches the current inputs.
	StateValid
	// StateStale means inputs changed since the last computation; the next
	// read recomputes.
	StateStale
	// StateRemoved is terminal. No operations are valid afterwards.
	StateRemoved
)

// String returns a lowercase state name for logs.
func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateStale:
		return "stale"
	case StateRemoved:
		return "removed"
	default:
		return "uninitialized"
	}
}

// ContourPair designates the two open curves a group scribbles between.
// The curves are externally owned; the group reads them during a
// computation pass and never mutates them.
type ContourPair struct {
	A, B *contour.Curve
}

// Result is one computed scribble: the ordered zig-zag segments and the
// heartline threading their midpoints, together with the settings that
// produced them.
type Result struct {
	Segments  []Segment
	Heartline []geom.Point
	Settings  Settings
}

// Group owns one contour pair plus its settings and coordinates the
// sampling → pairing → building → heartline pipeline for it. Recomputation
// is pull-driven: change notifications only mark the group stale, and the
// next read runs the pipeline against the then-current inputs. Groups are
// independent; one group's failure never affects another.
//
// A Group is not safe for concurrent use. The coordinating layer must
// serialize change notifications and reads per group.
type Group struct {
	id       uuid.UUID
	pair     ContourPair
	settings Settings

	state      State
	invalidErr error // validation failure; group retained, error surfaced
	result     Result
}

// NewGroup creates a group with a fresh identity and runs the pipeline
// once. A validation failure does not return an error here: the group comes
// back flagged invalid so the caller can list it, report it, and let the
// user fix the pairing. Check Err or the error from Result.
func NewGroup(pair ContourPair, settings Settings) *Group {
	return NewGroupWithID(uuid.New(), pair, settings)
}

// NewGroupWithID creates a group with a caller-provided identity. Groups
// loaded from a document keep their stored ID so that jitter seeds, which
// derive from the identity, survive a round-trip.
func NewGroupWithID(id uuid.UUID, pair ContourPair, settings Settings) *Group {
	g := &Group{id: id, pair: pair, settings: settings, state: StateStale}
	g.recompute()
	return g
}

// ID returns the group's stable identity.
func (g *Group) ID() uuid.UUID { return g.id }

// State returns the current lifecycle state.
func (g *Group) State() State { return g.state }

// Err returns the validation error when the group is flagged invalid, nil
// otherwise.
func (g *Group) Err() error { return g.invalidErr }

// Settings returns the group's current settings.
func (g *Group) Settings() Settings { return g.settings }

// SetSettings replaces the settings and marks the group stale.
func (g *Group) SetSettings(s Settings) error {
	if g.state == StateRemoved {
		return errRemoved(g.id)
	}
	g.settings = s
	g.state = StateStale
	return nil
}

// GeometryChanged marks the group stale after a source curve's point
// geometry changed. The curves themselves are re-read on the next
// computation.
func (g *Group) GeometryChanged() error {
	if g.state == StateRemoved {
		return errRemoved(g.id)
	}
	g.state = StateStale
	return nil
}

// Remove drops the group from service. Terminal: every later operation
// fails with GROUP_NOT_FOUND.
func (g *Group) Remove() {
	g.state = StateRemoved
	g.result = Result{}
	g.invalidErr = nil
}

// Result returns the cached scribble, recomputing first when the group is
// stale. Invalid inputs surface as a classified error while the group stays
// in the working set.
func (g *Group) Result() (Result, error) {
	switch g.state {
	case StateRemoved:
		return Result{}, errRemoved(g.id)
	case StateStale, StateUninitialized:
		g.recompute()
	}
	if g.invalidErr != nil {
		return Result{}, g.invalidErr
	}
	return g.result, nil
}

// recompute validates the current inputs and, when they hold, runs the full
// pipeline and caches the outcome.
func (g *Group) recompute() {
	if err := g.validate(); err != nil {
		g.invalidErr = err
		g.result = Result{}
		return
	}
	g.invalidErr = nil

	samplesA, err := contour.SampleCurve(g.pair.A, g.settings.Distance)
	if err != nil {
		g.invalidErr = err
		return
	}
	samplesB, err := contour.SampleCurve(g.pair.B, g.settings.Distance)
	if err != nil {
		g.invalidErr = err
		return
	}

	pairs := Pair(samplesA, samplesB, g.settings.OffsetCount, g.settings.StartSide)
	segments := BuildSegments(pairs, g.settings, g.seed("A"), g.seed("B"))

	g.result = Result{
		Segments:  segments,
		Heartline: Heartline(segments),
		Settings:  g.settings,
	}
	g.state = StateValid
}

// validate checks the invariants required before a pipeline run: in-domain
// settings, both curves present, and structural compatibility. Zero-length
// but structurally present curves pass; they flow through the pipeline as
// the defined degenerate case.
func (g *Group) validate() error {
	if err := g.settings.Validate(); err != nil {
		return err
	}
	if g.pair.A == nil || g.pair.B == nil {
		return errors.New(errors.ErrCodeIncompatibleContours,
			"contour pair requires two curves")
	}
	return contour.CheckCompatible(g.pair.A, g.pair.B)
}

// seed derives the per-side jitter seed from the group identity.
func (g *Group) seed(side string) uint64 {
	return noise.Seed(g.id[:], []byte(side))
}

func errRemoved(id uuid.UUID) error {
	return errors.New(errors.ErrCodeGroupNotFound, "group %s has been removed", id)
}
