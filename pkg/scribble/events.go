package scribble

import (
	"github.com/google/uuid"

	"github.com/beyondbezier/scribbler/pkg/errors"
)

// EventKind distinguishes the host notifications a group reacts to.
type EventKind int

const (
	// EventGeometryChanged reports that a source curve's point geometry
	// changed.
	EventGeometryChanged EventKind = iota
	// EventSettingsChanged carries a replacement settings value.
	EventSettingsChanged
)

// Event is the message the host delivers to the coordination layer. It
// abstracts the editor's live-update wiring: the engine depends only on
// these values, never on a specific event-loop API.
type Event struct {
	Kind    EventKind
	GroupID uuid.UUID
	// Settings is the payload for EventSettingsChanged; ignored otherwise.
	Settings *Settings
}

// Set is a working set of groups keyed by identity.
type Set map[uuid.UUID]*Group

// Add inserts a group into the set.
func (s Set) Add(g *Group) {
	s[g.ID()] = g
}

// Remove drops a group from the working set, transitioning it to its
// terminal state.
func (s Set) Remove(id uuid.UUID) {
	if g, ok := s[id]; ok {
		g.Remove()
		delete(s, id)
	}
}

// Apply dispatches an event to its target group, marking it stale. Events
// for unknown groups are a GROUP_NOT_FOUND error; the set is unchanged.
func (s Set) Apply(ev Event) error {
	g, ok := s[ev.GroupID]
	if !ok {
		return errors.New(errors.ErrCodeGroupNotFound, "no group with id %s", ev.GroupID)
	}
	switch ev.Kind {
	case EventSettingsChanged:
		if ev.Settings == nil {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"settings-changed event without settings payload")
		}
		return g.SetSettings(*ev.Settings)
	default:
		return g.GeometryChanged()
	}
}
