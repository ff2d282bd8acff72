// Package form models the submission flow as an explicit state machine.
//
// The view state lives in an immutable Snapshot; every UI or network event is
// reduced into a new Snapshot by a pure function. Every transition is total:
// failure paths land in StateFailed with a reason instead of leaving the form
// stuck mid-send.
package form

import (
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/locate"
)

// State is the submission lifecycle position.
type State int

const (
	// StateIdle accepts edits and, when the snapshot is valid, a submit.
	StateIdle State = iota
	// StateSending has a create call outstanding. Further submits are ignored.
	StateSending
	// StateSucceeded means the message was stored.
	StateSucceeded
	// StateFailed means the send did not complete; FailReason says why.
	StateFailed
)

// String returns the state name for logs and templates.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the complete form view state. Snapshots are values: Reduce
// returns a new one and never mutates its input.
type Snapshot struct {
	Name           string
	Message        string
	Location       locate.Point
	LocationKnown  bool
	MessagesLoaded bool
	State          State
	FailReason     string
}

// CanSubmit reports whether a submit would actually send: both fields pass the
// submission rules, the location is known, and no send is outstanding.
func (s Snapshot) CanSubmit() bool {
	if s.State == StateSending {
		return false
	}
	if !s.LocationKnown {
		return false
	}
	return domain.ValidateSubmission(s.Name, s.Message) == nil
}

// Event is a view or network occurrence folded into the snapshot.
type Event interface {
	isEvent()
}

// FieldChanged carries an edit to one of the two form fields.
type FieldChanged struct {
	Field string // "name" or "message"
	Value string
}

// LocationResolved reports the outcome of the one-shot location resolution.
// Location only ever moves forward, unknown to known; a resolution without a
// fix leaves the snapshot untouched.
type LocationResolved struct {
	Resolution locate.Resolution
}

// MessagesLoaded reports that the initial message listing arrived.
type MessagesLoaded struct{}

// SubmitClicked asks to send the current fields.
type SubmitClicked struct{}

// SendSucceeded reports that the store accepted the message.
type SendSucceeded struct{}

// SendFailed reports a send that did not complete, with the reason
// (validation, network, server).
type SendFailed struct {
	Reason string
}

func (FieldChanged) isEvent()     {}
func (LocationResolved) isEvent() {}
func (MessagesLoaded) isEvent()   {}
func (SubmitClicked) isEvent()    {}
func (SendSucceeded) isEvent()    {}
func (SendFailed) isEvent()       {}

// Reduce folds one event into the snapshot and returns the successor state.
// Unknown events and out-of-place transitions return the snapshot unchanged,
// so a stray double-click while sending is simply ignored rather than queued.
func Reduce(s Snapshot, e Event) Snapshot {
	switch ev := e.(type) {
	case FieldChanged:
		if s.State == StateSending {
			return s
		}
		switch ev.Field {
		case "name":
			s.Name = ev.Value
		case "message":
			s.Message = ev.Value
		}
		return s

	case LocationResolved:
		if !ev.Resolution.Known {
			return s
		}
		s.Location = ev.Resolution.Point
		s.LocationKnown = true
		return s

	case MessagesLoaded:
		s.MessagesLoaded = true
		return s

	case SubmitClicked:
		if !s.CanSubmit() {
			return s
		}
		s.State = StateSending
		s.FailReason = ""
		return s

	case SendSucceeded:
		if s.State != StateSending {
			return s
		}
		s.State = StateSucceeded
		return s

	case SendFailed:
		if s.State != StateSending {
			return s
		}
		s.State = StateFailed
		s.FailReason = ev.Reason
		return s

	default:
		return s
	}
}
