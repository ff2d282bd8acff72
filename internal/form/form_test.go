package form_test

import (
	"testing"

	"github.com/nfrund/guestmap/internal/form"
	"github.com/nfrund/guestmap/internal/locate"
	"github.com/stretchr/testify/assert"
)

func validSnapshot() form.Snapshot {
	s := form.Snapshot{}
	s = form.Reduce(s, form.FieldChanged{Field: "name", Value: "CJ"})
	s = form.Reduce(s, form.FieldChanged{Field: "message", Value: "coolest app ever"})
	s = form.Reduce(s, form.LocationResolved{Resolution: locate.Resolution{
		Point: locate.Point{Lat: 45.5, Lng: -73.6},
		Known: true,
		Zoom:  locate.ZoomClose,
	}})
	return s
}

func TestCanSubmit(t *testing.T) {
	t.Run("valid fields with location known", func(t *testing.T) {
		assert.True(t, validSnapshot().CanSubmit())
	})

	t.Run("message too short", func(t *testing.T) {
		s := form.Reduce(validSnapshot(), form.FieldChanged{Field: "message", Value: "hi"})
		assert.False(t, s.CanSubmit())
	})

	t.Run("empty name", func(t *testing.T) {
		s := form.Reduce(validSnapshot(), form.FieldChanged{Field: "name", Value: ""})
		assert.False(t, s.CanSubmit())
	})

	t.Run("location unknown", func(t *testing.T) {
		s := form.Snapshot{Name: "CJ", Message: "coolest app ever"}
		assert.False(t, s.CanSubmit())
	})

	t.Run("send outstanding", func(t *testing.T) {
		s := form.Reduce(validSnapshot(), form.SubmitClicked{})
		assert.Equal(t, form.StateSending, s.State)
		assert.False(t, s.CanSubmit())
	})
}

func TestReduce_SubmitLifecycle(t *testing.T) {
	s := validSnapshot()

	s = form.Reduce(s, form.SubmitClicked{})
	assert.Equal(t, form.StateSending, s.State)

	// A second click while sending is ignored, not queued.
	again := form.Reduce(s, form.SubmitClicked{})
	assert.Equal(t, s, again)

	done := form.Reduce(s, form.SendSucceeded{})
	assert.Equal(t, form.StateSucceeded, done.State)

	failed := form.Reduce(s, form.SendFailed{Reason: "store rejected the message"})
	assert.Equal(t, form.StateFailed, failed.State)
	assert.Equal(t, "store rejected the message", failed.FailReason)
}

func TestReduce_SubmitIgnoredWhenInvalid(t *testing.T) {
	s := form.Snapshot{Name: "CJ", Message: "hi", LocationKnown: true}

	next := form.Reduce(s, form.SubmitClicked{})

	// Invalid input never raises an error; it silently refuses to send.
	assert.Equal(t, s, next)
	assert.Equal(t, form.StateIdle, next.State)
}

func TestReduce_ResubmitAfterFailure(t *testing.T) {
	s := form.Reduce(validSnapshot(), form.SubmitClicked{})
	s = form.Reduce(s, form.SendFailed{Reason: "network"})

	s = form.Reduce(s, form.SubmitClicked{})

	assert.Equal(t, form.StateSending, s.State)
	assert.Empty(t, s.FailReason)
}

func TestReduce_LocationOnlyMovesForward(t *testing.T) {
	s := form.Reduce(form.Snapshot{}, form.LocationResolved{Resolution: locate.Resolution{
		Point: locate.Point{Lat: 1, Lng: 2},
		Known: true,
	}})
	assert.True(t, s.LocationKnown)

	// A later failed resolution does not revert a known location.
	s = form.Reduce(s, form.LocationResolved{Resolution: locate.Resolution{Zoom: locate.ZoomWorld}})
	assert.True(t, s.LocationKnown)
	assert.Equal(t, locate.Point{Lat: 1, Lng: 2}, s.Location)
}

func TestReduce_CompletionEventsOutsideSendingAreIgnored(t *testing.T) {
	s := validSnapshot()

	assert.Equal(t, s, form.Reduce(s, form.SendSucceeded{}))
	assert.Equal(t, s, form.Reduce(s, form.SendFailed{Reason: "late"}))
}

func TestReduce_EditsIgnoredWhileSending(t *testing.T) {
	s := form.Reduce(validSnapshot(), form.SubmitClicked{})

	next := form.Reduce(s, form.FieldChanged{Field: "message", Value: "changed mid-flight"})

	assert.Equal(t, s.Message, next.Message)
}

func TestReduce_MessagesLoaded(t *testing.T) {
	s := form.Reduce(form.Snapshot{}, form.MessagesLoaded{})
	assert.True(t, s.MessagesLoaded)
}
