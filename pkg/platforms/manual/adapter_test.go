package manual

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
)

func fullEvent(t *testing.T) *event.Event {
	t.Helper()
	ev, err := event.Build(event.RawInput{
		Title:       "Boba & Banter",
		Description: "Casual meetup over milk tea.",
		Start:       "2026-02-22T15:00:00-08:00",
		End:         "2026-02-22T17:00:00-08:00",
		Location:    "Half & Half Tea Express",
		Cost:        "Free",
		RSVPURL:     "https://example.com/rsvp",
		Image:       "https://example.com/flyer.png",
	})
	require.NoError(t, err)
	return ev
}

func TestCapabilities(t *testing.T) {
	a := New(logger.Discard)
	caps := a.Capabilities()
	assert.Equal(t, PlatformName, caps.Name)
	assert.False(t, caps.SupportsReview)
	assert.False(t, caps.UsesNetwork)
	assert.False(t, caps.RequiresEnd)
}

func TestCreateFormatsCopyBlock(t *testing.T) {
	a := New(logger.Discard)

	res, err := a.Create(context.Background(), fullEvent(t))
	require.NoError(t, err)
	assert.Equal(t, "copy-block", res.Ref)
	assert.Empty(t, res.URL)

	assert.True(t, strings.HasPrefix(res.Note, "Boba & Banter\n"))
	assert.Contains(t, res.Note, "When: Sunday, February 22, 2026 3:00 PM")
	assert.Contains(t, res.Note, " to Sunday, February 22, 2026 5:00 PM")
	assert.Contains(t, res.Note, "Where: Half & Half Tea Express")
	assert.Contains(t, res.Note, "Cost: Free")
	assert.Contains(t, res.Note, "RSVP: https://example.com/rsvp")
	assert.Contains(t, res.Note, "Casual meetup over milk tea.")
	assert.Contains(t, res.Note, "Image: https://example.com/flyer.png")
}

func TestCreateOmitsEmptySections(t *testing.T) {
	a := New(logger.Discard)
	ev, err := event.Build(event.RawInput{Title: "Title Only"})
	require.NoError(t, err)

	res, err := a.Create(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "Title Only", res.Note)
	assert.NotContains(t, res.Note, "When:")
	assert.NotContains(t, res.Note, "Where:")
	assert.NotContains(t, res.Note, "Image:")
}

func TestDateOnlyRendering(t *testing.T) {
	a := New(logger.Discard)
	ev, err := event.Build(event.RawInput{Title: "Street Fair", Start: "2026-06-01"})
	require.NoError(t, err)

	res, err := a.Create(context.Background(), ev)
	require.NoError(t, err)
	assert.Contains(t, res.Note, "When: Monday, June 1, 2026")
	assert.NotContains(t, res.Note, "12:00 AM")
}

func TestUpdatePrependsFeedback(t *testing.T) {
	a := New(logger.Discard)

	res, err := a.Update(context.Background(), "copy-block", fullEvent(t), "drop the cost line next time")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Note, "Note from review: drop the cost line next time\n\n"))
	assert.Contains(t, res.Note, "Boba & Banter")
}

func TestUpdateWithoutFeedback(t *testing.T) {
	a := New(logger.Discard)

	created, err := a.Create(context.Background(), fullEvent(t))
	require.NoError(t, err)
	updated, err := a.Update(context.Background(), created.Ref, fullEvent(t), "")
	require.NoError(t, err)
	assert.Equal(t, created.Note, updated.Note)
}

func TestValidateAcceptsAnything(t *testing.T) {
	a := New(logger.Discard)
	ev, err := event.Build(event.RawInput{Title: strings.Repeat("x", 5000)})
	require.NoError(t, err)
	assert.NoError(t, a.Validate(ev))
}
