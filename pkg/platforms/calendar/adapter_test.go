package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
)

type fakeAPI struct {
	imported []string
	updated  []string
	err      error
}

func (f *fakeAPI) Import(_ context.Context, _, icsPayload string) (*Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.imported = append(f.imported, icsPayload)
	return &Entry{ID: "e1", HTMLLink: "https://cal.example.com/e/e1"}, nil
}

func (f *fakeAPI) Update(_ context.Context, _, entryID, icsPayload string) (*Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, icsPayload)
	return &Entry{ID: entryID, HTMLLink: "https://cal.example.com/e/" + entryID}, nil
}

func timedEvent(t *testing.T) *event.Event {
	t.Helper()
	ev, err := event.Build(event.RawInput{
		Title:       "Boba Banter",
		Description: "Monthly tea meetup",
		Start:       "2026-02-22T15:00:00-08:00",
		End:         "2026-02-22T17:00:00-08:00",
		Location:    "Half & Half Tea Express",
		RSVPURL:     "https://example.com/rsvp",
	})
	require.NoError(t, err)
	return ev
}

func TestValidateRequiresEnd(t *testing.T) {
	a := NewWithAPI("primary", &fakeAPI{}, logger.Discard)

	assert.NoError(t, a.Validate(timedEvent(t)))

	noEnd, err := event.Build(event.RawInput{Title: "x", Start: "2026-02-22T15:00:00-08:00"})
	require.NoError(t, err)
	verr := a.Validate(noEnd)
	require.Error(t, verr)
	assert.Equal(t, "end", errors.AsPublishError(verr).Field)

	noStart, err := event.Build(event.RawInput{Title: "x"})
	require.NoError(t, err)
	verr = a.Validate(noStart)
	require.Error(t, verr)
	assert.Equal(t, "start", errors.AsPublishError(verr).Field)
}

func TestCreateImportsICS(t *testing.T) {
	api := &fakeAPI{}
	a := NewWithAPI("primary", api, logger.Discard)

	res, err := a.Create(context.Background(), timedEvent(t))
	require.NoError(t, err)
	assert.Equal(t, "e1", res.Ref)
	assert.Equal(t, "https://cal.example.com/e/e1", res.URL)

	require.Len(t, api.imported, 1)
	payload := api.imported[0]
	assert.Contains(t, payload, "BEGIN:VCALENDAR")
	assert.Contains(t, payload, "BEGIN:VEVENT")
	assert.Contains(t, payload, "SUMMARY:Boba Banter")
	assert.Contains(t, payload, "LOCATION:Half & Half Tea Express")
	assert.Contains(t, payload, "URL:https://example.com/rsvp")
	assert.Contains(t, payload, "DTSTART:20260222T230000Z")
}

func TestBuildICSAllDay(t *testing.T) {
	ev, err := event.Build(event.RawInput{Title: "Street Fair", Start: "2026-06-01", End: "2026-06-02"})
	require.NoError(t, err)

	payload := BuildICS(ev, "fixed-uid")
	assert.Contains(t, payload, "UID:fixed-uid")
	assert.Contains(t, payload, "DTSTART;VALUE=DATE:20260601")
	assert.Contains(t, payload, "DTEND;VALUE=DATE:20260602")
}

func TestUpdateReusesUID(t *testing.T) {
	api := &fakeAPI{}
	a := NewWithAPI("primary", api, logger.Discard)

	_, err := a.Update(context.Background(), "e1", timedEvent(t), "move to the back room")
	require.NoError(t, err)
	require.Len(t, api.updated, 1)
	assert.Contains(t, api.updated[0], "UID:e1")
}

func TestCreatePropagatesPlatformError(t *testing.T) {
	api := &fakeAPI{err: errors.New(errors.ErrRateLimited, "quota")}
	a := NewWithAPI("primary", api, logger.Discard)

	_, err := a.Create(context.Background(), timedEvent(t))
	require.Error(t, err)
	pe := errors.AsPublishError(err)
	assert.Equal(t, errors.ErrRateLimited, pe.Code)
	assert.Equal(t, PlatformName, pe.Platform)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(&Config{Token: "t", CalendarID: "c"}, logger.Discard)
	assert.Error(t, err)
	_, err = New(&Config{BaseURL: "https://cal.example.com", CalendarID: "c"}, logger.Discard)
	assert.Error(t, err)
	_, err = New(&Config{BaseURL: "https://cal.example.com", Token: "t"}, logger.Discard)
	assert.Error(t, err)
	_, err = New(&Config{BaseURL: "https://cal.example.com", Token: "t", CalendarID: "c"}, logger.Discard)
	assert.NoError(t, err)
}
