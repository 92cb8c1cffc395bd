package scheduler

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
	created []EventPayload
	updated []EventPayload
	err     error
}

func (f *fakeAPI) CreateEvent(_ context.Context, _ string, p EventPayload) (*ScheduledEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	return &ScheduledEvent{ID: "se1", CommunityID: "g1"}, nil
}

func (f *fakeAPI) UpdateEvent(_ context.Context, _, id string, p EventPayload) (*ScheduledEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, p)
	return &ScheduledEvent{ID: id, CommunityID: "g1"}, nil
}

func bobaBanter(t *testing.T) *event.Event {
	t.Helper()
	ev, err := event.Build(event.RawInput{
		Title:    "Boba Banter",
		Start:    "2026-02-22T15:00:00-08:00",
		End:      "2026-02-22T17:00:00-08:00",
		Location: "Half & Half Tea Express",
	})
	require.NoError(t, err)
	return ev
}

func TestValidateExternalRules(t *testing.T) {
	a := NewWithAPI("g1", EntityExternal, &fakeAPI{}, logger.Discard)

	assert.NoError(t, a.Validate(bobaBanter(t)))

	tests := []struct {
		name  string
		in    event.RawInput
		field string
	}{
		{
			"missing end",
			event.RawInput{Title: "Boba Banter", Start: "2026-02-22T15:00:00-08:00", Location: "Half & Half Tea Express"},
			"end",
		},
		{
			"missing start",
			event.RawInput{Title: "Boba Banter", Location: "Half & Half Tea Express"},
			"start",
		},
		{
			"missing location",
			event.RawInput{Title: "Boba Banter", Start: "2026-02-22T15:00:00-08:00", End: "2026-02-22T17:00:00-08:00"},
			"location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := event.Build(tt.in)
			require.NoError(t, err)
			verr := a.Validate(ev)
			require.Error(t, verr)
			pe := errors.AsPublishError(verr)
			assert.Equal(t, errors.ErrValidation, pe.Code)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestValidateVoiceNeedsNoLocation(t *testing.T) {
	a := NewWithAPI("g1", EntityVoice, &fakeAPI{}, logger.Discard)
	ev, err := event.Build(event.RawInput{
		Title: "Community Call",
		Start: "2026-02-22T15:00:00-08:00",
		End:   "2026-02-22T16:00:00-08:00",
	})
	require.NoError(t, err)
	assert.NoError(t, a.Validate(ev))
	assert.False(t, a.Capabilities().RequiresLocation)
}

func TestCreatePayload(t *testing.T) {
	api := &fakeAPI{}
	a := NewWithAPI("g1", EntityExternal, api, logger.Discard)

	res, err := a.Create(context.Background(), bobaBanter(t))
	require.NoError(t, err)
	assert.Equal(t, "se1", res.Ref)
	assert.Contains(t, res.URL, "/g1/events/se1")

	require.Len(t, api.created, 1)
	p := api.created[0]
	assert.Equal(t, "Boba Banter", p.Name)
	assert.Equal(t, "2026-02-22T15:00:00-08:00", p.ScheduledStart)
	assert.Equal(t, "2026-02-22T17:00:00-08:00", p.ScheduledEnd)
	assert.Equal(t, EntityExternal, p.EntityType)
	require.NotNil(t, p.EntityMetadata)
	assert.Equal(t, "Half & Half Tea Express", p.EntityMetadata.Location)
}

func TestCreatePropagatesError(t *testing.T) {
	api := &fakeAPI{err: errors.New(errors.ErrRateLimited, "too many requests")}
	a := NewWithAPI("g1", EntityExternal, api, logger.Discard)

	_, err := a.Create(context.Background(), bobaBanter(t))
	require.Error(t, err)
	pe := errors.AsPublishError(err)
	assert.Equal(t, errors.ErrRateLimited, pe.Code)
	assert.Equal(t, PlatformName, pe.Platform)
}

func TestUpdateReplacesEvent(t *testing.T) {
	api := &fakeAPI{}
	a := NewWithAPI("g1", EntityExternal, api, logger.Discard)

	res, err := a.Update(context.Background(), "se1", bobaBanter(t), "new venue")
	require.NoError(t, err)
	assert.Equal(t, "se1", res.Ref)
	require.Len(t, api.updated, 1)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(&Config{BotToken: "t", CommunityID: "g"}, logger.Discard)
	assert.Error(t, err)
	_, err = New(&Config{BaseURL: "https://api.example.com", CommunityID: "g"}, logger.Discard)
	assert.Error(t, err)
	_, err = New(&Config{BaseURL: "https://api.example.com", BotToken: "t"}, logger.Discard)
	assert.Error(t, err)

	a, err := New(&Config{BaseURL: "https://api.example.com", BotToken: "t", CommunityID: "g"}, logger.Discard)
	require.NoError(t, err)
	assert.True(t, a.Capabilities().RequiresLocation, "entity type defaults to external")
}
