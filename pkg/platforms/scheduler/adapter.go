// Package scheduler publishes events to a chat community's scheduled
// event list. External-venue events carry their location in entity
// metadata and must be bounded in time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
)

// PlatformName identifies this adapter in registries and reports.
const PlatformName = "scheduler"

const maxTitleLength = 100

// Entity types the community scheduler accepts.
const (
	EntityExternal = "external"
	EntityVoice    = "voice"
	EntityStage    = "stage"
)

// Config holds the construction-time credentials for the community
// scheduler.
type Config struct {
	BaseURL     string        `json:"base_url"`
	BotToken    string        `json:"bot_token"`
	CommunityID string        `json:"community_id"`
	// EntityType selects where the event happens; defaults to external.
	EntityType string        `json:"entity_type,omitempty"`
	Timeout    time.Duration `json:"timeout"`
}

// EventPayload is the request shape of the scheduler endpoints.
type EventPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	ScheduledStart string          `json:"scheduled_start_time"`
	ScheduledEnd   string          `json:"scheduled_end_time,omitempty"`
	EntityType     string          `json:"entity_type"`
	EntityMetadata *EntityMetadata `json:"entity_metadata,omitempty"`
	ImageURL       string          `json:"image,omitempty"`
}

// EntityMetadata carries the venue for external events.
type EntityMetadata struct {
	Location string `json:"location"`
}

// ScheduledEvent is the response shape of the scheduler endpoints.
type ScheduledEvent struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
}

// API is the scheduler surface the adapter drives.
type API interface {
	CreateEvent(ctx context.Context, communityID string, p EventPayload) (*ScheduledEvent, error)
	UpdateEvent(ctx context.Context, communityID, eventID string, p EventPayload) (*ScheduledEvent, error)
}

// Adapter implements platform.Adapter for the community scheduler.
type Adapter struct {
	communityID string
	entityType  string
	api         API
	logger      logger.Logger
}

// New creates a scheduler adapter with the default HTTP-backed API.
func New(cfg *Config, log logger.Logger) (*Adapter, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("scheduler base URL is required")
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("scheduler bot token is required")
	}
	if cfg.CommunityID == "" {
		return nil, fmt.Errorf("scheduler community id is required")
	}
	entityType := cfg.EntityType
	if entityType == "" {
		entityType = EntityExternal
	}
	return NewWithAPI(cfg.CommunityID, entityType, newHTTPAPI(cfg), log), nil
}

// NewWithAPI creates a scheduler adapter over a custom API implementation.
func NewWithAPI(communityID, entityType string, api API, log logger.Logger) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	if entityType == "" {
		entityType = EntityExternal
	}
	return &Adapter{
		communityID: communityID,
		entityType:  entityType,
		api:         api,
		logger:      log,
	}
}

// Name implements platform.Adapter.
func (a *Adapter) Name() string { return PlatformName }

// Capabilities implements platform.Adapter.
func (a *Adapter) Capabilities() platform.Capabilities {
	return platform.Capabilities{
		Name:             PlatformName,
		RequiresEnd:      true,
		RequiresLocation: a.entityType == EntityExternal,
		MaxTitleLength:   maxTitleLength,
		UsesNetwork:      true,
	}
}

// Validate implements platform.Adapter. Scheduled events are always
// bounded in time, and external events additionally need a venue.
func (a *Adapter) Validate(ev *event.Event) error {
	if len(ev.Title()) > maxTitleLength {
		return errors.Validation("title",
			fmt.Sprintf("title exceeds %d characters", maxTitleLength)).
			WithPlatform(PlatformName)
	}
	if ev.Start().IsZero() {
		return errors.Validation("start", "scheduler requires a start time").
			WithPlatform(PlatformName)
	}
	if ev.End().IsZero() {
		return errors.Validation("end", "scheduler requires an end time").
			WithPlatform(PlatformName)
	}
	if a.entityType == EntityExternal && ev.Location() == "" {
		return errors.Validation("location", "external events require a location").
			WithPlatform(PlatformName)
	}
	return nil
}

// Create implements platform.Adapter.
func (a *Adapter) Create(ctx context.Context, ev *event.Event) (*platform.Result, error) {
	created, err := a.api.CreateEvent(ctx, a.communityID, a.payload(ev))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	a.logger.Debug("scheduled event created", "event", created.ID)
	return &platform.Result{
		Ref: created.ID,
		URL: fmt.Sprintf("https://community.example.com/%s/events/%s", a.communityID, created.ID),
	}, nil
}

// Update implements platform.Adapter. The scheduler has no notion of a
// revision note; the event is replaced wholesale.
func (a *Adapter) Update(ctx context.Context, ref string, ev *event.Event, feedback string) (*platform.Result, error) {
	if feedback != "" {
		a.logger.Debug("scheduler update feedback noted", "event", ref, "feedback", feedback)
	}
	updated, err := a.api.UpdateEvent(ctx, a.communityID, ref, a.payload(ev))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	return &platform.Result{
		Ref: updated.ID,
		URL: fmt.Sprintf("https://community.example.com/%s/events/%s", a.communityID, updated.ID),
	}, nil
}

func (a *Adapter) payload(ev *event.Event) EventPayload {
	p := EventPayload{
		Name:           ev.Title(),
		Description:    ev.Description(),
		ScheduledStart: formatTime(ev.Start()),
		ScheduledEnd:   formatTime(ev.End()),
		EntityType:     a.entityType,
	}
	if a.entityType == EntityExternal {
		p.EntityMetadata = &EntityMetadata{Location: ev.Location()}
	}
	if ev.Image().Kind() == event.ImageRemoteURL {
		p.ImageURL = ev.Image().Value()
	}
	return p
}

func formatTime(w event.When) string {
	if w.IsZero() {
		return ""
	}
	return w.Time().Format(time.RFC3339)
}
