// Package calendar publishes events to a calendar service by importing
// an iCalendar VEVENT derived from the canonical event.
package calendar

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
	"github.com/kart-io/eventcast/pkg/utils/idgen"
)

// PlatformName identifies this adapter in registries and reports.
const PlatformName = "calendar"

// Config holds the construction-time credentials for the calendar
// service.
type Config struct {
	BaseURL    string        `json:"base_url"`
	Token      string        `json:"token"`
	CalendarID string        `json:"calendar_id"`
	Timeout    time.Duration `json:"timeout"`
}

// Entry is the response shape of the calendar import endpoints.
type Entry struct {
	ID       string `json:"id"`
	HTMLLink string `json:"html_link"`
}

// API is the calendar surface the adapter drives.
type API interface {
	Import(ctx context.Context, calendarID, icsPayload string) (*Entry, error)
	Update(ctx context.Context, calendarID, entryID, icsPayload string) (*Entry, error)
}

// Adapter implements platform.Adapter for the calendar service. The
// calendar has no draft notion; created entries are immediately live.
type Adapter struct {
	calendarID string
	api        API
	logger     logger.Logger
}

// New creates a calendar adapter with the default HTTP-backed API.
func New(cfg *Config, log logger.Logger) (*Adapter, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("calendar base URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("calendar token is required")
	}
	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("calendar id is required")
	}
	return NewWithAPI(cfg.CalendarID, newHTTPAPI(cfg), log), nil
}

// NewWithAPI creates a calendar adapter over a custom API implementation.
func NewWithAPI(calendarID string, api API, log logger.Logger) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{calendarID: calendarID, api: api, logger: log}
}

// Name implements platform.Adapter.
func (a *Adapter) Name() string { return PlatformName }

// Capabilities implements platform.Adapter.
func (a *Adapter) Capabilities() platform.Capabilities {
	return platform.Capabilities{
		Name:        PlatformName,
		RequiresEnd: true,
		UsesNetwork: true,
	}
}

// Validate implements platform.Adapter. A calendar entry is a span, so
// the end is required; start is implied by requiring an end to pair with.
func (a *Adapter) Validate(ev *event.Event) error {
	if ev.Start().IsZero() {
		return errors.Validation("start", "calendar requires a start time").
			WithPlatform(PlatformName)
	}
	if ev.End().IsZero() {
		return errors.Validation("end", "calendar requires an end time").
			WithPlatform(PlatformName)
	}
	return nil
}

// Create implements platform.Adapter.
func (a *Adapter) Create(ctx context.Context, ev *event.Event) (*platform.Result, error) {
	entry, err := a.api.Import(ctx, a.calendarID, BuildICS(ev, ""))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	a.logger.Debug("calendar entry created", "entry", entry.ID)
	return &platform.Result{Ref: entry.ID, URL: entry.HTMLLink}, nil
}

// Update implements platform.Adapter. The calendar has no revision
// notion; the entry is replaced wholesale and the feedback is only
// logged.
func (a *Adapter) Update(ctx context.Context, ref string, ev *event.Event, feedback string) (*platform.Result, error) {
	if feedback != "" {
		a.logger.Debug("calendar update feedback noted", "entry", ref, "feedback", feedback)
	}
	entry, err := a.api.Update(ctx, a.calendarID, ref, BuildICS(ev, ref))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	return &platform.Result{Ref: entry.ID, URL: entry.HTMLLink}, nil
}

// BuildICS renders the canonical event as an iCalendar payload. The uid
// is reused on updates so the service replaces rather than duplicates;
// pass empty for a fresh entry.
func BuildICS(ev *event.Event, uid string) string {
	if uid == "" {
		uid = idgen.JobID() + "@eventcast"
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	ve := cal.AddEvent(uid)
	ve.SetDtStampTime(time.Now().UTC())
	ve.SetSummary(ev.Title())

	if ev.Start().DateOnly() {
		ve.SetAllDayStartAt(ev.Start().Time())
	} else {
		ve.SetStartAt(ev.Start().Time())
	}
	if !ev.End().IsZero() {
		if ev.End().DateOnly() {
			ve.SetAllDayEndAt(ev.End().Time())
		} else {
			ve.SetEndAt(ev.End().Time())
		}
	}

	if ev.Description() != "" {
		ve.SetDescription(ev.Description())
	}
	if ev.Location() != "" {
		ve.SetLocation(ev.Location())
	}
	if ev.RSVPURL() != "" {
		ve.SetURL(ev.RSVPURL())
	}

	return cal.Serialize()
}
