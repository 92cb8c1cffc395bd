// Package manual covers channels without an API: it renders the event
// as a copy-paste text block for a human to post. No network I/O ever
// happens here.
package manual

import (
	"context"
	"strings"

	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
)

// PlatformName identifies this adapter in registries and reports.
const PlatformName = "manual"

// Adapter implements platform.Adapter for the manual channel.
type Adapter struct {
	logger logger.Logger
}

// New creates a manual adapter.
func New(log logger.Logger) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{logger: log}
}

// Name implements platform.Adapter.
func (a *Adapter) Name() string { return PlatformName }

// Capabilities implements platform.Adapter.
func (a *Adapter) Capabilities() platform.Capabilities {
	return platform.Capabilities{Name: PlatformName}
}

// Validate implements platform.Adapter. Anything a canonical event
// allows can be rendered as text.
func (a *Adapter) Validate(*event.Event) error { return nil }

// Create implements platform.Adapter: a pure formatting step whose
// output rides in the result's Note for the human to copy.
func (a *Adapter) Create(_ context.Context, ev *event.Event) (*platform.Result, error) {
	text := Format(ev)
	a.logger.Debug("manual copy block rendered", "chars", len(text))
	return &platform.Result{Ref: "copy-block", Note: text}, nil
}

// Update implements platform.Adapter: re-rendering is the only update
// a human-posted channel supports. The feedback is prepended so the
// poster knows what changed.
func (a *Adapter) Update(_ context.Context, _ string, ev *event.Event, feedback string) (*platform.Result, error) {
	text := Format(ev)
	if feedback != "" {
		text = "Note from review: " + feedback + "\n\n" + text
	}
	return &platform.Result{Ref: "copy-block", Note: text}, nil
}

// Format renders the canonical event as a plain text block.
func Format(ev *event.Event) string {
	var b strings.Builder
	b.WriteString(ev.Title())
	b.WriteString("\n")

	if !ev.Start().IsZero() {
		b.WriteString("When: ")
		b.WriteString(formatWhen(ev.Start()))
		if !ev.End().IsZero() {
			b.WriteString(" to ")
			b.WriteString(formatWhen(ev.End()))
		}
		b.WriteString("\n")
	}
	if ev.Location() != "" {
		b.WriteString("Where: " + ev.Location() + "\n")
	}
	if ev.Cost() != "" {
		b.WriteString("Cost: " + ev.Cost() + "\n")
	}
	if ev.RSVPURL() != "" {
		b.WriteString("RSVP: " + ev.RSVPURL() + "\n")
	}
	if ev.Description() != "" {
		b.WriteString("\n" + ev.Description() + "\n")
	}
	if ev.Image().Kind() != event.ImageNone {
		b.WriteString("\nImage: " + ev.Image().Value() + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatWhen(w event.When) string {
	if w.DateOnly() {
		return w.Time().Format("Monday, January 2, 2006")
	}
	return w.Time().Format("Monday, January 2, 2006 3:04 PM MST")
}
