// Package event defines the canonical, platform-agnostic event
// description that every adapter derives its payload from. An Event is
// immutable once built; adapters read it, they never change it.
package event

import "time"

// ImageRefKind tags the variant of an ImageRef.
type ImageRefKind int

const (
	// ImageNone means no image was supplied.
	ImageNone ImageRefKind = iota
	// ImageLocalPath references an image file on the local filesystem.
	ImageLocalPath
	// ImageRemoteURL references an image by direct-download URL.
	ImageRemoteURL
)

// String returns the variant name.
func (k ImageRefKind) String() string {
	switch k {
	case ImageLocalPath:
		return "local_path"
	case ImageRemoteURL:
		return "remote_url"
	default:
		return "none"
	}
}

// ImageRef is a tagged reference to the event image. Resolution to
// actual bytes is each adapter's concern and happens lazily.
type ImageRef struct {
	kind  ImageRefKind
	value string
}

// Kind returns the variant tag.
func (r ImageRef) Kind() ImageRefKind { return r.kind }

// Value returns the path or URL; empty for ImageNone.
func (r ImageRef) Value() string { return r.value }

// When is a point in time that is either a full timestamp with an
// explicit offset or a date-only value for all-day events.
type When struct {
	t        time.Time
	dateOnly bool
	set      bool
}

// IsZero reports whether no value was supplied.
func (w When) IsZero() bool { return !w.set }

// Time returns the underlying time. For date-only values this is
// midnight UTC of that date.
func (w When) Time() time.Time { return w.t }

// DateOnly reports whether the value carries no time of day.
func (w When) DateOnly() bool { return w.dateOnly }

// String renders the value in the form it was supplied.
func (w When) String() string {
	if !w.set {
		return ""
	}
	if w.dateOnly {
		return w.t.Format("2006-01-02")
	}
	return w.t.Format(time.RFC3339)
}

// Event is the canonical event description. All fields are unexported;
// the only way to obtain an Event is through Build, which validates the
// raw input. This is what makes the read-only invariant structural
// rather than conventional.
type Event struct {
	title       string
	description string
	start       When
	end         When
	location    string
	cost        string
	rsvpURL     string
	image       ImageRef
}

// Title returns the event title. Never empty.
func (e *Event) Title() string { return e.title }

// Description returns the optional long-form description.
func (e *Event) Description() string { return e.description }

// Start returns the start time, possibly unset.
func (e *Event) Start() When { return e.start }

// End returns the end time, possibly unset. Whether an end is required
// is an adapter-level rule, not a global one.
func (e *Event) End() When { return e.end }

// Location returns the optional venue string.
func (e *Event) Location() string { return e.location }

// Cost returns the optional display-only cost string.
func (e *Event) Cost() string { return e.cost }

// RSVPURL returns the optional RSVP link.
func (e *Event) RSVPURL() string { return e.rsvpURL }

// Image returns the tagged image reference.
func (e *Event) Image() ImageRef { return e.image }
