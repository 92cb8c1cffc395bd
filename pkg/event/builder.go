package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kart-io/eventcast/pkg/errors"
)

// RawInput holds the free-form user-supplied fields an Event is built
// from. Start and End accept RFC 3339 timestamps (offset required) or
// date-only values in YYYY-MM-DD form.
type RawInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Location    string `json:"location,omitempty"`
	Cost        string `json:"cost,omitempty"`
	RSVPURL     string `json:"rsvp_url,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Drive share links come in two shapes; both carry the file id we need
// for the direct-download form.
var (
	driveFilePattern = regexp.MustCompile(`^https://drive\.google\.com/file/d/([^/?#]+)`)
	driveOpenPattern = regexp.MustCompile(`^https://drive\.google\.com/open\?id=([^&#]+)`)
)

// Build validates raw input and constructs an immutable Event. The
// transform is pure: identical input always yields a field-for-field
// identical Event, and no external state is touched.
func Build(in RawInput) (*Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.Validation("title", "title must not be empty")
	}

	start, err := parseWhen(in.Start)
	if err != nil {
		return nil, errors.Validation("start", err.Error())
	}
	end, err := parseWhen(in.End)
	if err != nil {
		return nil, errors.Validation("end", err.Error())
	}
	if !start.IsZero() && !end.IsZero() && end.Time().Before(start.Time()) {
		return nil, errors.Validation("end", "end must not precede start")
	}

	return &Event{
		title:       title,
		description: strings.TrimSpace(in.Description),
		start:       start,
		end:         end,
		location:    strings.TrimSpace(in.Location),
		cost:        strings.TrimSpace(in.Cost),
		rsvpURL:     strings.TrimSpace(in.RSVPURL),
		image:       buildImageRef(in.Image),
	}, nil
}

func parseWhen(raw string) (When, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return When{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return When{t: t, set: true}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return When{t: t, dateOnly: true, set: true}, nil
	}
	return When{}, fmt.Errorf("%q is not an RFC 3339 timestamp or YYYY-MM-DD date", raw)
}

func buildImageRef(raw string) ImageRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ImageRef{kind: ImageNone}
	}
	if rewritten, ok := rewriteDriveShareURL(raw); ok {
		return ImageRef{kind: ImageRemoteURL, value: rewritten}
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return ImageRef{kind: ImageRemoteURL, value: raw}
	}
	return ImageRef{kind: ImageLocalPath, value: raw}
}

// rewriteDriveShareURL converts a Google Drive share link into its
// direct-download form so adapters that need file bytes can fetch them.
func rewriteDriveShareURL(raw string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{driveFilePattern, driveOpenPattern} {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return "https://drive.google.com/uc?export=download&id=" + m[1], true
		}
	}
	return "", false
}
