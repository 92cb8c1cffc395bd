// Package blog publishes events as posts on a content-management blog.
// Posts are created as drafts and go through the review cycle before
// they are published.
package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
)

// PlatformName identifies this adapter in registries and reports.
const PlatformName = "blog"

const maxTitleLength = 255

// Config holds the construction-time credentials and endpoint for the
// blog CMS.
type Config struct {
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}

// PostPayload is the request shape of a draft create/update call.
type PostPayload struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	FeatureImage string `json:"feature_image,omitempty"`
	// RevisionNote carries the requester's feedback on an update so the
	// CMS keeps it with the draft's revision history.
	RevisionNote string `json:"revision_note,omitempty"`
}

// Post is the response shape of the CMS post endpoints.
type Post struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url"`
}

// API is the CMS surface the adapter drives. The default implementation
// talks HTTP; tests inject fakes.
type API interface {
	CreateDraft(ctx context.Context, p PostPayload) (*Post, error)
	UpdateDraft(ctx context.Context, id string, p PostPayload) (*Post, error)
	PublishDraft(ctx context.Context, id string) (*Post, error)
}

// Adapter implements platform.ReviewAdapter for the blog CMS.
type Adapter struct {
	api    API
	logger logger.Logger
}

// New creates a blog adapter with the default HTTP-backed API.
func New(cfg *Config, log logger.Logger) (*Adapter, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("blog base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("blog API key is required")
	}
	return NewWithAPI(newHTTPAPI(cfg), log), nil
}

// NewWithAPI creates a blog adapter over a custom API implementation.
func NewWithAPI(api API, log logger.Logger) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{api: api, logger: log}
}

// Name implements platform.Adapter.
func (a *Adapter) Name() string { return PlatformName }

// Capabilities implements platform.Adapter.
func (a *Adapter) Capabilities() platform.Capabilities {
	return platform.Capabilities{
		Name:           PlatformName,
		SupportsReview: true,
		MaxTitleLength: maxTitleLength,
		UsesNetwork:    true,
	}
}

// Validate implements platform.Adapter. The blog accepts undated and
// location-free events; only the title limit applies here.
func (a *Adapter) Validate(ev *event.Event) error {
	if len(ev.Title()) > maxTitleLength {
		return errors.Validation("title",
			fmt.Sprintf("title exceeds %d characters", maxTitleLength)).
			WithPlatform(PlatformName)
	}
	return nil
}

// Create implements platform.Adapter: it creates a draft post and
// reports its handle for the review cycle.
func (a *Adapter) Create(ctx context.Context, ev *event.Event) (*platform.Result, error) {
	post, err := a.api.CreateDraft(ctx, a.payload(ev, ""))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	a.logger.Debug("draft post created", "post", post.ID)
	return &platform.Result{
		Ref:         post.ID,
		URL:         post.PreviewURL,
		DraftHandle: post.ID,
	}, nil
}

// Update implements platform.Adapter: it rewrites the draft, keeping
// the requester feedback as a revision note.
func (a *Adapter) Update(ctx context.Context, ref string, ev *event.Event, feedback string) (*platform.Result, error) {
	post, err := a.api.UpdateDraft(ctx, ref, a.payload(ev, feedback))
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	a.logger.Debug("draft post updated", "post", post.ID)
	return &platform.Result{
		Ref:         post.ID,
		URL:         post.PreviewURL,
		DraftHandle: post.ID,
	}, nil
}

// Publish implements platform.ReviewAdapter: it takes the approved
// draft live.
func (a *Adapter) Publish(ctx context.Context, draftHandle string) (*platform.Result, error) {
	post, err := a.api.PublishDraft(ctx, draftHandle)
	if err != nil {
		return nil, errors.AsPublishError(err).WithPlatform(PlatformName)
	}
	a.logger.Info("post published", "post", post.ID, "url", post.URL)
	return &platform.Result{Ref: post.ID, URL: post.URL}, nil
}

// payload derives the post body from the canonical event. Field
// rendering stays plain; rich formatting belongs to the CMS theme.
func (a *Adapter) payload(ev *event.Event, feedback string) PostPayload {
	var b strings.Builder
	if ev.Description() != "" {
		b.WriteString(ev.Description())
		b.WriteString("\n\n")
	}
	if !ev.Start().IsZero() {
		b.WriteString("When: " + formatSpan(ev.Start(), ev.End()) + "\n")
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

	p := PostPayload{
		Title:        ev.Title(),
		Body:         strings.TrimRight(b.String(), "\n"),
		RevisionNote: feedback,
	}
	if ev.Image().Kind() == event.ImageRemoteURL {
		p.FeatureImage = ev.Image().Value()
	}
	return p
}

func formatSpan(start, end event.When) string {
	if end.IsZero() {
		return start.String()
	}
	return start.String() + " to " + end.String()
}
