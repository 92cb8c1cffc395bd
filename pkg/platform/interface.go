// Package platform defines the adapter contract the orchestrator fans
// out through, and the registry that manages adapter instances.
package platform

import (
	"context"

	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
)

// Adapter translates a canonical event into one platform's publish
// semantics. Adapters absorb all vendor-specific request and response
// shapes internally; the orchestrator only ever sees Result values and
// coded errors.
type Adapter interface {
	// Name identifies the platform, unique within a registry.
	Name() string

	// Capabilities describes what the platform supports and requires.
	Capabilities() Capabilities

	// Validate runs the platform-specific required-field check. It is
	// called before any network I/O and returns a coded validation
	// error naming the offending field.
	Validate(ev *event.Event) error

	// Create performs the platform create call. For review-capable
	// platforms the created artifact is a draft and the Result carries
	// its DraftHandle.
	Create(ctx context.Context, ev *event.Event) (*Result, error)

	// Update modifies a previously created artifact. It is only called
	// while a review cycle applies requester feedback; the feedback
	// string is the revision instruction, the event stays immutable.
	Update(ctx context.Context, ref string, ev *event.Event, feedback string) (*Result, error)
}

// ReviewAdapter is implemented by adapters whose drafts go through a
// preview/revise/approve loop before going live.
type ReviewAdapter interface {
	Adapter

	// Publish takes an approved draft live.
	Publish(ctx context.Context, draftHandle string) (*Result, error)
}

// Capabilities describes platform capabilities and validation rules.
type Capabilities struct {
	Name             string `json:"name"`
	SupportsReview   bool   `json:"supports_review"`
	RequiresEnd      bool   `json:"requires_end"`
	RequiresLocation bool   `json:"requires_location"`
	MaxTitleLength   int    `json:"max_title_length,omitempty"`
	UsesNetwork      bool   `json:"uses_network"`
}

// Result is what a successful adapter call reports back.
type Result struct {
	// Ref is the platform-specific identifier of the created artifact.
	Ref string `json:"ref"`
	// URL is a human-resolvable link to the artifact, when one exists.
	URL string `json:"url,omitempty"`
	// DraftHandle identifies a reviewable draft; set by review-capable
	// adapters on Create and Update.
	DraftHandle string `json:"draft_handle,omitempty"`
	// Note carries human-directed output, such as the copy-paste block
	// produced by the manual channel.
	Note string `json:"note,omitempty"`
}

// Factory constructs an adapter instance.
type Factory func(log logger.Logger) (Adapter, error)
