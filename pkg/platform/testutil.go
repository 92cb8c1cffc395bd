package platform

import (
	"context"
	"sync"

	"github.com/kart-io/eventcast/pkg/event"
)

// FakeAdapter is a scriptable Adapter for tests. Every call is counted
// so tests can assert, for example, that a failed validation never
// reached Create.
type FakeAdapter struct {
	AdapterName string
	Caps        Capabilities

	ValidateErr error
	CreateRes   *Result
	CreateErr   error
	UpdateRes   *Result
	UpdateErr   error

	mu            sync.Mutex
	validateCalls int
	createCalls   int
	updateCalls   int
}

// NewFakeAdapter returns a fake that succeeds on every call.
func NewFakeAdapter(name string) *FakeAdapter {
	return &FakeAdapter{
		AdapterName: name,
		Caps:        Capabilities{Name: name},
		CreateRes:   &Result{Ref: name + "-ref-1", URL: "https://" + name + ".example.com/1"},
		UpdateRes:   &Result{Ref: name + "-ref-1", URL: "https://" + name + ".example.com/1"},
	}
}

// Name implements Adapter.
func (f *FakeAdapter) Name() string { return f.AdapterName }

// Capabilities implements Adapter.
func (f *FakeAdapter) Capabilities() Capabilities { return f.Caps }

// Validate implements Adapter.
func (f *FakeAdapter) Validate(*event.Event) error {
	f.mu.Lock()
	f.validateCalls++
	f.mu.Unlock()
	return f.ValidateErr
}

// Create implements Adapter.
func (f *FakeAdapter) Create(context.Context, *event.Event) (*Result, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return f.CreateRes, nil
}

// Update implements Adapter.
func (f *FakeAdapter) Update(context.Context, string, *event.Event, string) (*Result, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return f.UpdateRes, nil
}

// ValidateCalls returns how many times Validate ran.
func (f *FakeAdapter) ValidateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateCalls
}

// CreateCalls returns how many times Create ran.
func (f *FakeAdapter) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

// UpdateCalls returns how many times Update ran.
func (f *FakeAdapter) UpdateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls
}

// FakeReviewAdapter extends FakeAdapter with a scriptable Publish, for
// exercising review flows.
type FakeReviewAdapter struct {
	FakeAdapter

	PublishRes *Result
	PublishErr error

	pmu          sync.Mutex
	publishCalls int
}

// NewFakeReviewAdapter returns a review-capable fake that succeeds on
// every call.
func NewFakeReviewAdapter(name string) *FakeReviewAdapter {
	f := &FakeReviewAdapter{
		FakeAdapter: FakeAdapter{
			AdapterName: name,
			Caps:        Capabilities{Name: name, SupportsReview: true},
			CreateRes: &Result{
				Ref:         name + "-ref-1",
				URL:         "https://" + name + ".example.com/1",
				DraftHandle: name + "-draft-1",
			},
			UpdateRes: &Result{
				Ref:         name + "-ref-1",
				URL:         "https://" + name + ".example.com/1",
				DraftHandle: name + "-draft-1",
			},
		},
		PublishRes: &Result{Ref: name + "-live-1", URL: "https://" + name + ".example.com/live/1"},
	}
	return f
}

// Publish implements ReviewAdapter.
func (f *FakeReviewAdapter) Publish(context.Context, string) (*Result, error) {
	f.pmu.Lock()
	f.publishCalls++
	f.pmu.Unlock()
	if f.PublishErr != nil {
		return nil, f.PublishErr
	}
	return f.PublishRes, nil
}

// PublishCalls returns how many times Publish ran.
func (f *FakeReviewAdapter) PublishCalls() int {
	f.pmu.Lock()
	defer f.pmu.Unlock()
	return f.publishCalls
}
