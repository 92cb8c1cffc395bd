// Package report persists session reports so publish outcomes can be
// looked up after the session that produced them is gone.
package report

import (
	"context"
	"errors"

	"github.com/kart-io/eventcast/pkg/session"
)

// ErrNotFound is returned when no report exists for a session id.
var ErrNotFound = errors.New("report not found")

// Store persists publish reports keyed by session id. Saving a report
// for an existing id overwrites the previous one.
type Store interface {
	Save(ctx context.Context, r *session.Report) error
	Get(ctx context.Context, sessionID string) (*session.Report, error)
}
