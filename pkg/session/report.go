package session

import (
	"time"

	"github.com/kart-io/eventcast/pkg/errors"
)

// Outcome is the final state of one platform's publish job.
type Outcome struct {
	Platform string    `json:"platform"`
	Status   JobStatus `json:"status"`
	// Ref and URL identify the live artifact; present iff Succeeded.
	Ref string `json:"ref,omitempty"`
	URL string `json:"url,omitempty"`
	// Note carries human-directed adapter output (the manual channel's
	// copy-paste block).
	Note string `json:"note,omitempty"`
	// Reason is the human-readable failure reason; present iff Failed.
	Reason string `json:"reason,omitempty"`
	// ErrorCode classifies the failure; present iff Failed.
	ErrorCode errors.Code `json:"error_code,omitempty"`
}

// Report is the consolidated result of one publish session: exactly one
// outcome per selected platform, each in a terminal status. A session
// always produces a report, even when every job failed.
type Report struct {
	SessionID  string    `json:"session_id"`
	Strategy   string    `json:"strategy"`
	Outcomes   []Outcome `json:"outcomes"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Outcome returns the outcome for a platform name.
func (r *Report) Outcome(platform string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Platform == platform {
			return o, true
		}
	}
	return Outcome{}, false
}

// Succeeded returns how many jobs succeeded.
func (r *Report) Succeeded() int { return r.count(StatusSucceeded) }

// Failed returns how many jobs failed.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns how many jobs were skipped.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

func (r *Report) count(status JobStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func outcomeOf(j *Job) Outcome {
	o := Outcome{
		Platform: j.Platform(),
		Status:   j.Status(),
	}
	if res := j.Result(); res != nil {
		o.Ref = res.Ref
		o.URL = res.URL
		o.Note = res.Note
	}
	if err := j.Err(); err != nil {
		o.Reason = err.Reason()
		o.ErrorCode = err.Code
	}
	return o
}
