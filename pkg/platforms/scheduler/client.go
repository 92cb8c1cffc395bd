package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kart-io/eventcast/pkg/platforms/common"
	"github.com/kart-io/eventcast/pkg/utils/ratelimit"
)

// httpAPI is the default API implementation against the community
// scheduler.
type httpAPI struct {
	baseURL string
	client  *common.Client
}

func newHTTPAPI(cfg *Config) *httpAPI {
	return &httpAPI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// Bot endpoints throttle aggressively; pace our side first.
		client: common.NewClient(PlatformName, cfg.Timeout, map[string]string{
			"Authorization": "Bot " + cfg.BotToken,
		}).WithRateLimit(ratelimit.Per(5, time.Second), 5),
	}
}

func (h *httpAPI) CreateEvent(ctx context.Context, communityID string, p EventPayload) (*ScheduledEvent, error) {
	var created ScheduledEvent
	url := fmt.Sprintf("%s/communities/%s/scheduled-events", h.baseURL, communityID)
	if err := h.client.DoJSON(ctx, http.MethodPost, url, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (h *httpAPI) UpdateEvent(ctx context.Context, communityID, eventID string, p EventPayload) (*ScheduledEvent, error) {
	var updated ScheduledEvent
	url := fmt.Sprintf("%s/communities/%s/scheduled-events/%s", h.baseURL, communityID, eventID)
	if err := h.client.DoJSON(ctx, http.MethodPatch, url, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
