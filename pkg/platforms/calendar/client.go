package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kart-io/eventcast/pkg/platforms/common"
)

// importRequest wraps an ICS payload for the calendar import endpoint.
type importRequest struct {
	ICS string `json:"ics"`
}

// httpAPI is the default API implementation against the calendar
// service.
type httpAPI struct {
	baseURL string
	client  *common.Client
}

func newHTTPAPI(cfg *Config) *httpAPI {
	return &httpAPI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: common.NewClient(PlatformName, cfg.Timeout, map[string]string{
			"Authorization": "Bearer " + cfg.Token,
		}),
	}
}

func (h *httpAPI) Import(ctx context.Context, calendarID, icsPayload string) (*Entry, error) {
	var entry Entry
	url := fmt.Sprintf("%s/calendars/%s/events/import", h.baseURL, calendarID)
	if err := h.client.DoJSON(ctx, http.MethodPost, url, importRequest{ICS: icsPayload}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (h *httpAPI) Update(ctx context.Context, calendarID, entryID, icsPayload string) (*Entry, error) {
	var entry Entry
	url := fmt.Sprintf("%s/calendars/%s/events/%s", h.baseURL, calendarID, entryID)
	if err := h.client.DoJSON(ctx, http.MethodPut, url, importRequest{ICS: icsPayload}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
