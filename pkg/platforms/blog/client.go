package blog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kart-io/eventcast/pkg/platforms/common"
)

// httpAPI is the default API implementation against the CMS admin API.
type httpAPI struct {
	baseURL string
	client  *common.Client
}

func newHTTPAPI(cfg *Config) *httpAPI {
	return &httpAPI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: common.NewClient(PlatformName, cfg.Timeout, map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
		}),
	}
}

func (h *httpAPI) CreateDraft(ctx context.Context, p PostPayload) (*Post, error) {
	var post Post
	url := fmt.Sprintf("%s/api/posts", h.baseURL)
	if err := h.client.DoJSON(ctx, http.MethodPost, url, p, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (h *httpAPI) UpdateDraft(ctx context.Context, id string, p PostPayload) (*Post, error) {
	var post Post
	url := fmt.Sprintf("%s/api/posts/%s", h.baseURL, id)
	if err := h.client.DoJSON(ctx, http.MethodPut, url, p, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (h *httpAPI) PublishDraft(ctx context.Context, id string) (*Post, error) {
	var post Post
	url := fmt.Sprintf("%s/api/posts/%s/publish", h.baseURL, id)
	if err := h.client.DoJSON(ctx, http.MethodPost, url, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
