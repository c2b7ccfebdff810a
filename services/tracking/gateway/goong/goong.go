package goong

import (
	"net/http"
	"time"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// Client talks to the Goong routing and geocoding APIs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Goong API client from configuration.
func NewClient(cfg models.GoongConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
