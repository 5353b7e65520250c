package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/util"
	"go.uber.org/zap"
)

type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l Location) String() string {
	switch {
	case l.City != "" && l.Country != "":
		return fmt.Sprintf("%s, %s", l.City, l.Country)
	case l.Country != "":
		return l.Country
	case l.City != "":
		return l.City
	default:
		return ""
	}
}

type Lookup interface {
	Lookup(ctx context.Context, ip string) (*Location, error)
}

// Client resolves an IP to an approximate location through an ip-api style
// JSON endpoint. Lookups are best-effort audit enrichment: callers treat any
// failure as "unknown" and move on.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(cfg config.GeoConfig, logger *zap.SugaredLogger) *Client {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Client{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

func (c *Client) Lookup(ctx context.Context, ip string) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, ip), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation lookup returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	return &loc, nil
}
