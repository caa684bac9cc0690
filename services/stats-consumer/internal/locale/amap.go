package locale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAmapURL     = "https://restapi.amap.com/v3/ip"
	defaultHTTPTimeout = 500 * time.Millisecond

	amapOKInfoCode = "10000"
	// Amap answers "[]" for fields it cannot determine.
	amapEmptyField = "[]"
)

// AmapResolver queries the Amap IP-location HTTP API. The API only covers
// one country, so Country is fixed for successful lookups.
type AmapResolver struct {
	key     string
	baseURL string
	client  *http.Client
}

var _ Resolver = (*AmapResolver)(nil)

// NewAmapResolver creates a resolver with the given API key. baseURL may be
// empty to use the public endpoint; tests point it at a local server.
func NewAmapResolver(key, baseURL string, timeout time.Duration) *AmapResolver {
	if baseURL == "" {
		baseURL = defaultAmapURL
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &AmapResolver{
		key:     key,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type amapResponse struct {
	InfoCode string `json:"infocode"`
	Province string `json:"province"`
	City     string `json:"city"`
	Adcode   string `json:"adcode"`
}

func (r *AmapResolver) Resolve(ctx context.Context, ip string) (Locale, error) {
	q := url.Values{}
	q.Set("key", r.key)
	q.Set("ip", ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Unknown, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Unknown, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown, fmt.Errorf("amap: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Unknown, err
	}

	var parsed amapResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Unknown, fmt.Errorf("amap: malformed response: %w", err)
	}
	if parsed.InfoCode != amapOKInfoCode {
		return Unknown, fmt.Errorf("amap: infocode %s", parsed.InfoCode)
	}
	if parsed.Province == "" || parsed.Province == amapEmptyField {
		return Unknown, nil
	}

	loc := Locale{
		Country:  "CN",
		Province: parsed.Province,
		City:     valueOrUnknown(parsed.City),
		Adcode:   valueOrUnknown(parsed.Adcode),
	}
	return loc, nil
}

func valueOrUnknown(v string) string {
	if v == "" || v == amapEmptyField {
		return UnknownValue
	}
	return v
}
