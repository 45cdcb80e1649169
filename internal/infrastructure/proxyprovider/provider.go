package proxyprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/leadrun/fulfillment-service/internal/config"
	"github.com/leadrun/fulfillment-service/internal/domain"
)

// countryISOCodes maps lead country names to the provider's region codes.
var countryISOCodes = map[string]string{
	"united states":  "US",
	"united kingdom": "GB",
	"canada":         "CA",
	"australia":      "AU",
	"germany":        "DE",
	"france":         "FR",
	"spain":          "ES",
	"italy":          "IT",
	"netherlands":    "NL",
	"sweden":         "SE",
	"norway":         "NO",
	"denmark":        "DK",
	"finland":        "FI",
	"switzerland":    "CH",
	"austria":        "AT",
	"belgium":        "BE",
	"ireland":        "IE",
	"poland":         "PL",
	"portugal":       "PT",
	"russia":         "RU",
	"belarus":        "BY",
	"latvia":         "LV",
	"estonia":        "EE",
	"lithuania":      "LT",
	"bulgaria":       "BG",
	"moldova":        "MD",
	"armenia":        "AM",
}

// callingCodeISO resolves a region from the phone calling code when the
// country name is unknown to the provider.
var callingCodeISO = map[string]string{
	"1": "US", "7": "RU", "44": "GB", "49": "DE", "33": "FR",
	"34": "ES", "39": "IT", "41": "CH", "43": "AT", "45": "DK",
	"46": "SE", "47": "NO", "48": "PL",
}

const defaultRegion = "US"

// SessionProvider builds session-scoped egress credentials for a rotating
// residential proxy endpoint and probes them for connectivity.
type SessionProvider struct {
	cfg       config.ProxyProvider
	client    *http.Client
	newSessID func() string
}

func NewSessionProvider(cfg config.ProxyProvider) *SessionProvider {
	gen, err := nanoid.CustomASCII("abcdefghijklmnopqrstuvwxyz0123456789", 8)
	if err != nil {
		panic(err)
	}
	return &SessionProvider{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.ProbeTimeout},
		newSessID: gen,
	}
}

// GenerateSession derives a per-submission credential set. The username
// encodes the region and a fresh session id, which makes the provider pin
// one exit IP for the session's lifetime.
func (p *SessionProvider) GenerateSession(country, countryCode string) (*domain.ProxySession, error) {
	if p.cfg.Host == "" || p.cfg.UsernameBase == "" {
		return nil, fmt.Errorf("proxy provider is not configured")
	}
	sessionID := p.newSessID()
	username := fmt.Sprintf("%s-region-%s-sessid-%s", p.cfg.UsernameBase, p.regionFor(country, countryCode), sessionID)

	return &domain.ProxySession{
		Config: domain.ProxyConfig{
			Server:   p.cfg.Server,
			Username: username,
			Password: p.cfg.Password,
			Host:     p.cfg.Host,
			Port:     p.cfg.Port,
		},
		SessionID: sessionID,
	}, nil
}

func (p *SessionProvider) regionFor(country, countryCode string) string {
	if iso, ok := countryISOCodes[strings.ToLower(strings.TrimSpace(country))]; ok {
		return iso
	}
	if iso, ok := callingCodeISO[strings.TrimPrefix(countryCode, "+")]; ok {
		return iso
	}
	return defaultRegion
}

// Probe issues one request through the proxy and reports the observed exit
// IP and latency.
func (p *SessionProvider) Probe(ctx context.Context, cfg domain.ProxyConfig) *domain.ProbeResult {
	proxyURL := &url.URL{
		Scheme: "http",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
	}
	client := &http.Client{
		Timeout:   p.client.Timeout,
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.ProbeURL, nil)
	if err != nil {
		return &domain.ProbeResult{Error: err.Error()}
	}

	started := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return &domain.ProbeResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	elapsed := time.Since(started)
	if resp.StatusCode != http.StatusOK {
		return &domain.ProbeResult{
			ResponseTime: elapsed.Milliseconds(),
			Error:        fmt.Sprintf("probe returned status %d", resp.StatusCode),
		}
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &domain.ProbeResult{ResponseTime: elapsed.Milliseconds(), Error: err.Error()}
	}

	return &domain.ProbeResult{
		Success:      true,
		IP:           body.IP,
		ResponseTime: elapsed.Milliseconds(),
	}
}
