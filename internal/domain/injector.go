package domain

import "context"

// InjectionPayload is the structured input handed to the external submission
// task, serialized as a single JSON argument.
type InjectionPayload struct {
	LeadID      string       `json:"leadId"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Country     string       `json:"country"`
	CountryCode string       `json:"country_code"`
	Proxy       *ProxyConfig `json:"proxy,omitempty"`
	Fingerprint *Fingerprint `json:"fingerprint,omitempty"`
	TargetURL   string       `json:"targetUrl"`
}

// InjectionResult interprets the task's exit status and output markers.
// FinalDomain is set when a FINAL_DOMAIN: line was emitted on success;
// ProxyExpired when the task reported mid-run proxy expiry.
type InjectionResult struct {
	Success      bool
	FinalDomain  string
	ProxyExpired bool
	Output       string
	ErrOutput    string
}

// InjectorClient runs one external form-submission task per lead. The task is
// opaque: a spawn error or timeout surfaces as error, a clean non-zero exit as
// Success=false.
type InjectorClient interface {
	Run(ctx context.Context, payload *InjectionPayload) (*InjectionResult, error)
}

// ProxySession is a session-scoped credential set from the proxy provider.
type ProxySession struct {
	Config    ProxyConfig
	SessionID string
}

// ProbeResult reports a proxy connectivity check.
type ProbeResult struct {
	Success      bool
	IP           string
	ResponseTime int64 // milliseconds
	Error        string
}

// ProxyProvider hands out per-country egress credentials and probes them.
type ProxyProvider interface {
	GenerateSession(country, countryCode string) (*ProxySession, error)
	Probe(ctx context.Context, config ProxyConfig) *ProbeResult
}
