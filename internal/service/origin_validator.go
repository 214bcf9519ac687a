package service

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrMissingOrigin is returned when a public request declares neither
	// an Origin nor a Referer. Provenance checks fail closed.
	ErrMissingOrigin = errors.New("request origin is required")

	// ErrOriginMismatch is returned when the declared origin does not
	// belong to the registered website domain.
	ErrOriginMismatch = errors.New("request origin does not match the registered domain")
)

// OriginValidator checks that a public form request comes from the domain
// registered for the website it targets.
type OriginValidator struct {
	developmentHosts map[string]bool
}

func NewOriginValidator() *OriginValidator {
	return &OriginValidator{
		developmentHosts: map[string]bool{
			"localhost": true,
			"127.0.0.1": true,
			"::1":       true,
		},
	}
}

// Validate compares the declared Origin (or Referer fallback) against the
// registered website domain. The declared value is parsed as a URL and its
// hostname must equal the registered domain or be a subdomain of it, so
// "forms.acme.com" passes for "acme.com" while "notacme.com" does not.
// Loopback hosts always pass to keep local development working.
func (v *OriginValidator) Validate(originOrReferer, websiteDomain string) error {
	declared := strings.TrimSpace(originOrReferer)
	if declared == "" {
		return ErrMissingOrigin
	}

	host := hostnameOf(declared)
	if host == "" {
		return ErrOriginMismatch
	}
	if v.developmentHosts[host] {
		return nil
	}

	registered := strings.ToLower(strings.TrimSpace(websiteDomain))
	if registered == "" {
		return ErrOriginMismatch
	}

	if host == registered || strings.HasSuffix(host, "."+registered) {
		return nil
	}
	return ErrOriginMismatch
}

// hostnameOf extracts the lowercase hostname from an Origin or Referer
// value, tolerating bare hosts without a scheme.
func hostnameOf(declared string) string {
	parsed, err := url.Parse(declared)
	if err == nil && parsed.Hostname() != "" {
		return strings.ToLower(parsed.Hostname())
	}

	parsed, err = url.Parse("https://" + declared)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
