package core

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ResolveDomain maps a URL to its registrable domain ("domain.suffix",
// subdomains ignored). When the host cannot be parsed or has no usable
// public suffix, it falls back to the lowercased raw URL and reports
// resolved=false; the fallback value is unlikely to match any whitelist
// entry, so unresolvable URLs stay subject to the remaining signals.
func ResolveDomain(rawURL string) (domain string, resolved bool) {
	if rawURL == "" {
		return "", false
	}

	host := hostOf(rawURL)
	if host != "" {
		if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && d != "" {
			return strings.ToLower(d), true
		}
	}

	return strings.ToLower(rawURL), false
}

// hostOf extracts the hostname, tolerating scheme-less www URLs.
func hostOf(rawURL string) string {
	u := rawURL
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(parsed.Hostname(), ".")
}
