package embed

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// providerLabels is checked in order; the first label present in the
// registrable domain wins.
var providerLabels = []struct {
	label    string
	provider Provider
}{
	{"vimeo", Vimeo},
	{"youtu", YouTube},
	{"youtube", YouTube},
	{"dailymotion", Dailymotion},
	{"wistia", Wistia},
	{"bbc", BBC},
}

var reIPv4 = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// Classify reports which provider hosts the video at rawURL. URLs without a
// host, including scheme-less inputs such as "youtube.com/watch?v=x", are Unknown.
func Classify(rawURL string) Provider {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Unknown
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Unknown
	}

	domain := host
	if !isIPv4(host) {
		domain = registrableDomain(host)
	}

	labels := strings.Split(domain, ".")
	for _, candidate := range providerLabels {
		for _, label := range labels {
			if label == candidate.label {
				return candidate.provider
			}
		}
	}
	return Unknown
}

func isIPv4(host string) bool {
	m := reIPv4.FindStringSubmatch(host)
	if m == nil {
		return false
	}
	for _, octet := range m[1:] {
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// registrableDomain reduces a host (or a URL string) to a guess at its
// registrable domain: "www.bbc.co.uk" -> "bbc.co.uk", "numed.wistia.com" ->
// "wistia.com". Any final label of two characters is treated as a country-code
// TLD with a second-level label in front of it, so multi-label public suffixes
// outside that shape are mis-reduced. Callers depend on this exact behaviour.
func registrableDomain(s string) string {
	segments := strings.Split(s, "/")
	host := segments[0]
	if (host == "http:" || host == "https:") && len(segments) > 2 {
		host = segments[2]
	}

	labels := strings.Split(host, ".")
	k := len(labels) - 3
	at := func(i int) string {
		if i < 0 || i >= len(labels) {
			return ""
		}
		return labels[i]
	}

	switch tld := at(k + 2); len(tld) {
	case 2:
		return at(k) + "." + at(k+1) + "." + tld
	case 0:
		return at(k) + "." + at(k+1)
	default:
		return at(k+1) + "." + tld
	}
}
