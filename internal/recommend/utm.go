package recommend

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultUTMSource is used when TagURL is given an empty source.
const DefaultUTMSource = "quiz-ia"

// ErrInvalidURL is returned by TagURL for malformed or relative URLs.
var ErrInvalidURL = errors.New("invalid product url")

type queryParam struct {
	key, value string
}

// TagURL appends the recommendation tracking parameters to rawURL. Existing
// utm_source, utm_medium, utm_campaign and utm_content parameters are replaced;
// every other parameter is kept byte for byte in its original position.
func TagURL(rawURL, source string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, rawURL)
	}
	if source == "" {
		source = DefaultUTMSource
	}

	params := []queryParam{
		{"utm_source", source},
		{"utm_medium", "recommendation"},
		{"utm_campaign", "quiz-recommendation"},
		{"utm_content", "cta-button"},
	}

	var pairs []string
	if u.RawQuery != "" {
		for _, pair := range strings.Split(u.RawQuery, "&") {
			if pair == "" || isTrackingKey(pair, params) {
				continue
			}
			pairs = append(pairs, pair)
		}
	}
	for _, p := range params {
		pairs = append(pairs, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	return u.String(), nil
}

func isTrackingKey(pair string, params []queryParam) bool {
	key, _, _ := strings.Cut(pair, "=")
	key, err := url.QueryUnescape(key)
	if err != nil {
		return false
	}
	for _, p := range params {
		if key == p.key {
			return true
		}
	}
	return false
}
