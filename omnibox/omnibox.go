// Package omnibox classifies address-bar input as a URL or a search query.
package omnibox

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind tags a classified input.
type Kind int

const (
	// KindSearch marks free text destined for the search provider.
	KindSearch Kind = iota
	// KindAddress marks input to be treated as a location.
	KindAddress
)

// Input is the result of classifying raw address-bar text.
type Input struct {
	Kind      Kind
	Value     string // Trimmed input text
	HasScheme bool   // Address already carries an explicit scheme
}

// IsSearch reports whether the input should go to the search provider.
func (in Input) IsSearch() bool { return in.Kind == KindSearch }

var (
	opaqueSchemeRe  = regexp.MustCompile(`(?i)^(about:|data:|blob:)`)
	genericSchemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	whitespaceRe    = regexp.MustCompile(`\s`)
	localhostRe     = regexp.MustCompile(`(?i)^localhost(:\d+)?(/|$)`)
	ipv4Re          = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}(:\d+)?(/|$)`)
	secureSchemeRe  = regexp.MustCompile(`(?i)^https://`)
)

// rule is one step of the classification policy. Rules are evaluated in
// order and the first match wins, which keeps the policy auditable.
type rule struct {
	match func(s string) bool
	tag   func(s string) Input
}

var rules = []rule{
	// Explicit opaque scheme: about:, data:, blob:. Not network resources.
	{
		match: opaqueSchemeRe.MatchString,
		tag:   func(s string) Input { return Input{Kind: KindAddress, Value: s, HasScheme: true} },
	},
	// Any other explicit scheme (http://, https://, ftp://, ...).
	{
		match: genericSchemeRe.MatchString,
		tag:   func(s string) Input { return Input{Kind: KindAddress, Value: s, HasScheme: true} },
	},
	// Addresses cannot contain whitespace, so multi-word text is a search.
	{
		match: whitespaceRe.MatchString,
		tag:   func(s string) Input { return Input{Kind: KindSearch, Value: s} },
	},
	// localhost, optionally with port and path.
	{
		match: localhostRe.MatchString,
		tag:   func(s string) Input { return Input{Kind: KindAddress, Value: s} },
	},
	// IPv4 dotted quad, optionally with port and path.
	{
		match: ipv4Re.MatchString,
		tag:   func(s string) Input { return Input{Kind: KindAddress, Value: s} },
	},
	// Domain-like token: contains a dot (example.com, a.b, news.cn/path).
	// Deliberately loose; a bad guess just ends in an unreachable toast.
	{
		match: func(s string) bool { return strings.Contains(s, ".") },
		tag:   func(s string) Input { return Input{Kind: KindAddress, Value: s} },
	},
}

// Classify decides whether raw input is an address or a search query.
// Returns ok=false for empty or whitespace-only input, which callers
// must treat as a no-op.
func Classify(raw string) (Input, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Input{}, false
	}

	for _, r := range rules {
		if r.match(s) {
			return r.tag(s), true
		}
	}

	// Nothing address-like: hand it to the search provider.
	return Input{Kind: KindSearch, Value: s}, true
}

// IsOpaque reports whether the value carries an opaque scheme
// (about:, data:, blob:), which is exempt from reachability probing.
func IsOpaque(value string) bool {
	return opaqueSchemeRe.MatchString(value)
}

// IsSecure reports whether the value carries the https scheme.
func IsSecure(value string) bool {
	return secureSchemeRe.MatchString(value)
}

// InsecureVariant substitutes http:// for the leading https://.
func InsecureVariant(value string) string {
	return secureSchemeRe.ReplaceAllString(value, "http://")
}

// SearchURL builds a search-provider URL by percent-encoding the query
// into the template's %s slot.
func SearchURL(template, query string) string {
	return strings.Replace(template, "%s", url.QueryEscape(strings.TrimSpace(query)), 1)
}
