package normalize

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"edanalyzer/internal/pkg/models"
)

// LinkState is the classification of a checked link. There are exactly two
// states: anything that is not a clean 2xx/3xx response counts as failed.
type LinkState int

const (
	StateOK LinkState = iota
	StateFail
)

func (s LinkState) String() string {
	if s == StateOK {
		return "ok"
	}
	return "fail"
}

// ClassifyStatus maps a raw status to ok or fail. A link is ok iff its
// status parses as an integer in [200,400). Unparsable statuses, transport
// errors, empty values and codes outside [100,600) are failures. The bias
// is deliberate: an unknown status is never counted as working.
func ClassifyStatus(status models.StatusCode) LinkState {
	code, err := strconv.Atoi(strings.TrimSpace(string(status)))
	if err != nil {
		return StateFail
	}
	if code >= 200 && code < 400 {
		return StateOK
	}
	return StateFail
}

// StatusOK is a convenience shorthand for ClassifyStatus == StateOK.
func StatusOK(status models.StatusCode) bool {
	return ClassifyStatus(status) == StateOK
}

// DedupBy keeps the first occurrence per key, preserving first-seen order.
// Items whose key is empty (for string keys) are kept untouched only when
// the caller's key function says so; this function does not filter.
func DedupBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// DedupStringsFold deduplicates case-insensitively, keeping the first
// spelling seen and the first-seen order.
func DedupStringsFold(values []string) []string {
	return DedupBy(values, strings.ToLower)
}

// FlattenText walks an arbitrarily nested structure of maps, slices and
// scalars and joins every scalar into one lowercase search string. Map keys
// are visited in sorted order so the output is deterministic. Keys named in
// skipKeys (and their whole subtree) are left out; infrastructure payloads
// carry raw HTML and reference blobs that would only pollute keyword search.
func FlattenText(v any, skipKeys ...string) string {
	skip := make(map[string]struct{}, len(skipKeys))
	for _, k := range skipKeys {
		skip[k] = struct{}{}
	}
	var parts []string
	flattenInto(v, skip, &parts)
	return strings.Join(parts, " | ")
}

func flattenInto(v any, skip map[string]struct{}, parts *[]string) {
	switch t := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			if _, drop := skip[k]; drop {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenInto(t[k], skip, parts)
		}
	case models.InfraScan:
		flattenInto(map[string]any(t), skip, parts)
	case []any:
		for _, e := range t {
			flattenInto(e, skip, parts)
		}
	case []string:
		for _, e := range t {
			flattenInto(e, skip, parts)
		}
	case string:
		if s := strings.ToLower(strings.TrimSpace(t)); s != "" {
			*parts = append(*parts, s)
		}
	default:
		if s := strings.ToLower(strings.TrimSpace(fmt.Sprint(t))); s != "" {
			*parts = append(*parts, s)
		}
	}
}

// Present reports whether a string carries content after trimming.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// AnyPresent reports whether at least one entry is present.
func AnyPresent(values []string) bool {
	for _, v := range values {
		if Present(v) {
			return true
		}
	}
	return false
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName lowercases a technology name and collapses punctuation so
// token comparison is stable ("Hugo v0.1" -> "hugo v0 1").
func NormalizeName(name string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(name), " "))
}

// MatchTechName compares a fingerprinted technology name against a
// reference list by token sets: equality or superset counts, so "Jekyll
// Admin" matches "jekyll" but "jekyllish" does not. Returns the matched
// reference entry.
func MatchTechName(techName string, references []string) (string, bool) {
	techTokens := tokenSet(NormalizeName(techName))
	if len(techTokens) == 0 {
		return "", false
	}
	for _, ref := range references {
		refTokens := tokenSet(NormalizeName(ref))
		if len(refTokens) == 0 {
			continue
		}
		if isSuperset(techTokens, refTokens) {
			return ref, true
		}
	}
	return "", false
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		out[tok] = struct{}{}
	}
	return out
}

func isSuperset(sup, sub map[string]struct{}) bool {
	for tok := range sub {
		if _, ok := sup[tok]; !ok {
			return false
		}
	}
	return true
}

// StripQueryFragment cuts query string and fragment off a URL, the dedup
// form used for XML entries and download items.
func StripQueryFragment(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	return u
}

// CanonicalURL normalizes a URL for use as a dedup or cache key: fragment
// dropped, scheme and host lowercased. Unparsable input is returned
// trimmed, so the caller always gets a usable key.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	parsed.Fragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}
