package scoring

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// keywordSet scans text for a fixed list of terms in a single pass.
type keywordSet struct {
	matcher *ahocorasick.Matcher
	terms   []string
}

func newKeywordSet(terms []string) *keywordSet {
	patterns := make([][]byte, len(terms))
	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
		patterns[i] = []byte(lowered[i])
	}
	return &keywordSet{
		matcher: ahocorasick.NewMatcher(patterns),
		terms:   lowered,
	}
}

// Matches returns the distinct terms found as substrings of text,
// case-insensitively, in list order.
func (k *keywordSet) Matches(text string) []string {
	if text == "" {
		return nil
	}
	hits := k.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}
	seen := map[int]struct{}{}
	for _, h := range hits {
		seen[h] = struct{}{}
	}
	var out []string
	for i, term := range k.terms {
		if _, ok := seen[i]; ok {
			out = append(out, term)
		}
	}
	return out
}

// Any reports whether any term occurs in text.
func (k *keywordSet) Any(text string) bool {
	if text == "" {
		return false
	}
	return len(k.matcher.Match([]byte(strings.ToLower(text)))) > 0
}

// boundedKeywordSet matches terms only at word boundaries, so "borg" does
// not hit inside "cyborg". The Aho-Corasick pass narrows the candidates,
// the per-term regexps confirm them.
type boundedKeywordSet struct {
	inner    *keywordSet
	patterns map[string]*regexp.Regexp
}

func newBoundedKeywordSet(terms []string) *boundedKeywordSet {
	patterns := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		lowered := strings.ToLower(term)
		patterns[lowered] = regexp.MustCompile(`\b` + regexp.QuoteMeta(lowered) + `\b`)
	}
	return &boundedKeywordSet{
		inner:    newKeywordSet(terms),
		patterns: patterns,
	}
}

func (b *boundedKeywordSet) Matches(text string) []string {
	lowered := strings.ToLower(text)
	var out []string
	for _, candidate := range b.inner.Matches(lowered) {
		if b.patterns[candidate].MatchString(lowered) {
			out = append(out, candidate)
		}
	}
	return out
}

// Shared matchers, built once at startup.
var (
	isolationMatcher    = newBoundedKeywordSet(isolationTerms)
	openSourceMatcher   = newKeywordSet(openSourceKeywords)
	closedSourceMatcher = newKeywordSet(closedSourceKeywords)
	openLicenseMatcher  = newKeywordSet(openLicenseKeywords)
	proprietaryMatcher  = newKeywordSet(proprietaryKeywords)
)

// isOpenLicense classifies a license name. Proprietary patterns win over
// open ones, so mixed statements default to closed.
func isOpenLicense(name string) bool {
	n := strings.TrimSpace(name)
	if n == "" {
		return false
	}
	if proprietaryMatcher.Any(n) {
		return false
	}
	return openLicenseMatcher.Any(n)
}

// anyOpenLicense reports whether any of the values names an open license.
func anyOpenLicense(values []string) bool {
	for _, v := range values {
		if isOpenLicense(v) {
			return true
		}
	}
	return false
}
