package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// IndicatorScore is the outcome of a single sustainability indicator.
// Score nil means the indicator found no usable evidence; that is not the
// same as 0, which is an explicitly unfavorable finding.
type IndicatorScore struct {
	Score    *int   `json:"score"`
	Verdict  string `json:"verdict"`
	Evidence string `json:"evidence"`
}

func scorePtr(v int) *int { return &v }

// band maps a total score to its qualitative rating.
func band(score *int) string {
	if score == nil {
		return "unknown"
	}
	switch {
	case *score >= 70:
		return "sustainable"
	case *score >= 40:
		return "partially sustainable"
	default:
		return "not sustainable"
	}
}

// weightedTotal computes the weighted mean over indicators that produced
// a score. Absent indicators and non-positive weights are excluded and
// the remaining weights renormalized, so missing evidence never drags the
// total down.
func weightedTotal(components map[string]IndicatorScore, weights Weights) *int {
	var totalWeight float64
	type usable struct {
		score  int
		weight float64
	}
	var parts []usable

	for key, component := range components {
		w := weights[key]
		if component.Score == nil || w <= 0 {
			continue
		}
		parts = append(parts, usable{*component.Score, w})
		totalWeight += w
	}
	if len(parts) == 0 || totalWeight <= 0 {
		return nil
	}

	var acc float64
	for _, p := range parts {
		acc += float64(p.score) * (p.weight / totalWeight)
	}
	return scorePtr(int(math.Round(acc)))
}

// evidenceBlock renders one titled group of findings as
// "Title:\nline\nline".
func evidenceBlock(title string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return title + ":\n" + strings.Join(lines, "\n")
}

// joinEvidence combines evidence blocks, dropping empty ones.
func joinEvidence(blocks ...string) string {
	var kept []string
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}

// sortedUnique trims, deduplicates and sorts string findings for stable
// evidence output.
func sortedUnique(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func countNote(valid, total int) string {
	return fmt.Sprintf("Rating based on %d of %d criteria (FAIR excluded).", valid, total)
}
