package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"edanalyzer/internal/pkg/aggregate"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
)

// CriteriaCount reports how many indicators produced a score out of the
// weighted set.
type CriteriaCount struct {
	Valid int `json:"valid"`
	Total int `json:"total"`
}

// Total is the overall sustainability rating.
type Total struct {
	Score    *int          `json:"score"`
	Band     string        `json:"band"`
	Criteria CriteriaCount `json:"criteria_count"`
	Note     string        `json:"note"`
}

// Outcome bundles all indicator results with the total rating.
type Outcome struct {
	Global map[string]IndicatorScore `json:"global"`
	Total  Total                     `json:"total"`
}

// placeholder fills indicator keys no scorer produced, so consumers can
// rely on the full key set.
var placeholder = IndicatorScore{Score: nil, Verdict: "–", Evidence: "–"}

// safeScore runs one scorer and converts a panic into an error indicator
// instead of killing the whole evaluation.
func safeScore(name string, fn func() IndicatorScore) (out IndicatorScore) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Scorer failed",
				zap.String("indicator", name),
				zap.Any("panic", r))
			metrics.ScorerFailures.WithLabelValues(name).Inc()
			out = IndicatorScore{
				Score:    nil,
				Verdict:  fmt.Sprintf("error in %s", name),
				Evidence: fmt.Sprint(r),
			}
		}
	}()
	return fn()
}

// Compute evaluates every indicator over the site aggregate and derives
// the weighted total. FAIR is reported but excluded from the total; with
// fewer than minCriteria scored indicators no total is produced.
func Compute(r *aggregate.Result, weights Weights, minCriteria int) *Outcome {
	components := map[string]IndicatorScore{
		KeyOpenClosed:    safeScore(KeyOpenClosed, func() IndicatorScore { return scoreOpenClosed(r) }),
		KeyIsolation:     safeScore(KeyIsolation, func() IndicatorScore { return scoreIsolation(r) }),
		KeyStaticization: safeScore(KeyStaticization, func() IndicatorScore { return scoreStaticization(r) }),
		KeyDocs:          safeScore(KeyDocs, func() IndicatorScore { return scoreDocumentation(r) }),
		KeyLinks:         safeScore(KeyLinks, func() IndicatorScore { return scoreLinkFunctionality(r.InternalLinks) }),
		KeyDownloads:     safeScore(KeyDownloads, func() IndicatorScore { return scoreDownloads(r) }),
		KeyTEIXML:        safeScore(KeyTEIXML, func() IndicatorScore { return scoreXMLTEI(r) }),
		KeyMetadata:      safeScore(KeyMetadata, func() IndicatorScore { return scoreStructuredMetadata(r) }),
		KeyNormdata:      safeScore(KeyNormdata, func() IndicatorScore { return scoreNormdata(r) }),
		KeyRepos:         safeScore(KeyRepos, func() IndicatorScore { return scoreRepositories(r) }),
		KeyAPI:           safeScore(KeyAPI, func() IndicatorScore { return scoreAPIPresence(r) }),
		KeyOpenLicense:   safeScore(KeyOpenLicense, func() IndicatorScore { return scoreOpenLicense(r) }),
		KeyPersistentIDs: safeScore(KeyPersistentIDs, func() IndicatorScore { return scorePersistentIDs(r) }),

		// Reported alongside, never weighted into the total.
		KeyFAIROverall: safeScore(KeyFAIROverall, func() IndicatorScore { return scoreFAIROverall(r) }),
	}
	for key, score := range scoreGovernanceSplit(r) {
		components[key] = score
	}

	// FAIR stays out of the weighted set.
	weighted := map[string]IndicatorScore{}
	totalCount := 0
	for key, component := range components {
		if key == KeyFAIROverall {
			continue
		}
		totalCount++
		if component.Score != nil {
			weighted[key] = component
		}
	}
	validCount := len(weighted)

	var total Total
	if validCount < minCriteria {
		total = Total{
			Score:    nil,
			Band:     "no rating (insufficient data)",
			Criteria: CriteriaCount{Valid: validCount, Total: totalCount},
			Note:     fmt.Sprintf("No overall rating: only %d of %d criteria scored.", validCount, totalCount),
		}
	} else {
		score := weightedTotal(weighted, weights)
		total = Total{
			Score:    score,
			Band:     band(score),
			Criteria: CriteriaCount{Valid: validCount, Total: totalCount},
			Note:     countNote(validCount, totalCount),
		}
	}

	for _, key := range expectedKeys {
		if _, ok := components[key]; !ok {
			components[key] = placeholder
		}
	}

	logger.Log.Info("Scoring complete",
		zap.Int("criteria_valid", validCount),
		zap.Int("criteria_total", totalCount),
		zap.String("band", total.Band))

	return &Outcome{Global: components, Total: total}
}
