package analyzer

import (
	"github.com/knitlab/knitscope/knit"
)

// AccuracyReport quantifies detection quality against a host-supplied
// expected issue count. True and false positives come from the validation
// statuses, issues left NOT_VALIDATED or VALIDATION_FAILED count in neither.
type AccuracyReport struct {
	Expected          int     `json:"expected"`
	Reported          int     `json:"reported"`
	TruePositives     int     `json:"truePositives"`
	FalsePositives    int     `json:"falsePositives"`
	Precision         float64 `json:"precision"`
	Recall            float64 `json:"recall"`
	F1Score           float64 `json:"f1Score"`
	FalsePositiveRate float64 `json:"falsePositiveRate"`
	StatisticalError  float64 `json:"statisticalError"` // |reported-expected| / max(expected, 1)
}

// BuildAccuracyReport derives the accuracy metrics from validated issues.
// The function is pure: no graph access, no clock, no logging.
func BuildAccuracyReport(issues []knit.Issue, expected int) AccuracyReport {
	report := AccuracyReport{Expected: expected, Reported: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case knit.ValidatedTruePositive:
			report.TruePositives++
		case knit.ValidatedFalsePositive:
			report.FalsePositives++
		}
	}

	if denom := report.TruePositives + report.FalsePositives; denom > 0 {
		report.Precision = float64(report.TruePositives) / float64(denom)
	}

	recallBase := expected
	if recallBase < 1 {
		recallBase = 1
	}
	matched := report.TruePositives
	if matched > expected {
		matched = expected
	}
	report.Recall = float64(matched) / float64(recallBase)

	if sum := report.Precision + report.Recall; sum > 0 {
		report.F1Score = 2 * report.Precision * report.Recall / sum
	}

	reportedBase := report.Reported
	if reportedBase < 1 {
		reportedBase = 1
	}
	report.FalsePositiveRate = float64(report.FalsePositives) / float64(reportedBase)

	diff := report.Reported - expected
	if diff < 0 {
		diff = -diff
	}
	report.StatisticalError = float64(diff) / float64(recallBase)
	return report
}
