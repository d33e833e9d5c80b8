package entity

import "strconv"

// Overall verdicts
const (
	VerdictMostlyPositive = "Mostly Positive"
	VerdictMostlyNegative = "Mostly Negative"
	VerdictMixed          = "Mixed"
)

// MajorityThreshold is the percentage a label must exceed to dominate the verdict
const MajorityThreshold = 60.0

// AggregateReport summarizes the label distribution of a set of predictions
type AggregateReport struct {
	Total       int     `json:"total"`
	Positive    int     `json:"positive"`
	Neutral     int     `json:"neutral"`
	Negative    int     `json:"negative"`
	PositivePct float64 `json:"positive_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	NegativePct float64 `json:"negative_pct"`
	Overall     string  `json:"overall"`
}

// NewAggregateReport builds a report from predicted labels. Labels other
// than positive, neutral and negative count toward Total only.
func NewAggregateReport(labels []string) *AggregateReport {
	counts := make(map[string]int64, 3)
	for _, l := range labels {
		counts[l]++
	}
	return NewAggregateReportFromCounts(counts)
}

// NewAggregateReportFromCounts builds a report from per-label counts.
func NewAggregateReportFromCounts(counts map[string]int64) *AggregateReport {
	var total int64
	for _, c := range counts {
		total += c
	}

	r := &AggregateReport{
		Total:    int(total),
		Positive: int(counts[SentimentPositive]),
		Neutral:  int(counts[SentimentNeutral]),
		Negative: int(counts[SentimentNegative]),
	}
	r.PositivePct = Percentage(r.Positive, r.Total)
	r.NeutralPct = Percentage(r.Neutral, r.Total)
	r.NegativePct = Percentage(r.Negative, r.Total)
	r.Overall = verdict(r.PositivePct, r.NegativePct)

	return r
}

// Percentage returns 100*count/total rounded to two decimals, or 0 when total is 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(100 * float64(count) / float64(total))
}

// Round2 rounds to two decimal places. Exact ties go to the even digit,
// so 0.125 becomes 0.12.
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}

func verdict(positivePct, negativePct float64) string {
	switch {
	case positivePct > MajorityThreshold:
		return VerdictMostlyPositive
	case negativePct > MajorityThreshold:
		return VerdictMostlyNegative
	default:
		return VerdictMixed
	}
}
