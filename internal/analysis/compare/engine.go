// Package compare ranks two analysis results across independent metrics and
// renders a narrative verdict.
package compare

import (
	"fmt"
	"math"
	"strings"

	"idx-insight/internal/models"
)

// Metric scores for bandarmology status; higher wins. An absent assessment
// scores neutral.
var flowScores = map[models.FlowStatus]int{
	models.FlowAccumulation: 5,
	models.FlowMarkup:       4,
	models.FlowNeutral:      3,
	models.FlowMarkdown:     2,
	models.FlowDistribution: 1,
}

const neutralFlowScore = 3

// Compare runs the four order-insensitive comparators and builds the verdict.
// Fundamental snapshots are optional on both sides; missing fields never
// abort the comparison.
func Compare(a, b *models.AnalysisResult) *models.ComparisonVerdict {
	verdict := &models.ComparisonVerdict{
		A:             a,
		B:             b,
		Valuation:     compareValuation(a.Fundamentals, b.Fundamentals),
		Momentum:      compareMomentum(a, b),
		Profitability: compareProfitability(a.Fundamentals, b.Fundamentals),
		Bandarmology:  compareBandarmology(a, b),
	}
	verdict.Narrative = buildNarrative(verdict)
	return verdict
}

// compareValuation prefers the lower of trailing P/E, falling back to
// price-to-book. A side with neither scores +Inf; two missing sides tie.
func compareValuation(a, b *models.Fundamentals) models.Winner {
	scoreA := valuationScore(a)
	scoreB := valuationScore(b)
	if math.IsInf(scoreA, 1) && math.IsInf(scoreB, 1) {
		return models.WinnerTie
	}
	switch {
	case scoreA < scoreB:
		return models.WinnerA
	case scoreB < scoreA:
		return models.WinnerB
	default:
		return models.WinnerTie
	}
}

func valuationScore(f *models.Fundamentals) float64 {
	if f != nil {
		if f.TrailingPE != nil {
			return *f.TrailingPE
		}
		if f.PriceToBook != nil {
			return *f.PriceToBook
		}
	}
	return math.Inf(1)
}

// compareMomentum scores -|RSI-50| plus a signal bonus; higher wins.
func compareMomentum(a, b *models.AnalysisResult) models.Winner {
	scoreA := momentumScore(a)
	scoreB := momentumScore(b)
	switch {
	case scoreA > scoreB:
		return models.WinnerA
	case scoreB > scoreA:
		return models.WinnerB
	default:
		return models.WinnerTie
	}
}

func momentumScore(r *models.AnalysisResult) float64 {
	score := -math.Abs(r.RSI - 50)
	switch r.Signal {
	case models.SignalBuy:
		score += 10
	case models.SignalSell:
		score -= 10
	}
	return score
}

// compareProfitability prefers the higher trailing EPS; missing scores -Inf,
// both missing ties.
func compareProfitability(a, b *models.Fundamentals) models.Winner {
	scoreA := epsScore(a)
	scoreB := epsScore(b)
	if math.IsInf(scoreA, -1) && math.IsInf(scoreB, -1) {
		return models.WinnerTie
	}
	switch {
	case scoreA > scoreB:
		return models.WinnerA
	case scoreB > scoreA:
		return models.WinnerB
	default:
		return models.WinnerTie
	}
}

func epsScore(f *models.Fundamentals) float64 {
	if f != nil && f.TrailingEPS != nil {
		return *f.TrailingEPS
	}
	return math.Inf(-1)
}

func compareBandarmology(a, b *models.AnalysisResult) models.Winner {
	scoreA := flowScore(a)
	scoreB := flowScore(b)
	switch {
	case scoreA > scoreB:
		return models.WinnerA
	case scoreB > scoreA:
		return models.WinnerB
	default:
		return models.WinnerTie
	}
}

func flowScore(r *models.AnalysisResult) int {
	if r.BandarFlow == nil {
		return neutralFlowScore
	}
	if score, ok := flowScores[r.BandarFlow.Status]; ok {
		return score
	}
	return neutralFlowScore
}

// buildNarrative sums fundamental wins (valuation, profitability) and
// technical wins (momentum, bandarmology) and renders fixed sentences.
func buildNarrative(v *models.ComparisonVerdict) string {
	fundamental := winValue(v.Valuation) + winValue(v.Profitability)
	technical := winValue(v.Momentum) + winValue(v.Bandarmology)
	total := fundamental + technical

	nameA := v.A.Symbol
	nameB := v.B.Symbol

	var sb strings.Builder
	switch {
	case fundamental > 0:
		fmt.Fprintf(&sb, "%s leads on fundamentals.", nameA)
	case fundamental < 0:
		fmt.Fprintf(&sb, "%s leads on fundamentals.", nameB)
	default:
		sb.WriteString("Fundamentals are evenly matched.")
	}

	switch {
	case technical > 0:
		fmt.Fprintf(&sb, " %s has the stronger technical picture.", nameA)
	case technical < 0:
		fmt.Fprintf(&sb, " %s has the stronger technical picture.", nameB)
	default:
		sb.WriteString(" The technical picture is balanced.")
	}

	switch {
	case total > 0:
		fmt.Fprintf(&sb, " Overall, %s looks more attractive right now.", nameA)
	case total < 0:
		fmt.Fprintf(&sb, " Overall, %s looks more attractive right now.", nameB)
	default:
		fmt.Fprintf(&sb, " Overall, %s and %s are too close to call.", nameA, nameB)
	}

	return sb.String()
}

func winValue(w models.Winner) int {
	switch w {
	case models.WinnerA:
		return 1
	case models.WinnerB:
		return -1
	default:
		return 0
	}
}
