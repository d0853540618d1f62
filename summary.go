package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const placeholder = "—"

// formatValue rounds v for display, or returns the absence placeholder.
func formatValue(v *float64, places int32) string {
	if v == nil {
		return placeholder
	}
	return decimal.NewFromFloat(*v).StringFixed(places)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

type indexLine struct {
	Name      string
	Value     *float64
	Places    int32
	Threshold string
	Flagged   bool
}

func below(v *float64, limit float64) bool {
	return v != nil && *v <= limit
}

func (a *Assessment) indexLines() []indexLine {
	idx := a.Indices
	return []indexLine{
		{
			Name:      "Matsuda index",
			Value:     idx.Matsuda,
			Places:    2,
			Threshold: "≤ 4.3 insulin resistance",
			Flagged:   below(idx.Matsuda, 4.3),
		},
		{
			Name:      "HOMA-IR",
			Value:     idx.HOMAIR,
			Places:    2,
			Threshold: fmt.Sprintf("> %g insulin resistance", a.HOMAIRCutoff),
			Flagged:   idx.HOMAIR != nil && *idx.HOMAIR > a.HOMAIRCutoff,
		},
		{
			Name:      "HOMA-β",
			Value:     idx.HOMABeta,
			Places:    1,
			Threshold: "% of reference beta-cell function (100%)",
		},
		{
			Name:      "Insulinogenic index",
			Value:     idx.IGI,
			Places:    2,
			Threshold: "≤ 0.82 low early insulin response",
			Flagged:   below(idx.IGI, 0.82),
		},
		{
			Name:      "Stumvoll 1st phase",
			Value:     idx.Stumvoll1,
			Places:    0,
			Threshold: "≤ 1007 low first-phase secretion",
			Flagged:   below(idx.Stumvoll1, 1007),
		},
		{
			Name:      "Stumvoll 2nd phase",
			Value:     idx.Stumvoll2,
			Places:    0,
			Threshold: "estimated second-phase secretion",
		},
		{
			Name:      "Disposition index",
			Value:     idx.Disposition,
			Places:    2,
			Threshold: "Matsuda × IGI",
		},
		{
			Name:      "PG AUC",
			Value:     idx.PGAUC,
			Places:    1,
			Threshold: "weighted glucose mg/dL (0, 30, 60, 120 min)",
		},
	}
}

// buildSummary renders the plain-text clinical summary. cmp may be nil.
func buildSummary(a Assessment, cmp *Comparison, toolName, disclaimer string) string {
	var b strings.Builder
	p := a.Profile

	b.WriteString(toolName + "\n")

	// Demographics
	age := formatValue(p.Age, 0)
	b.WriteString(fmt.Sprintf("Demographics: age %s y, sex %s, ethnicity %s\n", age, p.Sex, p.Ethnicity))
	b.WriteString(fmt.Sprintf("Weight %s kg, height %s cm, BMI %s kg/m², waist %s cm\n",
		formatValue(p.Weight, 1), formatValue(p.Height, 1), formatValue(a.BMI, 1), formatValue(p.Waist, 1)))

	// Step 1
	if oi := a.Criteria.OGTTIndication; oi != nil {
		b.WriteString(fmt.Sprintf("Step 1 - OGTT indicated: %s\n", yesNo(oi.Evaluation)))
		for _, reason := range oi.Reasons {
			b.WriteString("  - " + reason + "\n")
		}
	}

	// Step 2
	if ms := a.Criteria.MetabolicSyndrome; ms != nil {
		verdict := "Absent"
		if ms.Evaluation {
			verdict = "Present"
		}
		b.WriteString(fmt.Sprintf("Step 2 - Metabolic syndrome: %s (%d/5 criteria)\n", verdict, ms.Count))
	}

	// Step 3
	if rs := a.Criteria.Risk; rs != nil {
		b.WriteString(fmt.Sprintf("Step 3 - High risk: %s\n", yesNo(rs.Evaluation)))
		if rs.ExactRisk != "" {
			b.WriteString(fmt.Sprintf("  Exact risk: %s\n", rs.ExactRisk))
		}
		for _, flag := range rs.Flags {
			b.WriteString(fmt.Sprintf("  - [%s] %s\n", flag.Severity, flag))
		}
	}

	// Step 4
	if ec := a.Criteria.Eligibility; ec != nil {
		b.WriteString(fmt.Sprintf("Step 4 - %s\n", ec.Message))
		if ec.Applies && ec.WeightLossTarget != nil {
			b.WriteString(fmt.Sprintf("  Weight-loss target: %s-%s kg\n",
				formatValue(&ec.WeightLossTarget.Min, 1), formatValue(&ec.WeightLossTarget.Max, 1)))
		}
	}

	// Indices
	b.WriteString("Indices:\n")
	for _, line := range a.indexLines() {
		marker := ""
		if line.Flagged {
			marker = " *"
		}
		b.WriteString(fmt.Sprintf("  %s: %s%s (%s)\n", line.Name, formatValue(line.Value, line.Places), marker, line.Threshold))
	}

	// Baseline comparison
	if cmp != nil {
		b.WriteString(fmt.Sprintf("Compared with baseline of %s:\n", cmp.Baseline.CapturedAt.Format("01/02/2006 15:04")))
		b.WriteString(fmt.Sprintf("  Weight change: %s%%\n", formatValue(cmp.WeightChangePercent, 1)))
		if cmp.ReversedHighRisk {
			b.WriteString("  High-risk status reversed\n")
		}
		if cmp.NewHighRisk {
			b.WriteString("  Newly high risk\n")
		}
		for _, flag := range cmp.AddedFlags {
			b.WriteString("  + " + flag + "\n")
		}
		for _, flag := range cmp.RemovedFlags {
			b.WriteString("  - " + flag + "\n")
		}
		for _, v := range cmp.Values {
			b.WriteString(fmt.Sprintf("  %s: %s -> %s\n", v.Name, formatValue(v.Baseline, 2), formatValue(v.Current, 2)))
		}
	}

	b.WriteString(disclaimer + "\n")

	return b.String()
}
