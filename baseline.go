package main

import (
	"time"

	"github.com/google/uuid"
)

// captureBaseline copies the parts of an assessment that are tracked across visits.
func captureBaseline(a Assessment, now time.Time) BaselineSnapshot {
	snapshot := snapshotOf(a)
	snapshot.Id = uuid.NewString()
	snapshot.CapturedAt = now
	return snapshot
}

func snapshotOf(a Assessment) BaselineSnapshot {
	snapshot := BaselineSnapshot{
		Weight:    a.Profile.Weight,
		BMI:       a.BMI,
		Flags:     []string{},
		Matsuda:   a.Indices.Matsuda,
		HOMAIR:    a.Indices.HOMAIR,
		IGI:       a.Indices.IGI,
		Stumvoll1: a.Indices.Stumvoll1,
		PGAUC:     a.Indices.PGAUC,
	}

	if ms := a.Criteria.MetabolicSyndrome; ms != nil {
		snapshot.MetabolicSyndrome = ms.Evaluation
	}
	if rs := a.Criteria.Risk; rs != nil {
		snapshot.HighRisk = rs.Evaluation
		snapshot.ExactRisk = rs.ExactRisk
		snapshot.Flags = rs.flagLabels()
	}

	return snapshot
}

// compareBaseline diffs the current assessment against a stored snapshot.
// A nil baseline yields a nil comparison.
func compareBaseline(baseline *BaselineSnapshot, a Assessment) *Comparison {
	if baseline == nil {
		return nil
	}

	current := snapshotOf(a)

	cmp := Comparison{
		Baseline:         *baseline,
		ReversedHighRisk: baseline.HighRisk && !current.HighRisk,
		NewHighRisk:      !baseline.HighRisk && current.HighRisk,
		AddedFlags:       difference(current.Flags, baseline.Flags),
		RemovedFlags:     difference(baseline.Flags, current.Flags),
		Values: []ValueChange{
			{Name: "Weight", Baseline: baseline.Weight, Current: current.Weight},
			{Name: "BMI", Baseline: baseline.BMI, Current: current.BMI},
			{Name: "Matsuda", Baseline: baseline.Matsuda, Current: current.Matsuda},
			{Name: "HOMA-IR", Baseline: baseline.HOMAIR, Current: current.HOMAIR},
			{Name: "IGI", Baseline: baseline.IGI, Current: current.IGI},
			{Name: "Stumvoll 1st phase", Baseline: baseline.Stumvoll1, Current: current.Stumvoll1},
			{Name: "PG AUC", Baseline: baseline.PGAUC, Current: current.PGAUC},
		},
	}

	// Positive values are weight loss
	if present(baseline.Weight, current.Weight) {
		lost := *baseline.Weight - *current.Weight
		cmp.WeightChangePercent = quotient(lost*100, *baseline.Weight)
	}

	return &cmp
}

// difference returns the labels in a that are not in b, preserving order.
func difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, label := range b {
		seen[label] = true
	}

	result := []string{}
	for _, label := range a {
		if !seen[label] {
			result = append(result, label)
		}
	}
	return result
}
