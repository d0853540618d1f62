package main

import "math"

const (
	// mU/L to pmol/L
	insulinToPmol = 6.0
	// mg/dL to mmol/L
	glucoseToMmol = 18.0
)

// quotient divides a by b, returning nil for a zero denominator or a non-finite result.
func quotient(a, b float64) *float64 {
	if b == 0 {
		return nil
	}
	return finite(a / b)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// mean averages whichever values are present.
func mean(values ...*float64) *float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return finite(sum / float64(n))
}

func present(values ...*float64) bool {
	for _, v := range values {
		if v == nil {
			return false
		}
	}
	return true
}

func computeIndices(ogtt OgttSeries) Indices {
	g, i := ogtt.Glucose, ogtt.Insulin

	idx := Indices{
		MeanGlucose: mean(g.values()...),
		MeanInsulin: mean(i.values()...),
	}

	idx.HOMAIR = homaIR(g.T0, i.T0)
	idx.HOMABeta = homaBeta(g.T0, i.T0)
	idx.Matsuda = matsuda(g.T0, i.T0, idx.MeanGlucose, idx.MeanInsulin)
	idx.IGI = insulinogenicIndex(g.T0, g.T30, i.T0, i.T30)
	idx.Stumvoll1, idx.Stumvoll2 = stumvoll(g.T30, i.T0, i.T30)
	if present(idx.Matsuda, idx.IGI) {
		disposition := *idx.Matsuda * *idx.IGI
		idx.Disposition = finite(disposition)
	}
	idx.PGAUC = glucoseAUC(g)

	return idx
}

func homaIR(g0, i0 *float64) *float64 {
	if !present(g0, i0) {
		return nil
	}
	fasting := *g0 * *i0
	return quotient(fasting, 405)
}

func homaBeta(g0, i0 *float64) *float64 {
	if !present(g0, i0) {
		return nil
	}
	return quotient(*i0*360, *g0-63)
}

func matsuda(g0, i0, meanG, meanI *float64) *float64 {
	if !present(g0, i0, meanG, meanI) {
		return nil
	}
	fasting := *g0 * *i0
	means := *meanG * *meanI
	product := fasting * means
	if math.IsNaN(product) || math.IsInf(product, 0) || product < 0 {
		return nil
	}
	return quotient(10000, math.Sqrt(product))
}

func insulinogenicIndex(g0, g30, i0, i30 *float64) *float64 {
	if !present(g0, g30, i0, i30) {
		return nil
	}
	insulinRise := *i30 - *i0
	glucoseRise := *g30 - *g0
	return quotient(insulinRise, glucoseRise)
}

// stumvoll estimates first and second phase insulin secretion from the fasting
// insulin and the 30 minute glucose and insulin values.
func stumvoll(g30, i0, i30 *float64) (*float64, *float64) {
	if !present(g30, i0, i30) {
		return nil, nil
	}

	i0Pmol := *i0 * insulinToPmol
	i30Pmol := *i30 * insulinToPmol
	g30Mmol := *g30 / glucoseToMmol

	first := 1283 + 1.829*i30Pmol - 138.7*g30Mmol + 3.772*i0Pmol
	second := 287 + 0.4164*i30Pmol - 26.07*g30Mmol + 0.9226*i0Pmol

	return finite(first), finite(second)
}

// glucoseAUC is the weighted glucose area under the curve. The 90 minute sample is
// not part of the formula.
func glucoseAUC(g Series) *float64 {
	if !present(g.T0, g.T30, g.T60, g.T120) {
		return nil
	}
	g0, g30, g60, g120 := *g.T0, *g.T30, *g.T60, *g.T120
	weighted := g0 + 2*g30 + 3*g60 + 2*g120
	return finite(weighted / 4)
}

// homaIRCutoff selects the HOMA-IR display threshold.
func homaIRCutoff(bmi *float64, masld bool) float64 {
	switch {
	case masld:
		return 2.0
	case bmi != nil && *bmi > 27.5:
		return 3.6
	default:
		return 4.65
	}
}
