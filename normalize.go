package main

import (
	"math"
	"strconv"
	"strings"
)

// Range is a closed interval used to clamp a numeric field.
type Range struct {
	Min float64
	Max float64
}

var (
	ageRange           = Range{10, 100}
	weightRange        = Range{20, 300}
	heightRange        = Range{100, 250}
	waistRange         = Range{40, 250}
	systolicRange      = Range{60, 260}
	diastolicRange     = Range{30, 160}
	triglyceridesRange = Range{10, 5000}
	hdlRange           = Range{5, 200}
	hba1cRange         = Range{3.5, 15}
	glucoseRange       = Range{40, 600}
	fastingInsulin     = Range{0, 1000}
	stimulatedInsulin  = Range{0, 3000}
)

func ptr[T any](v T) *T {
	return &v
}

// normalize parses raw into a finite number clamped to r. Anything that does not
// parse to a finite number is absent.
func normalize(raw RawValue, r Range) *float64 {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}

	// Plain decimal notation only; ParseFloat also takes hex, underscores and Inf
	if strings.IndexFunc(text, notDecimal) >= 0 {
		return nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	return ptr(math.Min(math.Max(value, r.Min), r.Max))
}

func notDecimal(r rune) bool {
	return !strings.ContainsRune("0123456789.+-eE", r)
}

func normalizeSex(raw string) Sex {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "female", "f":
		return SexFemale
	case "male", "m":
		return SexMale
	}
	return SexUnknown
}

var knownEthnicities = []Ethnicity{
	EthnicityWhite,
	EthnicityAfricanAmerican,
	EthnicityHispanicLatino,
	EthnicityNativeAmerican,
	EthnicityAsianAmerican,
	EthnicityOther,
}

func normalizeEthnicity(raw string) Ethnicity {
	text := strings.TrimSpace(raw)
	for _, e := range knownEthnicities {
		if strings.EqualFold(text, string(e)) {
			return e
		}
	}
	return EthnicityUnknown
}

func normalizeSeries(raw RawSeries, fasting, stimulated Range) Series {
	return Series{
		T0:   normalize(raw.T0, fasting),
		T30:  normalize(raw.T30, stimulated),
		T60:  normalize(raw.T60, stimulated),
		T90:  normalize(raw.T90, stimulated),
		T120: normalize(raw.T120, stimulated),
	}
}

func normalizeAssessment(raw RawAssessment) (PatientProfile, OgttSeries) {
	profile := PatientProfile{
		Age:                 normalize(raw.Age, ageRange),
		Sex:                 normalizeSex(string(raw.Sex)),
		Ethnicity:           normalizeEthnicity(string(raw.Ethnicity)),
		Weight:              normalize(raw.Weight, weightRange),
		Height:              normalize(raw.Height, heightRange),
		Waist:               normalize(raw.Waist, waistRange),
		Systolic:            normalize(raw.Systolic, systolicRange),
		Diastolic:           normalize(raw.Diastolic, diastolicRange),
		OnAntihypertensive:  bool(raw.OnAntihypertensive),
		Triglycerides:       normalize(raw.Triglycerides, triglyceridesRange),
		HDL:                 normalize(raw.HDL, hdlRange),
		HbA1c:               normalize(raw.HbA1c, hba1cRange),
		GestationalDiabetes: bool(raw.GestationalDiabetes),
		Pancreatitis:        bool(raw.Pancreatitis),
		MASLD:               bool(raw.MASLD),
		PCOS:                bool(raw.PCOS),
		FamilyHistory:       bool(raw.FamilyHistory),
	}

	ogtt := OgttSeries{
		Glucose: normalizeSeries(raw.Glucose, glucoseRange, glucoseRange),
		Insulin: normalizeSeries(raw.Insulin, fastingInsulin, stimulatedInsulin),
	}

	return profile, ogtt
}

// bodyMassIndex returns weight (kg) over height (m) squared.
func bodyMassIndex(weight, height *float64) *float64 {
	if weight == nil || height == nil {
		return nil
	}
	meters := *height / 100
	return quotient(*weight, meters*meters)
}
