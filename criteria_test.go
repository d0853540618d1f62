package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOGTTIndicationEthnicityThreshold(t *testing.T) {
	t.Parallel()

	// BMI exactly 24 with MASLD as the only risk factor
	raw := RawAssessment{Weight: value(24), Height: value(100), MASLD: true}

	raw.Ethnicity = "Asian American"
	asian := computeAll(raw)
	require.NotNil(t, asian.BMI)
	assert.Equal(t, 24.0, *asian.BMI)
	assert.True(t, asian.Criteria.OGTTIndication.Evaluation)
	assert.Equal(t, 23.0, asian.Criteria.OGTTIndication.BMIThreshold)
	assert.Equal(t, []string{"MASLD", "High-risk ethnicity"}, asian.Criteria.OGTTIndication.RiskFactors)

	raw.Ethnicity = "White"
	white := computeAll(raw)
	assert.False(t, white.Criteria.OGTTIndication.Evaluation)
	assert.Equal(t, 25.0, white.Criteria.OGTTIndication.BMIThreshold)
	assert.Empty(t, white.Criteria.OGTTIndication.Reasons)
}

func TestOGTTIndicationReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       RawAssessment
		indicated bool
		reasons   []string
	}{
		{
			name:      "no data",
			raw:       RawAssessment{},
			indicated: false,
			reasons:   []string{},
		},
		{
			name:      "fasting glucose at lower bound",
			raw:       RawAssessment{Glucose: RawSeries{T0: value(100)}},
			indicated: true,
			reasons:   []string{"Fasting glucose 100-125 mg/dL"},
		},
		{
			name:      "fasting glucose in diabetic range",
			raw:       RawAssessment{Glucose: RawSeries{T0: value(126)}},
			indicated: false,
			reasons:   []string{},
		},
		{
			name:      "hba1c at upper bound",
			raw:       RawAssessment{HbA1c: value(6.4)},
			indicated: true,
			reasons:   []string{"HbA1c 5.7-6.4%"},
		},
		{
			name:      "hba1c above range",
			raw:       RawAssessment{HbA1c: value(6.5)},
			indicated: false,
			reasons:   []string{},
		},
		{
			name:      "history",
			raw:       RawAssessment{GestationalDiabetes: true, Pancreatitis: true},
			indicated: true,
			reasons:   []string{"History of gestational diabetes", "History of pancreatitis"},
		},
		{
			name: "bmi with every matched risk factor listed",
			raw: RawAssessment{
				Weight:        value(30),
				Height:        value(100),
				PCOS:          true,
				FamilyHistory: true,
				HDL:           value(30),
				Diastolic:     value(80),
			},
			indicated: true,
			reasons:   []string{"BMI ≥ 25 kg/m² with risk factors: Hypertension, Dyslipidemia, PCOS, First-degree relative with type 2 diabetes"},
		},
		{
			name:      "bmi without risk factors",
			raw:       RawAssessment{Weight: value(40), Height: value(100)},
			indicated: false,
			reasons:   []string{},
		},
		{
			name:      "risk factors without bmi",
			raw:       RawAssessment{MASLD: true, Ethnicity: "Native American"},
			indicated: false,
			reasons:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oi := computeAll(tt.raw).Criteria.OGTTIndication
			assert.Equal(t, tt.indicated, oi.Evaluation)
			assert.Equal(t, tt.reasons, oi.Reasons)
		})
	}
}

func TestMetabolicSyndromeThreshold(t *testing.T) {
	t.Parallel()

	// Waist and triglycerides only
	raw := RawAssessment{
		Sex:           "female",
		Waist:         value(90),
		Triglycerides: value(150),
		HDL:           value(55),
		Systolic:      value(120),
		Diastolic:     value(70),
		Glucose:       RawSeries{T0: value(95)},
	}
	ms := computeAll(raw).Criteria.MetabolicSyndrome
	assert.Equal(t, 2, ms.Count)
	assert.False(t, ms.Evaluation)

	// A third criterion tips it over
	raw.Glucose.T0 = value(100)
	ms = computeAll(raw).Criteria.MetabolicSyndrome
	assert.Equal(t, 3, ms.Count)
	assert.True(t, ms.Evaluation)
	assert.True(t, ms.FastingGlucose)
}

func TestMetabolicSyndromeMissingInputs(t *testing.T) {
	t.Parallel()

	// Sex-specific criteria cannot be evaluated without sex
	raw := RawAssessment{
		Waist:         value(130),
		HDL:           value(20),
		Triglycerides: value(200),
	}
	ms := computeAll(raw).Criteria.MetabolicSyndrome
	assert.False(t, ms.Waist)
	assert.False(t, ms.HDL)
	assert.True(t, ms.Triglycerides)
	assert.Equal(t, 1, ms.Count)
	assert.False(t, ms.Evaluation)

	// Nothing entered at all
	ms = computeAll(RawAssessment{}).Criteria.MetabolicSyndrome
	assert.Equal(t, MetabolicSyndromeCriteria{}, *ms)
}

func TestMetabolicSyndromeSexCutoffs(t *testing.T) {
	t.Parallel()

	raw := RawAssessment{Sex: "male", Waist: value(100), HDL: value(45)}
	ms := computeAll(raw).Criteria.MetabolicSyndrome
	assert.False(t, ms.Waist)
	assert.False(t, ms.HDL)

	raw.Sex = "female"
	ms = computeAll(raw).Criteria.MetabolicSyndrome
	assert.True(t, ms.Waist)
	assert.True(t, ms.HDL)
}

func TestMetabolicSyndromeTreatmentAlone(t *testing.T) {
	t.Parallel()

	raw := RawAssessment{OnAntihypertensive: true, Systolic: value(110), Diastolic: value(65)}
	assert.True(t, computeAll(raw).Criteria.MetabolicSyndrome.BloodPressure)

	raw = RawAssessment{Diastolic: value(85)}
	assert.True(t, computeAll(raw).Criteria.MetabolicSyndrome.BloodPressure)

	raw = RawAssessment{Systolic: value(129), Diastolic: value(84)}
	assert.False(t, computeAll(raw).Criteria.MetabolicSyndrome.BloodPressure)
}

func flagLabels(flags []RiskFlag) []string {
	var labels []string
	for _, f := range flags {
		labels = append(labels, f.Label)
	}
	return labels
}

func TestRiskFirstMatchWins(t *testing.T) {
	t.Parallel()

	a := computeAll(prediabeticRaw())
	rs := a.Criteria.Risk

	require.True(t, a.Criteria.MetabolicSyndrome.Evaluation)
	assert.True(t, rs.Markers.IFG)
	assert.True(t, rs.Markers.IGT)
	assert.True(t, rs.Markers.OneHourHigh)

	// Both the 52.8% and >50% rules fire; the first row wins
	assert.Contains(t, rs.flagLabels(), "IGT + 1-h glucose >155 mg/dL + metabolic syndrome [52.8%]")
	assert.Contains(t, rs.flagLabels(), "IFG + IGT [>50%]")
	assert.Contains(t, rs.flagLabels(), "IFG + 1-h glucose >155 mg/dL + metabolic syndrome [37.8%]")
	assert.Equal(t, "52.8%", rs.ExactRisk)
	assert.True(t, rs.Evaluation)
}

func TestRiskExactRiskWithoutIGT(t *testing.T) {
	t.Parallel()

	// IFG, high 1-hour glucose and metabolic syndrome, 2-hour glucose normal
	raw := prediabeticRaw()
	raw.Glucose.T120 = value(120)

	a := computeAll(raw)
	rs := a.Criteria.Risk
	require.True(t, a.Criteria.MetabolicSyndrome.Evaluation)
	assert.False(t, rs.Markers.IGT)
	assert.True(t, rs.Evaluation)
	assert.Equal(t, "37.8%", rs.ExactRisk)
	assert.Equal(t, "IFG + 1-h glucose >155 mg/dL + metabolic syndrome", rs.Flags[0].Label)
}

func TestRiskBetaCellFunction(t *testing.T) {
	t.Parallel()

	const rule = "IFG/IGT + 1-h glucose >155 mg/dL + reduced beta-cell function"

	tests := []struct {
		name          string
		glucose30     float64
		insulin0      float64
		insulin30     float64
		igiLow        bool
		firstPhaseLow bool
	}{
		// IGI 95/90, Stumvoll 1st ~952
		{"first phase low only", 200, 5, 100, false, true},
		// IGI 40/60, Stumvoll 1st ~1084
		{"igi low only", 170, 20, 60, true, false},
		// IGI 50/40, Stumvoll 1st ~1012
		{"neither low", 150, 10, 60, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawAssessment{
				Glucose: RawSeries{T0: value(110), T30: value(tt.glucose30), T60: value(190)},
				Insulin: RawSeries{T0: value(tt.insulin0), T30: value(tt.insulin30)},
			}
			a := computeAll(raw)
			rs := a.Criteria.Risk

			require.NotNil(t, a.Indices.IGI)
			require.NotNil(t, a.Indices.Stumvoll1)
			assert.Equal(t, tt.igiLow, *a.Indices.IGI <= 0.82)
			assert.Equal(t, tt.firstPhaseLow, *a.Indices.Stumvoll1 <= 1007)
			assert.Equal(t, tt.igiLow, rs.Markers.IGILow)
			assert.Equal(t, tt.firstPhaseLow, rs.Markers.FirstPhaseLow)

			fired := tt.igiLow || tt.firstPhaseLow
			assert.Equal(t, fired, rs.Evaluation)
			assert.Equal(t, fired, containsLabel(rs.Flags, rule))
		})
	}
}

func TestRiskA1cBounds(t *testing.T) {
	t.Parallel()

	const rule = "IFG/IGT + 1-h glucose >155 mg/dL + HbA1c 6.0-6.4%"

	tests := []struct {
		hba1c   float64
		a1cHigh bool
	}{
		{5.99, false},
		{6.0, true},
		{6.4, true},
		{6.41, false},
	}

	for _, tt := range tests {
		t.Run(string(value(tt.hba1c)), func(t *testing.T) {
			raw := RawAssessment{
				HbA1c:   value(tt.hba1c),
				Glucose: RawSeries{T0: value(110), T60: value(180)},
			}
			rs := computeAll(raw).Criteria.Risk
			assert.Equal(t, tt.a1cHigh, rs.Markers.A1cHigh)
			assert.Equal(t, tt.a1cHigh, containsLabel(rs.Flags, rule))
			assert.Equal(t, tt.a1cHigh, rs.Evaluation)
		})
	}
}

func TestRiskGlucoseBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		series RawSeries
		ifg    bool
		igt    bool
	}{
		{"fasting 99.9", RawSeries{T0: value(99.9)}, false, false},
		{"fasting 100", RawSeries{T0: value(100)}, true, false},
		{"fasting 125.9", RawSeries{T0: value(125.9)}, true, false},
		{"fasting 126", RawSeries{T0: value(126)}, false, false},
		{"two hour 139.9", RawSeries{T120: value(139.9)}, false, false},
		{"two hour 140", RawSeries{T120: value(140)}, false, true},
		{"two hour 199.9", RawSeries{T120: value(199.9)}, false, true},
		{"two hour 200", RawSeries{T120: value(200)}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := computeAll(RawAssessment{Glucose: tt.series}).Criteria.Risk.Markers
			assert.Equal(t, tt.ifg, m.IFG)
			assert.Equal(t, tt.igt, m.IGT)
		})
	}
}

func containsLabel(flags []RiskFlag, label string) bool {
	for _, f := range flags {
		if f.Label == label {
			return true
		}
	}
	return false
}

func TestRiskRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       RawAssessment
		highRisk  bool
		exactRisk string
		labels    []string
	}{
		{
			name:     "no data",
			raw:      RawAssessment{},
			highRisk: false,
		},
		{
			name:     "ifg alone",
			raw:      RawAssessment{Glucose: RawSeries{T0: value(110)}},
			highRisk: false,
			labels:   []string{"Impaired fasting glucose (100-125 mg/dL)"},
		},
		{
			name:      "ifg and igt",
			raw:       RawAssessment{Glucose: RawSeries{T0: value(105), T120: value(150)}},
			highRisk:  true,
			exactRisk: ">50%",
			labels: []string{
				"IFG + IGT",
				"Impaired fasting glucose (100-125 mg/dL)",
				"Impaired glucose tolerance (2-h 140-199 mg/dL)",
			},
		},
		{
			name: "igt with high one hour and hba1c",
			raw: RawAssessment{
				HbA1c:   value(6.2),
				Glucose: RawSeries{T0: value(95), T60: value(180), T120: value(145)},
			},
			highRisk: true,
			labels: []string{
				"IFG/IGT + 1-h glucose >155 mg/dL + HbA1c 6.0-6.4%",
				"Impaired glucose tolerance (2-h 140-199 mg/dL)",
				"1-h glucose >155 mg/dL",
			},
		},
		{
			name: "ifg with high one hour and low igi",
			raw: RawAssessment{
				Glucose: RawSeries{T0: value(110), T30: value(170), T60: value(190)},
				Insulin: RawSeries{T0: value(10), T30: value(20)},
			},
			highRisk: true,
			labels: []string{
				"IFG/IGT + 1-h glucose >155 mg/dL + reduced beta-cell function",
				"Impaired fasting glucose (100-125 mg/dL)",
				"1-h glucose >155 mg/dL",
			},
		},
		{
			name:     "one hour at threshold",
			raw:      RawAssessment{Glucose: RawSeries{T60: value(155)}},
			highRisk: false,
		},
		{
			name:     "two hour in diabetic range",
			raw:      RawAssessment{Glucose: RawSeries{T120: value(200)}},
			highRisk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := computeAll(tt.raw).Criteria.Risk
			assert.Equal(t, tt.highRisk, rs.Evaluation)
			assert.Equal(t, tt.exactRisk, rs.ExactRisk)
			assert.Equal(t, tt.labels, flagLabels(rs.Flags))
		})
	}
}

func TestHighRiskOnlyFromDangerRules(t *testing.T) {
	t.Parallel()

	for _, raw := range []RawAssessment{prediabeticRaw(), {Glucose: RawSeries{T0: value(110)}}, {}} {
		rs := computeAll(raw).Criteria.Risk

		danger := false
		for _, flag := range rs.Flags {
			if flag.Severity == SeverityDanger {
				danger = true
			}
		}
		assert.Equal(t, danger, rs.Evaluation)
	}
}

func TestEligibilityBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		age      RawValue
		decision EligibilityDecision
	}{
		{"age unknown", "", DecisionInsufficientData},
		{"under forty", value(35), DecisionIneligible},
		{"forty", value(40), DecisionConditional},
		{"forty nine", value(49.9), DecisionConditional},
		{"fifty", value(50), DecisionEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := prediabeticRaw()
			raw.Age = tt.age

			ec := computeAll(raw).Criteria.Eligibility
			assert.True(t, ec.Applies)
			assert.Equal(t, tt.decision, ec.Decision)

			// Reported in every band, including ineligible
			require.NotNil(t, ec.WeightLossTarget)
			assert.InDelta(t, 5.0, ec.WeightLossTarget.Min, 1e-9)
			assert.InDelta(t, 10.0, ec.WeightLossTarget.Max, 1e-9)
		})
	}
}

func TestEligibilityNotApplicable(t *testing.T) {
	t.Parallel()

	ec := computeAll(RawAssessment{Age: value(60), Glucose: RawSeries{T0: value(110)}}).Criteria.Eligibility
	assert.False(t, ec.Applies)
	assert.Equal(t, DecisionNotApplicable, ec.Decision)
	assert.Nil(t, ec.WeightLossTarget)
}
