package main

import (
	"fmt"
	"strings"
)

var highRiskEthnicities = map[Ethnicity]bool{
	EthnicityAfricanAmerican: true,
	EthnicityHispanicLatino:  true,
	EthnicityNativeAmerican:  true,
	EthnicityAsianAmerican:   true,
}

func bmiThreshold(e Ethnicity) float64 {
	if e == EthnicityAsianAmerican {
		return 23
	}
	return 25
}

func (a *Assessment) ogttIndication() *OGTTIndication {
	/*
	 * Fasting glucose 100-125 mg/dL
	 * OR HbA1c 5.7-6.4%
	 * OR History of gestational diabetes
	 * OR History of pancreatitis
	 * OR (
	 *   BMI >= 25 kg/m2 (>= 23 kg/m2 for Asian American)
	 *   AND at least one of:
	 *     MASLD
	 *     SBP >= 130 OR DBP >= 80 OR on antihypertensive treatment
	 *     HDL < 35 OR triglycerides > 250
	 *     PCOS
	 *     First-degree relative with type 2 diabetes
	 *     High-risk ethnicity
	 * )
	 */

	p := a.Profile
	oi := OGTTIndication{
		BMIThreshold: bmiThreshold(p.Ethnicity),
		RiskFactors:  []string{},
		Reasons:      []string{},
	}

	// Glycemic markers
	if g0 := a.OGTT.Glucose.T0; g0 != nil && *g0 >= 100 && *g0 < 126 {
		oi.Reasons = append(oi.Reasons, "Fasting glucose 100-125 mg/dL")
	}
	if p.HbA1c != nil && *p.HbA1c >= 5.7 && *p.HbA1c <= 6.4 {
		oi.Reasons = append(oi.Reasons, "HbA1c 5.7-6.4%")
	}

	// History
	if p.GestationalDiabetes {
		oi.Reasons = append(oi.Reasons, "History of gestational diabetes")
	}
	if p.Pancreatitis {
		oi.Reasons = append(oi.Reasons, "History of pancreatitis")
	}

	// Collect risk factors for the BMI rule
	if p.MASLD {
		oi.RiskFactors = append(oi.RiskFactors, "MASLD")
	}
	if (p.Systolic != nil && *p.Systolic >= 130) || (p.Diastolic != nil && *p.Diastolic >= 80) || p.OnAntihypertensive {
		oi.RiskFactors = append(oi.RiskFactors, "Hypertension")
	}
	if (p.HDL != nil && *p.HDL < 35) || (p.Triglycerides != nil && *p.Triglycerides > 250) {
		oi.RiskFactors = append(oi.RiskFactors, "Dyslipidemia")
	}
	if p.PCOS {
		oi.RiskFactors = append(oi.RiskFactors, "PCOS")
	}
	if p.FamilyHistory {
		oi.RiskFactors = append(oi.RiskFactors, "First-degree relative with type 2 diabetes")
	}
	if highRiskEthnicities[p.Ethnicity] {
		oi.RiskFactors = append(oi.RiskFactors, "High-risk ethnicity")
	}

	oi.MeetsBMI = a.BMI != nil && *a.BMI >= oi.BMIThreshold
	if oi.MeetsBMI && len(oi.RiskFactors) > 0 {
		oi.Reasons = append(oi.Reasons, fmt.Sprintf("BMI ≥ %g kg/m² with risk factors: %s", oi.BMIThreshold, strings.Join(oi.RiskFactors, ", ")))
	}

	// Return final evaluation
	oi.Evaluation = len(oi.Reasons) > 0

	return &oi
}
