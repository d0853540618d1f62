package main

func (a *Assessment) metabolicSyndrome() *MetabolicSyndromeCriteria {
	/*
	 * ATP III, at least 3 of:
	 *   Waist > 102 cm (male) / > 88 cm (female)
	 *   Triglycerides >= 150 mg/dL
	 *   HDL < 40 mg/dL (male) / < 50 mg/dL (female)
	 *   SBP >= 130 OR DBP >= 85 OR on antihypertensive treatment
	 *   Fasting glucose >= 100 mg/dL
	 *
	 * A criterion that cannot be evaluated counts as not met.
	 */

	p := a.Profile
	msc := MetabolicSyndromeCriteria{}

	// Sex-specific cut points
	if p.Waist != nil {
		switch p.Sex {
		case SexMale:
			msc.Waist = *p.Waist > 102
		case SexFemale:
			msc.Waist = *p.Waist > 88
		}
	}
	if p.HDL != nil {
		switch p.Sex {
		case SexMale:
			msc.HDL = *p.HDL < 40
		case SexFemale:
			msc.HDL = *p.HDL < 50
		}
	}

	msc.Triglycerides = p.Triglycerides != nil && *p.Triglycerides >= 150

	// Treatment alone satisfies the blood pressure criterion
	msc.BloodPressure = p.OnAntihypertensive ||
		(p.Systolic != nil && *p.Systolic >= 130) ||
		(p.Diastolic != nil && *p.Diastolic >= 85)

	msc.FastingGlucose = a.OGTT.Glucose.T0 != nil && *a.OGTT.Glucose.T0 >= 100

	for _, met := range []bool{msc.Waist, msc.Triglycerides, msc.HDL, msc.BloodPressure, msc.FastingGlucose} {
		if met {
			msc.Count++
		}
	}

	// Return final evaluation
	msc.Evaluation = msc.Count >= 3

	return &msc
}
