package main

func weightLossTarget(weight *float64) *WeightRange {
	if weight == nil {
		return nil
	}
	return &WeightRange{
		Min: *weight * 0.05,
		Max: *weight * 0.10,
	}
}

func (a *Assessment) eligibility() *EligibilityCriteria {
	/*
	 * Only evaluated for high-risk patients (Step 3)
	 * Age unknown -> insufficient data
	 * Age < 40    -> ineligible
	 * Age 40-49   -> conditionally eligible, pending reversal of high-risk markers
	 *                after weight loss and repeat testing
	 * Age >= 50   -> eligible after 5-10% weight loss
	 *
	 * The weight-loss target is reported whenever weight is known, whatever the band.
	 */

	ec := EligibilityCriteria{
		Decision:         DecisionNotApplicable,
		Message:          "Not applicable: no high-risk markers identified",
		WeightLossTarget: weightLossTarget(a.Profile.Weight),
	}

	ec.Applies = a.Criteria.Risk != nil && a.Criteria.Risk.Evaluation
	if !ec.Applies {
		return &ec
	}

	age := a.Profile.Age
	switch {
	case age == nil:
		ec.Decision = DecisionInsufficientData
		ec.Message = "Insufficient data: age required"
	case *age < 40:
		ec.Decision = DecisionIneligible
		ec.Message = "Not eligible: age under 40"
	case *age < 50:
		ec.Decision = DecisionConditional
		ec.Message = "Conditionally eligible: repeat testing after weight loss; eligible if high-risk markers do not reverse"
	default:
		ec.Decision = DecisionEligible
		ec.Message = "Eligible after achieving 5-10% weight loss"
	}

	return &ec
}
