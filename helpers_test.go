package main

import "strconv"

func value(v float64) RawValue {
	return RawValue(strconv.FormatFloat(v, 'f', -1, 64))
}

// prediabeticRaw matches IFG, IGT, a high 1-hour glucose and metabolic syndrome.
func prediabeticRaw() RawAssessment {
	return RawAssessment{
		Age:                value(52),
		Sex:                "female",
		Ethnicity:          "White",
		Weight:             value(100),
		Height:             value(170),
		Waist:              value(95),
		Triglycerides:      value(180),
		HDL:                value(55),
		Systolic:           value(124),
		Diastolic:          value(78),
		OnAntihypertensive: false,
		HbA1c:              value(5.9),
		Glucose: RawSeries{
			T0:   value(110),
			T30:  value(170),
			T60:  value(200),
			T90:  value(185),
			T120: value(160),
		},
		Insulin: RawSeries{
			T0:   value(12),
			T30:  value(40),
			T60:  value(70),
			T90:  value(65),
			T120: value(60),
		},
	}
}
