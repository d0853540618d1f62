package main

type riskRule struct {
	Label     string
	Severity  Severity
	ExactRisk string
	Match     func(m RiskMarkers) bool
}

// Order matters: the exact risk reported is taken from the first matching danger rule.
var riskRules = []riskRule{
	{
		Label:     "IGT + 1-h glucose >155 mg/dL + metabolic syndrome",
		Severity:  SeverityDanger,
		ExactRisk: "52.8%",
		Match: func(m RiskMarkers) bool {
			return m.IGT && m.OneHourHigh && m.MetabolicSyndrome
		},
	},
	{
		Label:     "IFG + IGT",
		Severity:  SeverityDanger,
		ExactRisk: ">50%",
		Match: func(m RiskMarkers) bool {
			return m.IFG && m.IGT
		},
	},
	{
		Label:     "IFG + 1-h glucose >155 mg/dL + metabolic syndrome",
		Severity:  SeverityDanger,
		ExactRisk: "37.8%",
		Match: func(m RiskMarkers) bool {
			return m.IFG && m.OneHourHigh && m.MetabolicSyndrome
		},
	},
	{
		Label:    "IFG/IGT + 1-h glucose >155 mg/dL + HbA1c 6.0-6.4%",
		Severity: SeverityDanger,
		Match: func(m RiskMarkers) bool {
			return (m.IGT || m.IFG) && m.OneHourHigh && m.A1cHigh
		},
	},
	{
		Label:    "IFG/IGT + 1-h glucose >155 mg/dL + reduced beta-cell function",
		Severity: SeverityDanger,
		Match: func(m RiskMarkers) bool {
			return (m.IGT || m.IFG) && m.OneHourHigh && (m.IGILow || m.FirstPhaseLow)
		},
	},
	{
		Label:    "Impaired fasting glucose (100-125 mg/dL)",
		Severity: SeverityWarn,
		Match: func(m RiskMarkers) bool {
			return m.IFG
		},
	},
	{
		Label:    "Impaired glucose tolerance (2-h 140-199 mg/dL)",
		Severity: SeverityWarn,
		Match: func(m RiskMarkers) bool {
			return m.IGT
		},
	},
	{
		Label:    "1-h glucose >155 mg/dL",
		Severity: SeverityWarn,
		Match: func(m RiskMarkers) bool {
			return m.OneHourHigh
		},
	},
	{
		Label:    "Metabolic syndrome",
		Severity: SeverityWarn,
		Match: func(m RiskMarkers) bool {
			return m.MetabolicSyndrome
		},
	},
}

func inRange(v *float64, min, max float64, maxInclusive bool) bool {
	if v == nil || *v < min {
		return false
	}
	if maxInclusive {
		return *v <= max
	}
	return *v < max
}

func (a *Assessment) riskMarkers() RiskMarkers {
	g := a.OGTT.Glucose
	idx := a.Indices

	return RiskMarkers{
		IFG:               inRange(g.T0, 100, 126, false),
		IGT:               inRange(g.T120, 140, 200, false),
		OneHourHigh:       g.T60 != nil && *g.T60 > 155,
		A1cHigh:           inRange(a.Profile.HbA1c, 6.0, 6.4, true),
		IGILow:            idx.IGI != nil && *idx.IGI <= 0.82,
		FirstPhaseLow:     idx.Stumvoll1 != nil && *idx.Stumvoll1 <= 1007,
		MetabolicSyndrome: a.Criteria.MetabolicSyndrome != nil && a.Criteria.MetabolicSyndrome.Evaluation,
	}
}

func (a *Assessment) riskStratification() *RiskStratification {
	/*
	 * Every rule in riskRules is evaluated and every match is reported.
	 * High risk if any danger rule matched; exact risk from the first matching
	 * danger rule that carries one.
	 */

	rs := RiskStratification{
		Markers: a.riskMarkers(),
		Flags:   []RiskFlag{},
	}

	for _, rule := range riskRules {
		if !rule.Match(rs.Markers) {
			continue
		}
		rs.Flags = append(rs.Flags, RiskFlag{
			Label:     rule.Label,
			Severity:  rule.Severity,
			ExactRisk: rule.ExactRisk,
		})
		if rule.Severity == SeverityDanger {
			rs.Evaluation = true
			if rs.ExactRisk == "" {
				rs.ExactRisk = rule.ExactRisk
			}
		}
	}

	return &rs
}

// flagLabels renders flags for display and baseline comparison.
func (rs *RiskStratification) flagLabels() []string {
	labels := make([]string, 0, len(rs.Flags))
	for _, flag := range rs.Flags {
		labels = append(labels, flag.String())
	}
	return labels
}
