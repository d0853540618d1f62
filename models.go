package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

/**************************
 ****** CDS Services ******
 **************************/
type ServiceResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Hook              string            `json:"hook"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Id                string            `json:"id"`
	Prefetch          map[string]string `json:"prefetch"`
	UsageRequirements string            `json:"usageRequirements"`
}

/**************************
 ****** Hook Message ******
 **************************/
type HookRequest struct {
	Hook              string `json:"hook"`
	HookInstance      string `json:"hookInstance"`
	FHIRServer        string `json:"fhirServer"`
	FHIRAuthorization struct {
		AccessToken string `json:"access_token"`
	} `json:"fhirAuthorization"`
	Context struct {
		PatientId   string `json:"patientId"`
		EncounterId string `json:"encounterId"`
		UserId      string `json:"userId"`
	} `json:"context"`
	Prefetch struct {
		Assessment *RawAssessment `json:"assessment"`
	} `json:"prefetch"`
}

/****************************************
 ****** Hook Response - Foundation ******
 ****************************************/

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
}

type Category struct {
	Coding []Coding `json:"coding"`
	Text   string   `json:"text"`
}

type ResourceReference struct {
	Reference string `json:"reference"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

/*******************************
 ****** Assessment Inputs ******
 *******************************/

// RawValue holds the text of a single form field exactly as entered. JSON numbers,
// strings and null are all accepted so that parsing is left to the normalizer.
type RawValue string

type RawSeries struct {
	T0   RawValue `json:"0"`
	T30  RawValue `json:"30"`
	T60  RawValue `json:"60"`
	T90  RawValue `json:"90"`
	T120 RawValue `json:"120"`
}

// RawFlag is a checkbox value. Anything other than a recognisable "yes" is false.
type RawFlag bool

type RawAssessment struct {
	Age                 RawValue  `json:"age"`
	Sex                 RawValue  `json:"sex"`
	Ethnicity           RawValue  `json:"ethnicity"`
	Weight              RawValue  `json:"weight"`
	Height              RawValue  `json:"height"`
	Waist               RawValue  `json:"waist"`
	Systolic            RawValue  `json:"systolic"`
	Diastolic           RawValue  `json:"diastolic"`
	OnAntihypertensive  RawFlag   `json:"onAntihypertensive"`
	Triglycerides       RawValue  `json:"triglycerides"`
	HDL                 RawValue  `json:"hdl"`
	HbA1c               RawValue  `json:"hba1c"`
	GestationalDiabetes RawFlag   `json:"gestationalDiabetes"`
	Pancreatitis        RawFlag   `json:"pancreatitis"`
	MASLD               RawFlag   `json:"masld"`
	PCOS                RawFlag   `json:"pcos"`
	FamilyHistory       RawFlag   `json:"familyHistory"`
	Glucose             RawSeries `json:"glucose"`
	Insulin             RawSeries `json:"insulin"`
}

/*********************************
 ****** Normalized Entities ******
 *********************************/

type Sex string

const (
	SexFemale  Sex = "female"
	SexMale    Sex = "male"
	SexUnknown Sex = "unknown"
)

type Ethnicity string

const (
	EthnicityWhite           Ethnicity = "White"
	EthnicityAfricanAmerican Ethnicity = "African American"
	EthnicityHispanicLatino  Ethnicity = "Hispanic/Latino"
	EthnicityNativeAmerican  Ethnicity = "Native American"
	EthnicityAsianAmerican   Ethnicity = "Asian American"
	EthnicityOther           Ethnicity = "Other"
	EthnicityUnknown         Ethnicity = "unknown"
)

// PatientProfile is the normalized form of every non-OGTT field. A nil pointer
// means the value was never entered or could not be parsed.
type PatientProfile struct {
	Age                 *float64  `json:"age"`
	Sex                 Sex       `json:"sex"`
	Ethnicity           Ethnicity `json:"ethnicity"`
	Weight              *float64  `json:"weight"`
	Height              *float64  `json:"height"`
	Waist               *float64  `json:"waist"`
	Systolic            *float64  `json:"systolic"`
	Diastolic           *float64  `json:"diastolic"`
	OnAntihypertensive  bool      `json:"onAntihypertensive"`
	Triglycerides       *float64  `json:"triglycerides"`
	HDL                 *float64  `json:"hdl"`
	HbA1c               *float64  `json:"hba1c"`
	GestationalDiabetes bool      `json:"gestationalDiabetes"`
	Pancreatitis        bool      `json:"pancreatitis"`
	MASLD               bool      `json:"masld"`
	PCOS                bool      `json:"pcos"`
	FamilyHistory       bool      `json:"familyHistory"`
}

// Series holds one value per OGTT timepoint (minutes after the glucose load).
type Series struct {
	T0   *float64 `json:"0"`
	T30  *float64 `json:"30"`
	T60  *float64 `json:"60"`
	T90  *float64 `json:"90"`
	T120 *float64 `json:"120"`
}

func (s Series) values() []*float64 {
	return []*float64{s.T0, s.T30, s.T60, s.T90, s.T120}
}

// OgttSeries carries glucose in mg/dL and insulin in mU/L.
type OgttSeries struct {
	Glucose Series `json:"glucose"`
	Insulin Series `json:"insulin"`
}

type Indices struct {
	MeanGlucose *float64 `json:"meanGlucose"`
	MeanInsulin *float64 `json:"meanInsulin"`
	HOMAIR      *float64 `json:"homaIR"`
	HOMABeta    *float64 `json:"homaBeta"`
	Matsuda     *float64 `json:"matsuda"`
	IGI         *float64 `json:"igi"`
	Stumvoll1   *float64 `json:"stumvoll1"`
	Stumvoll2   *float64 `json:"stumvoll2"`
	Disposition *float64 `json:"disposition"`
	PGAUC       *float64 `json:"pgAUC"`
}

/*********************************
 ****** Step Results ******
 *********************************/

type OGTTIndication struct {
	BMIThreshold float64  `json:"bmiThreshold"`
	MeetsBMI     bool     `json:"meetsBMI"`
	RiskFactors  []string `json:"riskFactors"`
	Reasons      []string `json:"reasons"`
	Evaluation   bool     `json:"indicated"`
}

type MetabolicSyndromeCriteria struct {
	Waist          bool `json:"waist"`
	Triglycerides  bool `json:"triglycerides"`
	HDL            bool `json:"hdl"`
	BloodPressure  bool `json:"bloodPressure"`
	FastingGlucose bool `json:"fastingGlucose"`
	Count          int  `json:"count"`
	Evaluation     bool `json:"present"`
}

type Severity string

const (
	SeverityDanger Severity = "danger"
	SeverityWarn   Severity = "warn"
)

type RiskFlag struct {
	Label     string   `json:"label"`
	Severity  Severity `json:"severity"`
	ExactRisk string   `json:"exactRisk,omitempty"`
}

// String renders the flag the way it is displayed and compared across baselines:
// the label followed by any exact-risk annotation in brackets.
func (f RiskFlag) String() string {
	if f.ExactRisk == "" {
		return f.Label
	}
	return fmt.Sprintf("%s [%s]", f.Label, f.ExactRisk)
}

type RiskMarkers struct {
	IFG               bool `json:"ifg"`
	IGT               bool `json:"igt"`
	OneHourHigh       bool `json:"oneHourHigh"`
	A1cHigh           bool `json:"a1cHigh"`
	IGILow            bool `json:"igiLow"`
	FirstPhaseLow     bool `json:"firstPhaseLow"`
	MetabolicSyndrome bool `json:"metabolicSyndrome"`
}

type RiskStratification struct {
	Markers    RiskMarkers `json:"markers"`
	Flags      []RiskFlag  `json:"flags"`
	ExactRisk  string      `json:"exactRisk,omitempty"`
	Evaluation bool        `json:"highRisk"`
}

type EligibilityDecision string

const (
	DecisionNotApplicable    EligibilityDecision = "not-applicable"
	DecisionInsufficientData EligibilityDecision = "insufficient-data"
	DecisionIneligible       EligibilityDecision = "ineligible"
	DecisionConditional      EligibilityDecision = "conditional"
	DecisionEligible         EligibilityDecision = "eligible"
)

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type EligibilityCriteria struct {
	Applies          bool                `json:"applies"`
	Decision         EligibilityDecision `json:"decision"`
	Message          string              `json:"message"`
	WeightLossTarget *WeightRange        `json:"weightLossTarget"`
}

type Criteria struct {
	OGTTIndication    *OGTTIndication            `json:"ogttIndication"`
	MetabolicSyndrome *MetabolicSyndromeCriteria `json:"metabolicSyndrome"`
	Risk              *RiskStratification        `json:"risk"`
	Eligibility       *EligibilityCriteria       `json:"eligibility"`
}

// Assessment is the full derived state for one set of inputs.
type Assessment struct {
	Profile      PatientProfile `json:"profile"`
	OGTT         OgttSeries     `json:"ogtt"`
	BMI          *float64       `json:"bmi"`
	Indices      Indices        `json:"indices"`
	HOMAIRCutoff float64        `json:"homaIRCutoff"`
	Criteria     Criteria       `json:"criteria"`
}

/*******************************
 ****** Baseline Tracking ******
 *******************************/

type BaselineSnapshot struct {
	Id                string    `json:"id"`
	CapturedAt        time.Time `json:"capturedAt"`
	Weight            *float64  `json:"weight"`
	BMI               *float64  `json:"bmi"`
	MetabolicSyndrome bool      `json:"metabolicSyndrome"`
	HighRisk          bool      `json:"highRisk"`
	ExactRisk         string    `json:"exactRisk,omitempty"`
	Flags             []string  `json:"flags"`
	Matsuda           *float64  `json:"matsuda"`
	HOMAIR            *float64  `json:"homaIR"`
	IGI               *float64  `json:"igi"`
	Stumvoll1         *float64  `json:"stumvoll1"`
	PGAUC             *float64  `json:"pgAUC"`
}

type ValueChange struct {
	Name     string   `json:"name"`
	Baseline *float64 `json:"baseline"`
	Current  *float64 `json:"current"`
}

type Comparison struct {
	Baseline            BaselineSnapshot `json:"baseline"`
	WeightChangePercent *float64         `json:"weightChangePercent"`
	ReversedHighRisk    bool             `json:"reversedHighRisk"`
	NewHighRisk         bool             `json:"newHighRisk"`
	AddedFlags          []string         `json:"addedFlags"`
	RemovedFlags        []string         `json:"removedFlags"`
	Values              []ValueChange    `json:"values"`
}

/********************************
 ********** App Config **********
 ********************************/

type Config struct {
	ToolName         string       `json:"toolName"`
	Disclaimer       string       `json:"disclaimer"`
	CardSource       SourceConfig `json:"cardSource"`
	OGTTOrderCode    string       `json:"ogttOrderCode"`
	BaselineCapacity int          `json:"baselineCapacity"`
}

type SourceConfig struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

/*******************************
 ***** Unmarshal Functions *****
 *******************************/

// Custom UnmarshalJSON for RawValue type
func (v *RawValue) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))

	// Treat null as an empty field
	if text == "null" {
		*v = ""
		return nil
	}

	// Strings keep their content so the normalizer can decide
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("error parsing field value: %v", err)
		}
		*v = RawValue(s)
		return nil
	}

	// Numbers and other literals are kept verbatim
	*v = RawValue(text)
	return nil
}

// Custom UnmarshalJSON for RawFlag type
func (f *RawFlag) UnmarshalJSON(data []byte) error {
	var v RawValue
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "true", "yes", "y", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Custom UnmarshalJSON for RawSeries type. Anything other than an object leaves
// every timepoint empty.
func (s *RawSeries) UnmarshalJSON(data []byte) error {
	type series RawSeries

	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		*s = RawSeries{}
		return nil
	}

	var decoded series
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = RawSeries(decoded)
	return nil
}
