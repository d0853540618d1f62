package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Hook struct {
	Cards         []Card          `json:"cards"`
	SystemActions []SystemActions `json:"systemActions"`
}

type Card struct {
	UUID              string       `json:"uuid"`
	Summary           string       `json:"summary"`
	Detail            string       `json:"detail"`
	Indicator         string       `json:"indicator"`
	Source            Source       `json:"source"`
	SelectionBehavior string       `json:"selectionBehavior,omitempty"`
	Extension         *Extension   `json:"extension,omitempty"`
	Links             []Link       `json:"links,omitempty"`
	Suggestions       []Suggestion `json:"suggestions,omitempty"`
}

type Source struct {
	Label string  `json:"label"`
	URL   string  `json:"url,omitempty"`
	Topic *Coding `json:"topic,omitempty"`
}

type Extension struct {
	ContentType string `json:"com.epic.cdshooks.card.detail.content-type"`
}

type Suggestion struct {
	Label   string   `json:"label"`
	UUID    string   `json:"uuid"`
	Actions []Action `json:"actions"`
}

type Action struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Resource    interface{} `json:"resource"`
}

type ServiceRequest struct {
	ResourceType string            `json:"resourceType"`
	Status       string            `json:"status"`
	Intent       string            `json:"intent"`
	Category     []Category        `json:"category"`
	Code         Category          `json:"code"`
	Subject      ResourceReference `json:"subject"`
}

type SystemActions struct {
	// Define fields if needed
}

func parseCDSHooksRequest(body io.Reader) (HookRequest, error) {

	reqBytes, err := io.ReadAll(body)
	if err != nil {
		return HookRequest{}, err
	}

	// Unmarshal response into struct
	var hookRequest HookRequest
	if err := json.Unmarshal(reqBytes, &hookRequest); err != nil {
		return HookRequest{}, fmt.Errorf("%w: unable to unmarshal hooks message: %v", errInvalidInput, err)
	}

	return hookRequest, nil
}

func ogttRisk(c echo.Context) error {
	// Obtains http request context
	ctx := c.Request().Context()

	hookRequest, err := parseCDSHooksRequest(c.Request().Body)
	if err != nil {
		return inputError(c, err)
	}

	// Build basic Hook response
	hook := Hook{
		Cards:         []Card{},
		SystemActions: []SystemActions{},
	}

	// Nothing to evaluate without prefetched measurements
	if hookRequest.Prefetch.Assessment == nil {
		return c.JSON(http.StatusOK, hook)
	}

	a := computeAssessment(ctx, *hookRequest.Prefetch.Assessment)

	// Log evaluation results
	sendWebLog(ctx, a, issuerFromContext(c))

	detail := buildSummary(a, nil, config.ToolName, config.Disclaimer)
	hook.addCard(a, detail)

	// Suggest ordering the OGTT when it is indicated
	if a.Criteria.OGTTIndication.Evaluation && config.OGTTOrderCode != "" {
		hook.addOGTTSuggestion(0, hookRequest.Context.PatientId)
	}

	return c.JSON(http.StatusOK, hook)
}

func cardIndicator(a Assessment) string {
	rs := a.Criteria.Risk
	switch {
	case rs.Evaluation:
		return "critical"
	case len(rs.Flags) > 0:
		return "warning"
	default:
		return "info"
	}
}

func cardSummary(a Assessment) string {
	rs := a.Criteria.Risk
	switch {
	case rs.Evaluation && rs.ExactRisk != "":
		return fmt.Sprintf("High risk for type 2 diabetes (%s)", rs.ExactRisk)
	case rs.Evaluation:
		return "High risk for type 2 diabetes"
	case a.Criteria.OGTTIndication.Evaluation:
		return "OGTT indicated"
	default:
		return "No high-risk markers identified"
	}
}

func (h *Hook) addCard(a Assessment, detail string) {
	h.Cards = append(h.Cards, Card{
		UUID:      uuid.NewString(),
		Summary:   cardSummary(a),
		Indicator: cardIndicator(a),
		Extension: &Extension{
			ContentType: "text/plain",
		},
		Detail: detail,
		Source: Source{
			Label: config.CardSource.Label,
			URL:   config.CardSource.URL,
		},
	})
}

func (h *Hook) addOGTTSuggestion(card int, patId string) {
	// Check if suggestions list exists, if not, build it
	if h.Cards[card].Suggestions == nil {
		h.Cards[card].Suggestions = []Suggestion{}
	}

	// Build ServiceRequest suggestion
	suggestion := Suggestion{
		Label: "Order 2-hour OGTT with insulin",
		UUID:  uuid.NewString(),
		Actions: []Action{
			{
				Type:        "create",
				Description: "Oral glucose tolerance test",
				Resource: ServiceRequest{
					ResourceType: "ServiceRequest",
					Status:       "draft",
					Intent:       "proposal",
					Category: []Category{
						{
							Coding: []Coding{
								{
									System:  "http://snomed.info/sct",
									Code:    "108252007",
									Display: "Laboratory procedure",
								},
							},
						},
					},
					Code: Category{
						Coding: []Coding{
							{
								System: "urn:com.epic.cdshooks.action.code.system.preference-list-item",
								Code:   config.OGTTOrderCode,
							},
						},
					},
					Subject: ResourceReference{
						Reference: fmt.Sprintf("Patient/%s", patId),
					},
				},
			},
		},
	}

	// Append suggestion to current suggestion list
	h.Cards[card].Suggestions = append(h.Cards[card].Suggestions, suggestion)
}
