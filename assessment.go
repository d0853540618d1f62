package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
)

const sessionHeader = "X-Session-Id"

type AssessmentResponse struct {
	Assessment Assessment  `json:"assessment"`
	Comparison *Comparison `json:"comparison,omitempty"`
}

// computeAll runs the full pipeline over one set of raw inputs. It has no side
// effects, so identical inputs always produce identical assessments.
func computeAll(raw RawAssessment) Assessment {
	a := Assessment{}

	// Normalize inputs and derive indices
	a.Profile, a.OGTT = normalizeAssessment(raw)
	a.BMI = bodyMassIndex(a.Profile.Weight, a.Profile.Height)
	a.Indices = computeIndices(a.OGTT)
	a.HOMAIRCutoff = homaIRCutoff(a.BMI, a.Profile.MASLD)

	// Steps 1-3 depend only on normalized inputs and indices
	a.Criteria.OGTTIndication = a.ogttIndication()
	a.Criteria.MetabolicSyndrome = a.metabolicSyndrome()
	a.Criteria.Risk = a.riskStratification()

	// Step 4 is gated on Step 3
	a.Criteria.Eligibility = a.eligibility()

	return a
}

func computeAssessment(ctx context.Context, raw RawAssessment) Assessment {
	// Create span
	span, _ := apm.StartSpan(ctx, "Compute Assessment", "Compute")
	defer span.End()

	return computeAll(raw)
}

func decodeAssessment(body io.Reader) (RawAssessment, error) {
	reqBytes, err := io.ReadAll(body)
	if err != nil {
		return RawAssessment{}, err
	}

	// Unmarshal request into struct
	var raw RawAssessment
	if err := json.Unmarshal(reqBytes, &raw); err != nil {
		return RawAssessment{}, fmt.Errorf("%w: %v", errInvalidInput, err)
	}

	return raw, nil
}

func assess(c echo.Context) error {
	// Obtains http request context
	ctx := c.Request().Context()

	raw, err := decodeAssessment(c.Request().Body)
	if err != nil {
		return inputError(c, err)
	}

	response := AssessmentResponse{
		Assessment: computeAssessment(ctx, raw),
	}

	// Compare against the session baseline, if one was captured
	if session := c.Request().Header.Get(sessionHeader); session != "" {
		if baseline, ok := baselines.Get(baselineKey(c, session)); ok {
			response.Comparison = compareBaseline(&baseline, response.Assessment)
		}
	}

	// Log evaluation results
	sendWebLog(ctx, response.Assessment, issuerFromContext(c))

	if c.QueryParam("format") == "text" {
		return c.String(http.StatusOK, buildSummary(response.Assessment, response.Comparison, config.ToolName, config.Disclaimer))
	}
	return c.JSON(http.StatusOK, response)
}

func putBaseline(c echo.Context) error {
	ctx := c.Request().Context()

	session := c.Param("session")
	if session == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errSessionRequired.Error()})
	}

	raw, err := decodeAssessment(c.Request().Body)
	if err != nil {
		return inputError(c, err)
	}

	snapshot := captureBaseline(computeAssessment(ctx, raw), time.Now())
	baselines.Capture(baselineKey(c, session), snapshot)

	return c.JSON(http.StatusOK, snapshot)
}

func getBaseline(c echo.Context) error {
	baseline, ok := baselines.Get(baselineKey(c, c.Param("session")))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": errNoBaseline.Error()})
	}
	return c.JSON(http.StatusOK, baseline)
}

func deleteBaseline(c echo.Context) error {
	if !baselines.Clear(baselineKey(c, c.Param("session"))) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": errNoBaseline.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func issuerFromContext(c echo.Context) string {
	issuer, _ := c.Get("issuer").(string)
	return issuer
}

// baselineKey scopes a session id to the token issuer, so one EHR cannot read or
// replace another's baselines.
func baselineKey(c echo.Context, session string) string {
	return issuerFromContext(c) + "|" + session
}

func inputError(c echo.Context, err error) error {
	logger(c.Request().Context(), err)
	if errors.Is(err, errInvalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusInternalServerError)
}
