package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

// The assessment is a form document, not a FHIR resource, so there is no prefetch
// template an EHR could resolve for it.
const usageRequirements = `Send the measurements as prefetch.assessment, a JSON object with the ` +
	`fields age, sex, ethnicity, weight, height, waist, systolic, diastolic, triglycerides, hdl, ` +
	`hba1c, the history flags, and glucose/insulin series keyed by minute ("0" to "120"). ` +
	`Requests without it return no cards.`

func cdsServices(c echo.Context) error {
	// Build basic Hook response
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Hook:              "patient-view",
				Title:             "OGTT Risk Stratification",
				Description:       "Stratifies type 2 diabetes risk from OGTT glucose/insulin values and metabolic markers. Measurements are not fetched from FHIR; the caller posts them as prefetch.assessment.",
				Id:                "ogtt-risk",
				Prefetch:          map[string]string{},
				UsageRequirements: usageRequirements,
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}

func version(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": appVersion})
}
