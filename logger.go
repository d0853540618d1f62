package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmechov4"
	"go.elastic.co/apm/module/apmzap"
	"go.uber.org/zap"
)

var (
	zapLogger *zap.Logger
	appEnv    string = os.Getenv("APP_ENV")
	appName   string = getEnv("APP_NAME", "ogtt-cds")
	apmActive string = os.Getenv("ELASTIC_APM_ACTIVE")
	elkUrl    string = os.Getenv("ELK_URL")
)

func init() {
	var err error
	zapLogger, err = zap.NewProduction(zap.WrapCore((&apmzap.Core{}).WrapCore))
	if err != nil {
		log.Fatalf("Can't initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
}

// initAPM replaces the default tracer. Requests are only traced when
// ELASTIC_APM_ACTIVE is "true"; the remaining options come from ELASTIC_APM_* variables.
func initAPM(e *echo.Echo) error {
	apm.DefaultTracer.Close()
	if apmActive != "true" {
		zapLogger.Info("APM tracing disabled")
		return nil
	}

	tracer, err := apm.NewTracerOptions(apm.TracerOptions{
		ServiceName:        appName,
		ServiceVersion:     appVersion,
		ServiceEnvironment: appEnv,
	})
	if err != nil {
		return fmt.Errorf("error creating APM tracer: %w", err)
	}

	zapLogger.Info("APM tracing enabled",
		zap.String("service", appName),
		zap.String("version", appVersion),
		zap.String("environment", appEnv))
	e.Use(apmechov4.Middleware(apmechov4.WithTracer(tracer)))

	return nil
}

// logger records err against the active transaction, if any.
func logger(ctx context.Context, err error) {
	fields := append([]zap.Field{zap.Error(err)}, apmzap.TraceContext(ctx)...)
	zapLogger.Error("request failed", fields...)
	if apmActive == "true" {
		apm.CaptureError(ctx, err).Send()
	}
}

// webLogEntry is the de-identified evaluation record shipped to ELK. It holds
// verdicts only, never measurements or patient identifiers.
type webLogEntry struct {
	Application       string   `json:"application"`
	Environment       string   `json:"environment"`
	Level             string   `json:"level"`
	Date              string   `json:"date"`
	Issuer            string   `json:"issuer,omitempty"`
	OGTTIndicated     bool     `json:"ogttIndicated"`
	MetabolicSyndrome bool     `json:"metabolicSyndrome"`
	HighRisk          bool     `json:"highRisk"`
	ExactRisk         string   `json:"exactRisk,omitempty"`
	Decision          string   `json:"decision"`
	Flags             []string `json:"flags"`
}

// logIndex routes everything outside production to the test index.
func logIndex() string {
	if appEnv == "prod" {
		return "prod"
	}
	return "test"
}

func newWebLogEntry(a Assessment, issuer string, now time.Time) webLogEntry {
	criteria := a.Criteria
	return webLogEntry{
		Application:       appName,
		Environment:       logIndex(),
		Level:             "info",
		Date:              now.Format(time.RFC3339),
		Issuer:            issuer,
		OGTTIndicated:     criteria.OGTTIndication.Evaluation,
		MetabolicSyndrome: criteria.MetabolicSyndrome.Evaluation,
		HighRisk:          criteria.Risk.Evaluation,
		ExactRisk:         criteria.Risk.ExactRisk,
		Decision:          string(criteria.Eligibility.Decision),
		Flags:             criteria.Risk.flagLabels(),
	}
}

func elkLogger(ctx context.Context, entry webLogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error encoding web log: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	resp, err := sendRequest(ctx, http.MethodPost, elkUrl, headers, bytes.NewReader(payload), 5)
	if err != nil {
		return err
	}

	body, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("web log rejected with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// sendWebLog ships the evaluation record to ELK without holding up the response.
// It is a no-op unless ELK_URL is set.
func sendWebLog(ctx context.Context, a Assessment, issuer string) {
	if elkUrl == "" {
		return
	}

	entry := newWebLogEntry(a, issuer, time.Now())

	// The request context is cancelled once the response is written
	go func() {
		if err := elkLogger(context.WithoutCancel(ctx), entry); err != nil {
			logger(ctx, err)
		}
	}()
}
