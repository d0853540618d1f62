package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebLogEntryHoldsVerdictsOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	entry := newWebLogEntry(computeAll(prediabeticRaw()), "https://ehr.example.org", now)

	assert.Equal(t, "https://ehr.example.org", entry.Issuer)
	assert.Equal(t, "2026-03-01T09:30:00Z", entry.Date)
	assert.True(t, entry.OGTTIndicated)
	assert.True(t, entry.MetabolicSyndrome)
	assert.True(t, entry.HighRisk)
	assert.Equal(t, "52.8%", entry.ExactRisk)
	assert.Equal(t, string(DecisionEligible), entry.Decision)

	// No measurements leave the service
	payload, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "weight")
	assert.NotContains(t, string(payload), "age")
}

func TestElkLogger(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	received := make(chan webLogEntry, 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var entry webLogEntry
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &entry)
		received <- entry
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	previous := elkUrl
	elkUrl = server.URL
	t.Cleanup(func() { elkUrl = previous })

	entry := newWebLogEntry(computeAll(prediabeticRaw()), "issuer", time.Now())
	require.NoError(t, elkLogger(context.Background(), entry))
	assert.Equal(t, entry, <-received)

	status.Store(http.StatusBadRequest)
	assert.Error(t, elkLogger(context.Background(), entry))
}
