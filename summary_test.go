package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineIndex(t *testing.T, lines []string, prefix string) int {
	t.Helper()
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	t.Fatalf("no line starting with %q", prefix)
	return -1
}

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	a := computeAll(prediabeticRaw())
	text := buildSummary(a, nil, "Tool", "Disclaimer text")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	assert.Equal(t, "Tool", lines[0])
	assert.Equal(t, "Demographics: age 52 y, sex female, ethnicity White", lines[1])
	assert.Equal(t, "Weight 100.0 kg, height 170.0 cm, BMI 34.6 kg/m², waist 95.0 cm", lines[2])
	assert.Equal(t, "Disclaimer text", lines[len(lines)-1])

	step1 := lineIndex(t, lines, "Step 1 - OGTT indicated: Yes")
	step2 := lineIndex(t, lines, "Step 2 - Metabolic syndrome: Present (3/5 criteria)")
	step3 := lineIndex(t, lines, "Step 3 - High risk: Yes")
	step4 := lineIndex(t, lines, "Step 4 - Eligible after achieving 5-10% weight loss")
	indices := lineIndex(t, lines, "Indices:")
	assert.True(t, step1 < step2 && step2 < step3 && step3 < step4 && step4 < indices)

	assert.Equal(t, "  - Fasting glucose 100-125 mg/dL", lines[step1+1])
	assert.Equal(t, "  Exact risk: 52.8%", lines[step3+1])
	assert.Equal(t, "  - [danger] IGT + 1-h glucose >155 mg/dL + metabolic syndrome [52.8%]", lines[step3+2])
	assert.Equal(t, "  Weight-loss target: 5.0-10.0 kg", lines[step4+1])

	assert.Contains(t, text, "  - [warn] Metabolic syndrome\n")
	assert.NotContains(t, text, "Compared with baseline")
}

func TestBuildSummaryAbsentValues(t *testing.T) {
	t.Parallel()

	text := buildSummary(computeAll(RawAssessment{}), nil, "Tool", "Disclaimer text")

	assert.Contains(t, text, "Demographics: age — y, sex unknown, ethnicity unknown\n")
	assert.Contains(t, text, "Weight — kg, height — cm, BMI — kg/m², waist — cm\n")
	assert.Contains(t, text, "Step 1 - OGTT indicated: No\n")
	assert.Contains(t, text, "Step 2 - Metabolic syndrome: Absent (0/5 criteria)\n")
	assert.Contains(t, text, "Step 3 - High risk: No\n")
	assert.Contains(t, text, "Step 4 - Not applicable: no high-risk markers identified\n")
	assert.Contains(t, text, "  Matsuda index: — (≤ 4.3 insulin resistance)\n")
	assert.Contains(t, text, "  HOMA-IR: — (> 4.65 insulin resistance)\n")
	assert.NotContains(t, text, "Exact risk")
	assert.NotContains(t, text, "Weight-loss target")
	assert.True(t, strings.HasSuffix(text, "Disclaimer text\n"))
}

func TestBuildSummaryFlagsIndices(t *testing.T) {
	t.Parallel()

	raw := RawAssessment{
		Glucose: RawSeries{T0: value(90), T30: value(150), T60: value(180), T120: value(130)},
		Insulin: RawSeries{T0: value(10), T30: value(60), T60: value(80), T120: value(50)},
	}
	text := buildSummary(computeAll(raw), nil, "Tool", "Disclaimer")

	assert.Contains(t, text, "  Matsuda index: 4.02 * (≤ 4.3 insulin resistance)\n")
	assert.Contains(t, text, "  HOMA-IR: 2.22 (> 4.65 insulin resistance)\n")
	assert.Contains(t, text, "  Insulinogenic index: 0.83 (≤ 0.82 low early insulin response)\n")
	assert.Contains(t, text, "  PG AUC: 297.5 (weighted glucose mg/dL (0, 30, 60, 120 min))\n")
}

func TestBuildSummaryComparison(t *testing.T) {
	t.Parallel()

	baseline := captureBaseline(computeAll(prediabeticRaw()), time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))

	raw := prediabeticRaw()
	raw.Weight = value(92)
	raw.Glucose = RawSeries{T0: value(92), T30: value(140), T60: value(150), T90: value(120), T120: value(110)}
	a := computeAll(raw)

	text := buildSummary(a, compareBaseline(&baseline, a), "Tool", "Disclaimer")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	header := lineIndex(t, lines, "Compared with baseline of 01/15/2026 10:00:")
	require.Greater(t, header, lineIndex(t, lines, "Indices:"))
	assert.Equal(t, "  Weight change: 8.0%", lines[header+1])
	assert.Equal(t, "  High-risk status reversed", lines[header+2])
	assert.Contains(t, text, "  - IFG + IGT [>50%]\n")
	assert.Contains(t, text, "  Weight: 100.00 -> 92.00\n")
	assert.Equal(t, "Disclaimer", lines[len(lines)-1])
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, placeholder, formatValue(nil, 2))
	assert.Equal(t, "4.02", formatValue(ptr(4.0202), 2))
	assert.Equal(t, "1012", formatValue(ptr(1011.93), 0))
	assert.Equal(t, "34.6", formatValue(ptr(34.602), 1))
}
