package metrics_test

import (
	"strings"
	"testing"

	"assigncheck-backend/internal/shared/metrics"
)

func TestRenderPrometheusFormat(t *testing.T) {
	metrics.IncAnalysisStarted()
	metrics.IncAnalysisDegraded()
	metrics.IncExtract()
	metrics.IncExportPDF()
	metrics.ObserveAnalysisDurationMs(321)

	out := metrics.Render()

	for _, name := range []string{
		"extract_total",
		"analysis_started_total",
		"analysis_degraded_total",
		"export_pdf_total",
		"analysis_duration_ms_bucket",
		"analysis_duration_ms_sum",
		"analysis_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("metric %s missing from output:\n%s", name, out)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Fatalf("histogram +Inf bucket missing:\n%s", out)
	}
}

func TestObserveNegativeClampsToZero(t *testing.T) {
	metrics.ObserveAnalysisDurationMs(-5)
	if !strings.Contains(metrics.Render(), "analysis_duration_ms_count") {
		t.Fatalf("histogram disappeared after negative observation")
	}
}
