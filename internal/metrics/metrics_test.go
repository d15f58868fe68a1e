// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/open/search", "200"))
	RecordAPIRequest("GET", "/api/open/search", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/open/search", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}

	var m dto.Metric
	obs, err := APIRequestDuration.GetMetricWithLabelValues("GET", "/api/open/search")
	if err != nil {
		t.Fatal(err)
	}
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatal(err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("duration histogram has no samples")
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordEventPublish(t *testing.T) {
	ok := EventsPublished.WithLabelValues("list.created")
	failed := EventPublishFailures.WithLabelValues("list.created")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordEventPublish("list.created", nil)
	RecordEventPublish("list.created", errors.New("broker down"))

	if d := testutil.ToFloat64(ok) - okBefore; d != 1 {
		t.Errorf("published delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failed) - failedBefore; d != 1 {
		t.Errorf("failures delta = %v, want 1", d)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	tests := []struct {
		to   string
		want float64
	}{
		{"open", 2},
		{"half-open", 1},
		{"closed", 0},
	}
	for _, tt := range tests {
		RecordCircuitBreakerTransition("events", "x", tt.to)
		if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("events")); got != tt.want {
			t.Errorf("state after %s = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestRecordSearch(t *testing.T) {
	c := SearchRequests.WithLabelValues("fuzzy", "no_match")
	before := testutil.ToFloat64(c)
	RecordSearch("fuzzy", "no_match", 0)
	if d := testutil.ToFloat64(c) - before; d != 1 {
		t.Errorf("search delta = %v, want 1", d)
	}
}
