// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package validation

import (
	"strings"
	"testing"
)

type sampleList struct {
	Name         string `json:"name" validate:"required,notblank,max=10"`
	Visibility   *bool  `json:"visibility" validate:"required"`
	Description  string `json:"description" validate:"max=20"`
	Destinations []int  `json:"destinations" validate:"max=3,dive,gte=1"`
}

type sampleReview struct {
	Rating *int `json:"rating" validate:"required,min=1,max=10"`
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   interface{}
		wantErr string
	}{
		{"valid list", &sampleList{Name: "Trip1", Visibility: boolPtr(false)}, ""},
		{"missing name", &sampleList{Visibility: boolPtr(true)}, "name is required"},
		{"blank name", &sampleList{Name: "   ", Visibility: boolPtr(true)}, "name must not be blank"},
		{"long name", &sampleList{Name: "abcdefghijk", Visibility: boolPtr(true)}, "name must be at most 10 characters"},
		{"missing visibility", &sampleList{Name: "Trip1"}, "visibility is required"},
		{"too many destinations", &sampleList{Name: "Trip1", Visibility: boolPtr(true), Destinations: []int{1, 2, 3, 4}}, "destinations must contain at most 3 items"},
		{"bad destination id", &sampleList{Name: "Trip1", Visibility: boolPtr(true), Destinations: []int{0}}, "greater than or equal to 1"},
		{"rating ok", &sampleReview{Rating: intPtr(7)}, ""},
		{"rating zero", &sampleReview{Rating: intPtr(0)}, "rating must be at least 1"},
		{"rating eleven", &sampleReview{Rating: intPtr(11)}, "rating must be at most 10"},
		{"rating missing", &sampleReview{}, "rating is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("expected no error, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(verr.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", verr.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidationErrorAccessors(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&sampleReview{Rating: intPtr(42)})
	if verr == nil || len(verr.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", verr)
	}
	fe := verr.Errors()[0]
	if fe.Field() != "rating" || fe.Tag() != "max" || fe.Param() != "10" {
		t.Errorf("unexpected field error %s/%s/%s", fe.Field(), fe.Tag(), fe.Param())
	}
}
