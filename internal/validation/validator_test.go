// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package validation

import (
	"strings"
	"testing"

	"github.com/mkrogh/garderobe/internal/models"
)

func TestValidateStruct_ItemAnalysis(t *testing.T) {
	valid := models.ItemAnalysis{
		Category:     models.CategoryTop,
		Type:         "Strik",
		DisplayName:  "Olivengrøn Strik",
		PrimaryColor: "Grøn",
		Compatibility: map[models.Category][]string{
			models.CategoryBottom: {"Beige", "Sort"},
		},
	}

	tests := []struct {
		name      string
		modify    func(*models.ItemAnalysis)
		wantField string
	}{
		{
			name:   "valid analysis",
			modify: func(*models.ItemAnalysis) {},
		},
		{
			name:      "unknown category",
			modify:    func(a *models.ItemAnalysis) { a.Category = "Hat" },
			wantField: "Category",
		},
		{
			name:      "empty category",
			modify:    func(a *models.ItemAnalysis) { a.Category = "" },
			wantField: "Category",
		},
		{
			name:      "color outside palette",
			modify:    func(a *models.ItemAnalysis) { a.PrimaryColor = "Lilla" },
			wantField: "PrimaryColor",
		},
		{
			name:      "missing type",
			modify:    func(a *models.ItemAnalysis) { a.Type = "" },
			wantField: "Type",
		},
		{
			name:      "missing compatibility map",
			modify:    func(a *models.ItemAnalysis) { a.Compatibility = nil },
			wantField: "Compatibility",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := valid
			tt.modify(&analysis)

			err := ValidateStruct(&analysis)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("error fields %v do not include %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	analysis := models.ItemAnalysis{
		Category:     "Hat",
		PrimaryColor: "Lilla",
	}

	err := ValidateStruct(&analysis)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("empty error message")
	}
	if !strings.Contains(apiErr.Message, "Category") {
		t.Errorf("message %q does not mention the failing field", apiErr.Message)
	}
}

func TestCustomValidatorMessages(t *testing.T) {
	type req struct {
		Color string `validate:"required,color"`
	}

	err := ValidateStruct(&req{Color: "Pink"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "palette") {
		t.Errorf("message %q does not use the color template", err.Error())
	}
}
