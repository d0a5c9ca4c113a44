// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package validation

import (
	"strings"
	"testing"
)

type recommendTestRequest struct {
	UserID string  `validate:"required"`
	Theta  float64 `validate:"gte=0,lte=1"`
	TopK   int     `validate:"omitempty,min=1,max=50"`
}

type ratingTestEntry struct {
	MovieID string `validate:"required"`
	Rating  int    `validate:"min=1,max=5"`
}

type ratingsTestRequest struct {
	Ratings []ratingTestEntry `validate:"required,min=1,dive"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := recommendTestRequest{UserID: "u1", Theta: 0.5, TopK: 6}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected no validation error, got: %v", err)
	}
}

func TestValidateStruct_SingleError(t *testing.T) {
	req := recommendTestRequest{UserID: "", Theta: 0.5}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error for missing UserID")
	}

	if len(err.Errors()) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(err.Errors()))
	}

	fe := err.Errors()[0]
	if fe.Field() != "UserID" {
		t.Errorf("Expected field UserID, got %s", fe.Field())
	}
	if fe.Tag() != "required" {
		t.Errorf("Expected tag required, got %s", fe.Tag())
	}
	if !strings.Contains(fe.Error(), "required") {
		t.Errorf("Expected message to mention required, got: %s", fe.Error())
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	req := recommendTestRequest{UserID: "", Theta: 1.5, TopK: 999}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	if len(err.Errors()) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected multi-error details to contain fields list")
	}
}

func TestValidateStruct_NestedDive(t *testing.T) {
	req := ratingsTestRequest{
		Ratings: []ratingTestEntry{
			{MovieID: "m1", Rating: 5},
			{MovieID: "m2", Rating: 17},
		},
	}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error for out-of-range rating")
	}

	fe := err.Errors()[0]
	if fe.Tag() != "max" {
		t.Errorf("Expected tag max, got %s", fe.Tag())
	}
	if !strings.Contains(fe.Error(), "at most 5") {
		t.Errorf("Expected range message, got: %s", fe.Error())
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	req := recommendTestRequest{UserID: "u1", Theta: -0.2}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Details["field"] != "Theta" {
		t.Errorf("Expected field detail Theta, got %v", apiErr.Details["field"])
	}
	if !strings.Contains(apiErr.Message, "greater than or equal to") {
		t.Errorf("Expected gte message, got: %s", apiErr.Message)
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 != v2 {
		t.Error("Expected GetValidator to return the same instance")
	}
}

func TestTranslateMinMax_StringFields(t *testing.T) {
	type secretReq struct {
		Secret string `validate:"min=32"`
	}

	err := ValidateStruct(&secretReq{Secret: "short"})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	if !strings.Contains(err.Error(), "at least 32 characters") {
		t.Errorf("Expected character-count message, got: %s", err.Error())
	}
}
