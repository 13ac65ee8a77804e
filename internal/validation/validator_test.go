// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package validation

import (
	"strings"
	"testing"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,username,not_me"`
	Password string `json:"password" validate:"required,min=8"`
}

type lineRequest struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int64 `json:"amount" validate:"min=1,max=32000"`
}

type recipeRequest struct {
	Tags        []int64       `json:"tags" validate:"required,min=1,unique"`
	Ingredients []lineRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

type tagRequest struct {
	Color string `json:"color" validate:"omitempty,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,slug"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct_Signup(t *testing.T) {
	tests := []struct {
		name      string
		req       signupRequest
		wantField string
		wantTag   string
	}{
		{"valid", signupRequest{"cook@example.org", "chef.anna+1", "longenough"}, "", ""},
		{"bad email", signupRequest{"cook", "chef", "longenough"}, "email", "email"},
		{"reserved username", signupRequest{"cook@example.org", "me", "longenough"}, "username", "not_me"},
		{"reserved username any case", signupRequest{"cook@example.org", "ME", "longenough"}, "username", "not_me"},
		{"username with space", signupRequest{"cook@example.org", "chef anna", "longenough"}, "username", "username"},
		{"short password", signupRequest{"cook@example.org", "chef", "short"}, "password", "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_RecipeCollections(t *testing.T) {
	valid := recipeRequest{
		Tags:        []int64{1, 2},
		Ingredients: []lineRequest{{ID: 1, Amount: 200}, {ID: 2, Amount: 1}},
	}
	if verr := ValidateStruct(&valid); verr != nil {
		t.Fatalf("valid recipe rejected: %v", verr)
	}

	tests := []struct {
		name      string
		req       recipeRequest
		wantField string
	}{
		{"no tags", recipeRequest{Tags: nil, Ingredients: valid.Ingredients}, "tags"},
		{"duplicate tags", recipeRequest{Tags: []int64{1, 1}, Ingredients: valid.Ingredients}, "tags"},
		{"no ingredients", recipeRequest{Tags: valid.Tags}, "ingredients"},
		{"duplicate ingredients", recipeRequest{
			Tags:        valid.Tags,
			Ingredients: []lineRequest{{ID: 3, Amount: 1}, {ID: 3, Amount: 5}},
		}, "ingredients"},
		{"zero amount", recipeRequest{
			Tags:        valid.Tags,
			Ingredients: []lineRequest{{ID: 3, Amount: 0}},
		}, "ingredients[0].amount"},
		{"amount too large", recipeRequest{
			Tags:        valid.Tags,
			Ingredients: []lineRequest{{ID: 3, Amount: 32001}},
		}, "ingredients[0].amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := verr.FieldMessages()[tt.wantField]; !ok {
				t.Errorf("FieldMessages() = %v, want key %q", verr.FieldMessages(), tt.wantField)
			}
		})
	}
}

func TestValidateStruct_Tag(t *testing.T) {
	if verr := ValidateStruct(&tagRequest{Color: "#A1B2C3", Slug: "breakfast_1"}); verr != nil {
		t.Fatalf("valid tag rejected: %v", verr)
	}
	if verr := ValidateStruct(&tagRequest{Color: "#FFF", Slug: "ok"}); verr == nil {
		t.Error("short hex color should fail len=7")
	}
	if verr := ValidateStruct(&tagRequest{Slug: "not a slug!"}); verr == nil {
		t.Error("invalid slug accepted")
	}
}

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&signupRequest{Email: "x", Username: "me", Password: "longenough"})
	if verr == nil {
		t.Fatal("expected errors")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_FAILED" {
		t.Errorf("Code = %q, want VALIDATION_FAILED", apiErr.Code)
	}
	if len(apiErr.Details) != 2 {
		t.Errorf("Details = %v, want email and username", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "email must be a valid email address") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestNewFieldError(t *testing.T) {
	verr := NewFieldError("current_password", "invalid", "current_password is incorrect")
	msgs := verr.FieldMessages()["current_password"]
	if len(msgs) != 1 || msgs[0] != "current_password is incorrect" {
		t.Errorf("FieldMessages() = %v", verr.FieldMessages())
	}
	if verr.Error() != "current_password is incorrect" {
		t.Errorf("Error() = %q", verr.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	verr := ValidateStruct(&recipeRequest{Tags: []int64{1}, Ingredients: []lineRequest{{ID: 1, Amount: 40000}}})
	if verr == nil {
		t.Fatal("expected error")
	}
	got := verr.Errors()[0].Error()
	want := "ingredients[0].amount must be at most 32000"
	if got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}
