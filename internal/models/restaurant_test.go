// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

package models

import (
	"reflect"
	"testing"
)

func TestCuisineList(t *testing.T) {
	tests := []struct {
		name     string
		cuisines string
		want     []string
	}{
		{"empty", "", nil},
		{"single", "North Indian", []string{"North Indian"}},
		{"trims whitespace", " North Indian ,  Chinese ", []string{"North Indian", "Chinese"}},
		{"drops empty tags", "North Indian,,Chinese,", []string{"North Indian", "Chinese"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Restaurant{Cuisines: tt.cuisines}
			if got := r.CuisineList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CuisineList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstCuisine(t *testing.T) {
	r := Restaurant{Cuisines: "Japanese, Sushi"}
	if got := r.FirstCuisine(); got != "Japanese" {
		t.Errorf("FirstCuisine() = %q, want Japanese", got)
	}
	empty := Restaurant{}
	if got := empty.FirstCuisine(); got != "" {
		t.Errorf("FirstCuisine() on empty = %q", got)
	}
}

func TestHasCuisineTag(t *testing.T) {
	r := Restaurant{Cuisines: "North Indian, Mughlai"}

	if !r.HasCuisineTag("north indian") {
		t.Error("case-insensitive match should succeed")
	}
	if !r.HasCuisineTag("Mughlai") {
		t.Error("exact tag should match")
	}
	if r.HasCuisineTag("Japanese") {
		t.Error("absent tag should not match")
	}
	if r.HasCuisineTag("") {
		t.Error("empty tag should never match")
	}
}
