// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import "testing"

func TestFormatCenti(t *testing.T) {
	tests := []struct {
		name     string
		value    int32
		expected string
	}{
		{name: "zero", value: 0, expected: "0.00"},
		{name: "positive", value: 5503, expected: "55.03"},
		{name: "positive single digit fraction", value: 5530, expected: "55.30"},
		{name: "negative", value: -712, expected: "-7.12"},
		{name: "negative below one", value: -5, expected: "-0.05"},
		{name: "temperature max", value: 12500, expected: "125.00"},
		{name: "temperature min", value: -4000, expected: "-40.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCenti(tt.value); got != tt.expected {
				t.Errorf("formatCenti(%d): expected %q, got %q", tt.value, tt.expected, got)
			}
		})
	}
}
