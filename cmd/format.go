// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import "fmt"

// formatCenti renders a hundredths-scaled integer as a decimal string,
// e.g. 5503 -> "55.03" and -712 -> "-7.12". The driver only hands out
// scaled integers, so this is the one place readings become text.
func formatCenti(v int32) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
