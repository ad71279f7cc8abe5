// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley
//
// hyt - a CLI tool for IST AG HYT-series humidity and temperature
// sensors.

package main

import (
	"os"

	"github.com/jacobbramley/ist-hyt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
