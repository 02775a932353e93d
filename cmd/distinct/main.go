// Distinct - a maximally distinct colour set generator
//
// Distinct generates sets of colours that are as far apart as possible in
// perceptual colour space and assigns them to the selectors of a stylesheet.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/distinct/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
