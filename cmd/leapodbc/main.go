// Package main provides the leapodbc CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapodbc/internal/cli"

	// Dialects register themselves on import.
	_ "github.com/leapstack-labs/leapodbc/pkg/dialects/generic"
	_ "github.com/leapstack-labs/leapodbc/pkg/dialects/redshift"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
