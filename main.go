// =============================================================================
// Sephpa - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sephpa CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   sephpa generate       - Generate pain.008 files from batches in the input directory
//   sephpa validate       - Validate configuration and batch files without output
//   sephpa version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/sepa  : Direct-debit data model, validation and generation
//   - internal/...   : Batch parsing, configuration, pipeline orchestration
//   - pkg/           : Shared utilities
//   - configs/       : Creditor-specific YAML configurations
//
// =============================================================================

package main

import (
	"github.com/firegate666/sephpa/cmd"
)

func main() {
	cmd.Execute()
}
