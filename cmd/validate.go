// =============================================================================
// Sephpa - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the full pipeline —
// configuration loading, creditor matching, batch parsing, and per-payment
// validation — without writing any output or archiving anything.
//
// COMMAND USAGE:
//   sephpa validate
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/firegate666/sephpa/internal/config"
	"github.com/firegate666/sephpa/internal/generator"
	"github.com/spf13/cobra"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and batch files without writing output",
	Long: `The validate command loads the main and creditor configurations, matches
every batch file in the input directory to a creditor, parses the batches
and validates every payment. No output files are written and nothing is
archived. The exit code is non-zero if anything fails validation.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate checks the configuration and every batch file.
func runValidate() error {
	logger := &generator.StdoutLogger{Verbose: verbose}

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	creditorConfigs, err := config.LoadCreditorConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load creditor configs: %w", err)
	}

	fmt.Printf("Configuration OK: %d creditor(s)\n", len(creditorConfigs))

	inputFiles, err := discoverBatchFiles(mainConfig)
	if err != nil {
		return err
	}

	var failed int

	for _, file := range inputFiles {
		creditorConfig := generator.FindCreditorConfig(file, creditorConfigs)
		if creditorConfig == nil {
			fmt.Printf("  ✗ %s: no matching creditor configuration\n", filepath.Base(file))
			failed++
			continue
		}

		gen := generator.New(file, creditorConfig, mainConfig, logger)
		gen.SetDryRun(true)

		result := gen.Run()
		if result.Success {
			fmt.Printf("  ✓ %s: %d payment(s), control sum %s\n",
				filepath.Base(file), result.Stats.PaymentsAccepted, result.Stats.ControlSum)
		} else {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), result.Error)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d batch(es) failed validation", failed)
	}

	return nil
}
