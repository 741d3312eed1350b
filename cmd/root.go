// =============================================================================
// Sephpa - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('generate', 'validate',
// 'version') are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sephpa)
//   ├── generateCmd (sephpa generate)
//   ├── validateCmd (sephpa validate)
//   └── versionCmd (sephpa version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sephpa",
	Short: "Sephpa - Generate SEPA direct-debit (pain.008) files from payment batches",
	Long: `Sephpa turns tabular payment batches (CSV or XLSX) into SEPA direct-debit
initiation documents (pain.008.002.02) ready for submission to a bank.

Each batch file in the input directory is matched to a creditor configuration
by file name pattern. The creditor configuration supplies the collection-wide
settings (creditor identity, scheme, sequence type); the batch supplies the
per-payment records (debtor, mandate, amount). Every payment is validated
before it enters the document.

Example Usage:
  sephpa generate                    # Process all batch files in the input directory
  sephpa generate --config ./my.yaml # Use a custom configuration file
  sephpa validate                    # Check configs and batches without writing output`,

	Run: func(cmd *cobra.Command, args []string) {
		// Without a subcommand, just print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
