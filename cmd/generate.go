// =============================================================================
// Sephpa - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main command for turning
// payment batches into pain.008 documents.
//
// COMMAND USAGE:
//   sephpa generate [flags]
//
// FLAGS:
//   --dry-run   : Run the pipeline without writing output or archiving
//   --file      : Process only the given batch file
//   --creditor  : Process only batches for the given creditor code
//
// PROCESSING PIPELINE:
//   1. Load configuration files
//   2. Discover batch files in the input directory
//   3. Match each batch to a creditor configuration
//   4. For each batch (concurrently): parse, validate, generate, write,
//      archive
//   5. Print a summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/firegate666/sephpa/internal/config"
	"github.com/firegate666/sephpa/internal/generator"
	"github.com/firegate666/sephpa/pkg/utils"
	"github.com/spf13/cobra"
)

// dryRun runs the pipeline without writing output files.
var dryRun bool

// onlyFile restricts processing to a single batch file.
var onlyFile string

// onlyCreditor restricts processing to a single creditor code.
var onlyCreditor string

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate pain.008 files from payment batches",
	Long: `The generate command scans the input directory for batch files (CSV or
XLSX), matches them to the appropriate creditor configuration, validates
every payment, and writes one pain.008.002.02 document per batch.

Batches are processed concurrently. Errors in one batch do not affect the
processing of others.

On successful processing:
  - The generated XML is placed in the output directory
  - The original batch file is moved to the input archive

On error:
  - The batch file remains in the input directory
  - Processing continues for other batches`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files or archiving",
	)

	generateCmd.Flags().StringVar(
		&onlyFile,
		"file",
		"",
		"Process only the given batch file",
	)

	generateCmd.Flags().StringVar(
		&onlyCreditor,
		"creditor",
		"",
		"Process only batches matching the given creditor code",
	)
}

// runGenerate orchestrates the generation pipeline across all batch files.
func runGenerate() error {
	startTime := time.Now()
	logger := &generator.StdoutLogger{Verbose: verbose}

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Sephpa ===")
	fmt.Println("Loading configuration...")

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	creditorConfigs, err := config.LoadCreditorConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load creditor configs: %w", err)
	}

	fmt.Printf("Loaded %d creditor configuration(s)\n", len(creditorConfigs))

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	inputFiles, err := discoverBatchFiles(mainConfig)
	if err != nil {
		return err
	}

	if len(inputFiles) == 0 {
		fmt.Println("No batch files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d batch file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================

	fmt.Println("Processing batches...")

	var wg sync.WaitGroup
	results := make(chan generator.Result, len(inputFiles))
	semaphore := make(chan struct{}, mainConfig.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(batchPath string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			creditorConfig := generator.FindCreditorConfig(batchPath, creditorConfigs)
			if creditorConfig == nil {
				results <- generator.Result{
					FilePath: batchPath,
					Error:    fmt.Errorf("no matching creditor configuration found"),
				}
				return
			}

			if onlyCreditor != "" && creditorConfig.CreditorCode != onlyCreditor {
				return
			}

			gen := generator.New(batchPath, creditorConfig, mainConfig, logger)
			gen.SetDryRun(dryRun)
			results <- gen.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND PRINT SUMMARY
	// =========================================================================

	var successCount, errorCount int

	for result := range results {
		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s -> %s (%d payments, control sum %s)\n",
				filepath.Base(result.FilePath), result.OutputFile,
				result.Stats.PaymentsAccepted, result.Stats.ControlSum)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total batches:   %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if errorCount > 0 {
		return fmt.Errorf("%d batch(es) failed", errorCount)
	}

	return nil
}

// discoverBatchFiles returns the batch files to process, honoring --file.
func discoverBatchFiles(mainConfig *config.MainConfig) ([]string, error) {
	if onlyFile != "" {
		return []string{onlyFile}, nil
	}

	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir,
		mainConfig.InputArchiveDir)

	files, err := fm.DiscoverInputFiles(".csv", ".xlsx")
	if err != nil {
		return nil, fmt.Errorf("failed to discover batch files: %w", err)
	}

	return files, nil
}
