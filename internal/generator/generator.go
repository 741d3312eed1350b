// =============================================================================
// Sephpa - Generator Module
// =============================================================================
//
// This module contains the per-file pipeline: it turns one batch file into
// one pain.008 document.
//
// GENERATION PIPELINE:
//   1. Parse the batch file (CSV or XLSX)
//   2. Build the direct-debit file envelope and the collection from the
//      creditor configuration
//   3. Add every payment (validation happens here, per payment)
//   4. Generate the XML document
//   5. Write the output file
//   6. Archive the processed batch file
//
// CONCURRENCY:
//   Each batch file is processed in its own goroutine by the generate
//   command. A Generator instance handles exactly one file and shares no
//   mutable state, so instances are safe to run concurrently.
//
// =============================================================================

package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/firegate666/sephpa/internal/batch"
	"github.com/firegate666/sephpa/internal/config"
	"github.com/firegate666/sephpa/internal/sepa"
	"github.com/firegate666/sephpa/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single batch file.
type Result struct {
	// FilePath is the path to the batch file that was processed.
	FilePath string

	// OutputFile is the path to the generated XML file. Empty on failure.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about the processing of one batch file.
type Stats struct {
	// RowsRead is the number of data rows read from the batch file.
	RowsRead int

	// PaymentsAccepted is the number of payments that passed validation.
	PaymentsAccepted int

	// PaymentsRejected is the number of rows rejected by validation or
	// row conversion.
	PaymentsRejected int

	// ControlSum is the formatted control sum of the generated collection.
	ControlSum string

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the interface the generator reports progress through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// StdoutLogger is the default Logger. It writes to stdout and drops Debug
// messages unless Verbose is set.
type StdoutLogger struct {
	Verbose bool
}

func (l *StdoutLogger) Debug(msg string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *StdoutLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *StdoutLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *StdoutLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// GENERATOR STRUCTURE
// =============================================================================

// Generator handles the conversion of a single batch file into a pain.008
// document.
type Generator struct {
	// batchPath is the path to the input batch file.
	batchPath string

	// creditorConfig is the creditor-specific configuration.
	creditorConfig *config.CreditorConfig

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// logger reports progress.
	logger Logger

	// now supplies timestamps for ids, file names and the SEPA clock.
	now func() time.Time

	// archive moves the processed batch file away on success.
	archive bool

	// writeOutput controls whether the generated document is written to
	// disk. Disabled for dry runs and the validate command.
	writeOutput bool
}

// New creates a new Generator for one batch file.
func New(batchPath string, creditorConfig *config.CreditorConfig, mainConfig *config.MainConfig, logger Logger) *Generator {
	if logger == nil {
		logger = &StdoutLogger{}
	}
	return &Generator{
		batchPath:      batchPath,
		creditorConfig: creditorConfig,
		mainConfig:     mainConfig,
		logger:         logger,
		now:            time.Now,
		archive:        true,
		writeOutput:    true,
	}
}

// SetClock replaces the generator's time source. Used by tests.
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// SetDryRun disables output writing and archiving; the pipeline still
// parses, validates and renders the document.
func (g *Generator) SetDryRun(dryRun bool) {
	g.writeOutput = !dryRun
	g.archive = !dryRun
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the generation pipeline for the batch file.
func (g *Generator) Run() Result {
	startTime := g.now()
	result := Result{
		FilePath: g.batchPath,
	}

	// =========================================================================
	// STEP 1: PARSE BATCH FILE
	// =========================================================================

	g.logger.Info("Processing batch: %s", g.batchPath)

	parsed, err := batch.Parse(g.batchPath, g.creditorConfig.CSVSettings)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse batch: %w", err)
		return result
	}

	result.Stats.RowsRead = len(parsed.Rows)
	g.logger.Debug("Read %d rows from %s", len(parsed.Rows), filepath.Base(g.batchPath))

	// =========================================================================
	// STEP 2: BUILD FILE ENVELOPE AND COLLECTION
	// =========================================================================

	paymentInfoID := fmt.Sprintf("%s-%s",
		g.creditorConfig.Collection.PaymentInfoIDPrefix,
		g.now().Format("20060102150405"))

	file := sepa.NewDirectDebitFile("", g.creditorConfig.InitiatingParty)
	file.SetClock(g.now)

	collection, err := file.AddCollection(g.creditorConfig.Settings(paymentInfoID))
	if err != nil {
		result.Error = fmt.Errorf("invalid collection settings: %w", err)
		return result
	}

	// =========================================================================
	// STEP 3: ADD PAYMENTS
	// =========================================================================
	// Each payment is validated on insertion. Rejected rows are reported
	// with their line numbers; whether they fail the whole batch depends on
	// the continue_on_error setting.

	var rowErrors []error

	for _, row := range parsed.Rows {
		payment, err := row.Payment()
		if err != nil {
			rowErrors = append(rowErrors, err)
			continue
		}

		if err := collection.AddPayment(payment); err != nil {
			rowErrors = append(rowErrors, fmt.Errorf("line %d: %w", row.Line, err))
		}
	}

	result.Stats.PaymentsAccepted = collection.PaymentCount()
	result.Stats.PaymentsRejected = len(rowErrors)

	for _, rowErr := range rowErrors {
		g.logger.Warn("Rejected payment: %v", rowErr)
	}

	if len(rowErrors) > 0 && !g.mainConfig.ContinueOnError {
		result.Error = fmt.Errorf("batch rejected: %d of %d rows failed validation",
			len(rowErrors), len(parsed.Rows))
		return result
	}

	if collection.PaymentCount() == 0 {
		result.Error = fmt.Errorf("batch contains no valid payments")
		return result
	}

	// =========================================================================
	// STEP 4: GENERATE XML DOCUMENT
	// =========================================================================

	document := file.Generate()
	result.Stats.ControlSum = collection.TotalAmount().StringFixed(2)
	g.logger.Debug("Generated document: %d payments, control sum %s",
		collection.PaymentCount(), result.Stats.ControlSum)

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	if g.writeOutput {
		fileName := utils.OutputFileName(g.mainConfig.OutputNameFormat,
			g.creditorConfig.CreditorCode, g.now())
		outputPath := filepath.Join(g.mainConfig.OutputDir, fileName)

		if err := os.WriteFile(outputPath, document, 0644); err != nil {
			result.Error = fmt.Errorf("failed to write output: %w", err)
			return result
		}

		result.OutputFile = outputPath
		g.logger.Info("Wrote output to: %s", outputPath)
	}

	// =========================================================================
	// STEP 6: ARCHIVE BATCH FILE
	// =========================================================================

	if g.archive {
		fm := utils.NewFileManager(g.mainConfig.InputDir, g.mainConfig.OutputDir,
			g.mainConfig.InputArchiveDir)
		if _, err := fm.ArchiveInputFile(g.batchPath, g.now()); err != nil {
			// Archival failure is not fatal: the output exists.
			g.logger.Warn("Failed to archive batch file: %v", err)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = g.now().Sub(startTime)

	return result
}

// FindCreditorConfig finds the creditor configuration whose file matching
// patterns match the given batch file name. Returns nil when none matches.
func FindCreditorConfig(filePath string, configs map[string]*config.CreditorConfig) *config.CreditorConfig {
	fileName := filepath.Base(filePath)

	for _, creditorConfig := range configs {
		for _, pattern := range creditorConfig.FileMatchingPatterns {
			matched, err := filepath.Match(pattern, fileName)
			if err != nil {
				// Invalid pattern, skip it.
				continue
			}
			if matched {
				return creditorConfig
			}
		}
	}

	return nil
}
