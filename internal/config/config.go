// =============================================================================
// Sephpa - Configuration Module
// =============================================================================
//
// This module loads and validates all configuration files:
//   1. Main Config (config.yaml): directories, output naming, processing
//   2. Creditor Configs (configs/*.yaml): one file per creditor, holding the
//      collection-wide settings and the batch-file matching patterns
//
// Every batch file dropped into the input directory is matched against the
// creditor configs by file name pattern; the matching config supplies the
// creditor side of the generated collections.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/firegate666/sephpa/internal/batch"
	"github.com/firegate666/sephpa/internal/sepa"
	"github.com/firegate666/sephpa/internal/sepautil"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration, loaded from the
// main config.yaml file.
type MainConfig struct {
	// InputDir is the directory scanned for batch files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated pain.008 files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed batch files are
	// moved. Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ConfigsDir is the directory containing creditor configurations.
	// Default: "./configs"
	ConfigsDir string `yaml:"configs_dir"`

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {creditor}  - Creditor code
	// Default: "{creditor}_{timestamp}_{uuid}.xml"
	OutputNameFormat string `yaml:"output_name_format"`

	// ContinueOnError determines whether to keep processing other batch
	// files when one fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`

	// MaxConcurrency is the maximum number of batch files processed
	// concurrently. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// =============================================================================
// CREDITOR CONFIGURATION STRUCTURE
// =============================================================================

// CreditorConfig holds the configuration for a single creditor. Each YAML
// file in the configs directory describes one creditor: who collects, under
// which scheme, and which batch files belong to them.
type CreditorConfig struct {
	// CreditorName is the human-readable name of the creditor.
	CreditorName string `yaml:"creditor_name"`

	// CreditorCode is a short code used in output file names and as the
	// config key.
	CreditorCode string `yaml:"creditor_code"`

	// InitiatingParty is the name written into the group header. Defaults
	// to CreditorName when empty.
	InitiatingParty string `yaml:"initiating_party"`

	// FileMatchingPatterns is a list of glob patterns; a batch file whose
	// name matches any of them is processed with this configuration.
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// CSVSettings configures CSV batch parsing for this creditor.
	CSVSettings batch.CSVSettings `yaml:"csv_settings"`

	// Collection holds the collection-wide SEPA settings.
	Collection CollectionConfig `yaml:"collection"`
}

// CollectionConfig is the YAML shape of the collection settings.
type CollectionConfig struct {
	// PaymentInfoIDPrefix is prepended to a timestamp to build the
	// payment-information id of each generated collection.
	PaymentInfoIDPrefix string `yaml:"payment_info_id_prefix"`

	// LocalInstrument is the scheme variant code, e.g. "CORE" or "B2B".
	LocalInstrument string `yaml:"local_instrument"`

	// SequenceType is one of FRST, RCUR, FNAL, OOFF.
	SequenceType string `yaml:"sequence_type"`

	// IBAN is the creditor account.
	IBAN string `yaml:"iban"`

	// BIC identifies the creditor agent.
	BIC string `yaml:"bic"`

	// CreditorID is the SEPA creditor scheme identifier.
	CreditorID string `yaml:"creditor_id"`

	// Currency is an optional 3-letter currency code.
	Currency string `yaml:"currency,omitempty"`

	// BatchBooking is an optional "true"/"false" flag.
	BatchBooking string `yaml:"batch_booking,omitempty"`

	// CategoryPurpose is an optional category purpose code.
	CategoryPurpose string `yaml:"category_purpose,omitempty"`

	// UltimateCreditor is an optional ultimate creditor name.
	UltimateCreditor string `yaml:"ultimate_creditor,omitempty"`

	// RequestedCollectionDate is an optional date (YYYY-MM-DD). When empty
	// the generation date is used.
	RequestedCollectionDate string `yaml:"requested_collection_date,omitempty"`
}

// Settings builds the SEPA collection settings for one generated collection.
// paymentInfoID is the fully resolved payment-information id.
func (c *CreditorConfig) Settings(paymentInfoID string) sepa.CollectionSettings {
	return sepa.CollectionSettings{
		PaymentInfoID:           paymentInfoID,
		LocalInstrument:         c.Collection.LocalInstrument,
		SequenceType:            sepa.SequenceType(c.Collection.SequenceType),
		CreditorName:            c.CreditorName,
		CreditorIBAN:            c.Collection.IBAN,
		CreditorBIC:             c.Collection.BIC,
		CreditorID:              c.Collection.CreditorID,
		Currency:                c.Collection.Currency,
		BatchBooking:            c.Collection.BatchBooking,
		CategoryPurpose:         c.Collection.CategoryPurpose,
		UltimateCreditor:        c.Collection.UltimateCreditor,
		RequestedCollectionDate: c.Collection.RequestedCollectionDate,
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults, and creates any missing directories.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := ensureDirectories(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ConfigsDir == "" {
		config.ConfigsDir = "./configs"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{creditor}_{timestamp}_{uuid}.xml"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// ensureDirectories creates the configured directories if they are missing.
func ensureDirectories(config *MainConfig) error {
	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.InputArchiveDir,
		config.ConfigsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// LoadCreditorConfigs loads all creditor configurations from a directory,
// keyed by creditor code (falling back to the file name).
func LoadCreditorConfigs(configsDir string) (map[string]*CreditorConfig, error) {
	configs := make(map[string]*CreditorConfig)

	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := loadCreditorConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := config.CreditorCode
		if key == "" {
			key = filepath.Base(file)
		}

		configs[key] = config
	}

	return configs, nil
}

// loadCreditorConfig loads and validates a single creditor configuration.
func loadCreditorConfig(filePath string) (*CreditorConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config CreditorConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applyCreditorConfigDefaults(&config)

	if err := validateCreditorConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyCreditorConfigDefaults sets default values for creditor config.
func applyCreditorConfigDefaults(config *CreditorConfig) {
	if config.InitiatingParty == "" {
		config.InitiatingParty = config.CreditorName
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.Collection.PaymentInfoIDPrefix == "" {
		config.Collection.PaymentInfoIDPrefix = config.CreditorCode
	}
}

// validateCreditorConfig runs the syntactic identifier checks on the
// creditor side. A mistyped IBAN should fail at load time, not when the
// bank rejects the file.
func validateCreditorConfig(config *CreditorConfig) error {
	if config.CreditorName == "" {
		return fmt.Errorf("creditor_name is required")
	}

	if config.Collection.IBAN != "" && !sepautil.IsValidIBAN(config.Collection.IBAN) {
		return fmt.Errorf("invalid creditor IBAN: %s", config.Collection.IBAN)
	}
	if config.Collection.BIC != "" && !sepautil.IsValidBIC(config.Collection.BIC) {
		return fmt.Errorf("invalid creditor BIC: %s", config.Collection.BIC)
	}
	if config.Collection.CreditorID != "" && !sepautil.IsValidCreditorID(config.Collection.CreditorID) {
		return fmt.Errorf("invalid creditor identifier: %s", config.Collection.CreditorID)
	}

	if seqTp := config.Collection.SequenceType; seqTp != "" && !sepa.SequenceType(seqTp).Valid() {
		return fmt.Errorf("invalid sequence_type: %s", seqTp)
	}

	return nil
}
