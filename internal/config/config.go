package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "stoichcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// InputConfig describes the source dataset: where it lives, how it is
// delimited, and which columns carry the grouping factors and measured values.
type InputConfig struct {
	Source      string   `yaml:"source" envconfig:"SOURCE"`
	Delimiter   string   `yaml:"delimiter" envconfig:"DELIMITER" validate:"required,len=1"`
	GroupFields []string `yaml:"group_fields" envconfig:"GROUP_FIELDS" validate:"required,min=1"`
	ValueFields []string `yaml:"value_fields" envconfig:"VALUE_FIELDS" validate:"required,len=3"`
}

// ReportConfig contains report output configuration
type ReportConfig struct {
	Title    string   `yaml:"title" envconfig:"TITLE"`
	Formats  []string `yaml:"formats" envconfig:"FORMATS" validate:"required,dive,oneof=html csv xlsx"`
	Footnote string   `yaml:"footnote" envconfig:"FOOTNOTE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Load loads configuration from an optional YAML file and the environment.
// Precedence: environment variables (prefix STOICH) over file values over
// built-in defaults.
//
// Defaults live in applyDefaults rather than envconfig `default` tags:
// envconfig applies a `default` tag whenever the env var is unset, which
// would silently reset every file-provided value on a defaulted field.
// Without the tags the env pass only touches fields an env var actually
// sets, and the defaults fill what is still unset afterwards.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, apperrors.NewConfigError("failed to load config from file", err).
					WithContext("path", configFile)
			}
			cfg = *fileCfg
		}
	}

	if err := envconfig.Process("STOICH", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills every field still unset after the file and env passes.
func (c *Config) applyDefaults() {
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = ","
	}
	if len(c.Input.GroupFields) == 0 {
		c.Input.GroupFields = []string{"site", "date", "treatment"}
	}
	if len(c.Input.ValueFields) == 0 {
		c.Input.ValueFields = []string{"C", "N", "P"}
	}
	if c.Report.Title == "" {
		c.Report.Title = "Nutrient concentrations by site, collection period, and treatment"
	}
	if len(c.Report.Formats) == 0 {
		c.Report.Formats = []string{"html", "csv", "xlsx"}
	}
	if c.Report.Footnote == "" {
		c.Report.Footnote = "Values are mean ± standard error; NA indicates no valid observations."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/nutrient-report.log"
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = "reports"
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the configuration against the struct-tag rules
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewConfigError(
				fmt.Sprintf("invalid config field %s (%s)", first.Namespace(), first.Tag()), err)
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}
