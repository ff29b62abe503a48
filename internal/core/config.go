package core

import (
	"fmt"
	"strings"

	"github.com/plancraft/plancraft/pkg/models"
	"github.com/spf13/viper"
)

// ConfigurationManager defines the interface for loading and validating the
// .plancraft.yaml configuration file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for reading
// YAML configuration files.
type viperConfigManager struct {
	// basePath is the project root where .plancraft.yaml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func defaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		PlanFilename:       "PROJECT_PLAN.md",
		DefaultProjectName: "New Project",
		ResumeMaxTasks:     3,
	}
}

// LoadGlobalConfig reads .plancraft.yaml from the base path using Viper.
// If the file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := defaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".plancraft")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("plan.filename", cfg.PlanFilename)
	v.SetDefault("defaults.project_name", cfg.DefaultProjectName)
	v.SetDefault("resume.max_tasks", cfg.ResumeMaxTasks)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .plancraft.yaml: %w", err)
	}

	cfg.PlanFilename = v.GetString("plan.filename")
	cfg.DefaultProjectName = v.GetString("defaults.project_name")
	cfg.ResumeMaxTasks = v.GetInt("resume.max_tasks")
	cfg.ExtraHighKeywords = v.GetStringSlice("keywords.high")
	cfg.ExtraLowKeywords = v.GetStringSlice("keywords.low")

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// clear error message identifying every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.PlanFilename == "" {
		errs = append(errs, "plan.filename must not be empty")
	}
	if strings.ContainsAny(cfg.PlanFilename, "/\\") {
		errs = append(errs, fmt.Sprintf("plan.filename %q must be a bare file name, not a path", cfg.PlanFilename))
	}
	if cfg.DefaultProjectName == "" {
		errs = append(errs, "defaults.project_name must not be empty")
	}
	if cfg.ResumeMaxTasks < 1 {
		errs = append(errs, fmt.Sprintf("resume.max_tasks must be at least 1, got %d", cfg.ResumeMaxTasks))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// KeywordTableFromConfig builds the classifier keyword table, appending any
// extra keywords configured in .plancraft.yaml to the built-in signals.
// Extra keywords are lowercased since matching is case-insensitive.
func KeywordTableFromConfig(cfg *models.GlobalConfig) KeywordTable {
	table := DefaultKeywordTable()
	if cfg == nil {
		return table
	}
	for _, kw := range cfg.ExtraHighKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			table.Urgency = append(table.Urgency, kw)
		}
	}
	for _, kw := range cfg.ExtraLowKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			table.Deprioritize = append(table.Deprioritize, kw)
		}
	}
	return table
}
