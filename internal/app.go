// Package internal provides the App struct that wires all components of
// plancraft together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/plancraft/plancraft/internal/cli"
	"github.com/plancraft/plancraft/internal/core"
	"github.com/plancraft/plancraft/internal/observability"
	"github.com/plancraft/plancraft/internal/storage"
	"github.com/plancraft/plancraft/pkg/models"
)

// App holds all service dependencies for plancraft.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Core services
	Classifier core.PriorityClassifier
	Catalog    core.TaskCatalog
	Extractor  core.RequirementsExtractor
	Planner    core.Planner

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components. basePath anchors the configuration
// file and the event log; plan files live in whatever project root each
// operation is given.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	app.Config = cfg

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".plancraft_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.Classifier = core.NewPriorityClassifier(core.KeywordTableFromConfig(cfg))
	app.Catalog, err = core.LoadDefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading task catalog: %w", err)
	}
	app.Extractor = core.NewRequirementsExtractor(app.Classifier, app.Catalog, cfg.DefaultProjectName)

	storeFor := func(projectRoot string) core.PlanStore {
		return &planStoreAdapter{store: storage.NewPlanStore(projectRoot, cfg.PlanFilename)}
	}

	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}
	app.Planner = core.NewPlanner(app.Extractor, app.Classifier, storeFor, evtAdapter, cfg.ResumeMaxTasks)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Planner = app.Planner
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory anchoring configuration and the
// event log. It checks the PLANCRAFT_HOME env var, then walks up from the
// current directory looking for a .plancraft.yaml, falling back to cwd.
func ResolveBasePath() string {
	if home := os.Getenv("PLANCRAFT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".plancraft.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// --- Adapters ---

// planStoreAdapter adapts storage.PlanStore to core.PlanStore.
type planStoreAdapter struct {
	store storage.PlanStore
}

func (a *planStoreAdapter) Create(input core.PlanCreateInput) (string, error) {
	return a.store.Create(storage.CreateInput{
		ProjectName:      input.ProjectName,
		Description:      input.Description,
		EnvironmentSetup: input.EnvironmentSetup,
		Tasks:            input.Tasks,
		NextSteps:        input.NextSteps,
		Notes:            input.Notes,
	})
}

func (a *planStoreAdapter) UpdateStatus(taskTitle string, completed bool) (bool, error) {
	return a.store.UpdateStatus(taskTitle, completed)
}

func (a *planStoreAdapter) ReadStatus() (*models.ParsedStatus, error) {
	return a.store.ReadStatus()
}

func (a *planStoreAdapter) Path() string {
	return a.store.Path()
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
