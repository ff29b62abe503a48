package core

import (
	_ "embed"
	"fmt"

	"github.com/plancraft/plancraft/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// TaskCatalog is a static lookup from project archetype to an ordered list of
// pre-authored fallback tasks. Each list is authored HIGH tasks first, ending
// in LOW; callers depend on that ordering.
type TaskCatalog map[models.ProjectType][]models.Task

// LoadDefaultCatalog decodes the embedded catalog data. It is called once at
// process start; the returned catalog must be treated as read-only.
func LoadDefaultCatalog() (TaskCatalog, error) {
	var catalog TaskCatalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("loading task catalog: %w", err)
	}
	return catalog, nil
}

// TasksFor returns the fallback task list for the given archetype. Unknown
// archetypes fall back to the generic list.
func (c TaskCatalog) TasksFor(pt models.ProjectType) []models.Task {
	if tasks, ok := c[pt]; ok {
		return tasks
	}
	return c[models.ProjectTypeGeneric]
}
