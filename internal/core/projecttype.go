package core

import (
	"strings"

	"github.com/plancraft/plancraft/pkg/models"
)

// projectTypeSignals maps each archetype to the keywords that indicate it.
// Categories are checked in the fixed order below; the first category with a
// matching keyword wins.
type projectTypeSignal struct {
	projectType models.ProjectType
	keywords    []string
}

var projectTypeSignals = []projectTypeSignal{
	{models.ProjectTypeWeb, []string{"website", "web app", "webapp", "web application", "frontend", "html", "browser"}},
	{models.ProjectTypeMobile, []string{"mobile", "ios", "android", "app store", "smartphone"}},
	{models.ProjectTypeAPI, []string{"api", "rest", "endpoint", "graphql", "microservice", "backend service"}},
	{models.ProjectTypeData, []string{"data pipeline", "etl", "analytics", "machine learning", "data processing", "dataset"}},
}

// ClassifyProjectType maps full requirements text to a project archetype
// using the same case-insensitive substring strategy as the priority
// classifier. Pure and deterministic; unknown text yields generic.
func ClassifyProjectType(text string) models.ProjectType {
	lowered := strings.ToLower(text)
	for _, sig := range projectTypeSignals {
		if containsAny(lowered, sig.keywords) {
			return sig.projectType
		}
	}
	return models.ProjectTypeGeneric
}
