package factory

import (
	"fmt"

	"report-service-be/pkg/sqlgen"
	"report-service-be/pkg/sqlgen/ollama"
)

// NewGenerator selects a SQL generation provider by name.
// Supported: "template" (default, no external service), "ollama".
func NewGenerator(provider, model, ollamaBaseURL, defaultTable string) (sqlgen.Generator, error) {
	switch provider {
	case "", "template":
		return sqlgen.NewTemplateGenerator(defaultTable), nil
	case "ollama":
		if ollamaBaseURL == "" {
			return nil, fmt.Errorf("ollama provider requires a base URL")
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown sql generation provider: %s", provider)
	}
}
