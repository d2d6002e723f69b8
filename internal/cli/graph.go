package cli

import (
	"fmt"

	"github.com/aretw0/dictshape/internal/config"
	"github.com/aretw0/dictshape/internal/loader"
	"github.com/aretw0/dictshape/internal/presentation/graph"
	"github.com/aretw0/dictshape/pkg/schema"
)

// RunGraph renders a template as a Mermaid flowchart. When recordPath is set,
// the record is validated and its first divergence is highlighted.
func RunGraph(env *Env, templatePath, recordPath string) (string, error) {
	tmpl, err := loader.LoadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var overlay *graph.Overlay
	if recordPath != "" {
		rec, err := loader.LoadRecord(recordPath)
		if err != nil {
			return "", err
		}
		checkErr := schema.Check(rec, tmpl)
		env.Metrics.ObserveValidation(tmpl.Depth(), checkErr)
		if verr, ok := schema.AsValidationError(checkErr); ok {
			overlay = &graph.Overlay{Failure: verr}
			env.Logger.Info("Record Invalid", "record", recordPath, "kind", string(verr.Kind), "path", verr.Path)
		}
	}

	return graph.GenerateMermaid(tmpl, overlay), nil
}

// WriteGraph prints a Mermaid diagram, fenced when the output is markdown.
func WriteGraph(env *Env, diagram string) error {
	if env.Config.Output == config.OutputMarkdown {
		return writeMarkdown(env, fmt.Sprintf("```mermaid\n%s```\n", diagram))
	}
	_, err := fmt.Fprint(env.Out, diagram)
	return err
}
