package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/omegalab/lessonplan/internal/lessonplan"
)

//go:embed templates/plan.html
var templateFS embed.FS

var labels = map[string]string{
	"grade":      LabelGrade,
	"subject":    LabelSubject,
	"duration":   LabelDuration,
	"abcd":       HeadingABCD,
	"general":    HeadingGeneral,
	"specific":   HeadingSpecific,
	"activities": HeadingActivities,
	"rubric":     HeadingRubric,
	"print":      PrintButtonLabel,
	"new":        NewPlanButtonLabel,
}

// Funcs are the template helpers the plan templates rely on. Callers that
// parse their own templates on top of Templates must include them.
var Funcs = template.FuncMap{
	"label":   func(key string) string { return labels[key] },
	"abcd":    abcdParts,
	"columns": func() []string { return RubricColumns },
	"row":     rubricRow,
	"footer":  func() string { return Footer },
}

func parseTemplates() (*template.Template, error) {
	return template.New("lessonplan").Funcs(Funcs).ParseFS(templateFS, "templates/plan.html")
}

// planTemplates backs HTML. Once executed it can no longer be cloned, so
// Templates parses a fresh set instead.
var planTemplates = template.Must(parseTemplates())

// Templates returns a fresh, unexecuted copy of the plan templates ("plan",
// "styles", "document") for embedding into larger pages.
func Templates() (*template.Template, error) {
	return parseTemplates()
}

// HTML renders plan as a standalone printable HTML document. The print
// button delegates to the browser's window.print().
func HTML(plan *lessonplan.Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := planTemplates.ExecuteTemplate(&buf, "document", plan); err != nil {
		return nil, fmt.Errorf("render plan document: %w", err)
	}
	return buf.Bytes(), nil
}
