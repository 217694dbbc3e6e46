package lessonplan

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/omegalab/lessonplan/internal/llm"
)

// SchemaName identifies the plan schema to providers and the compile cache.
const SchemaName = "lesson_plan"

var (
	schemaOnce sync.Once
	planSchema *llm.Schema
)

// DescribeSchema returns the JSON Schema the generator must follow. It is
// reflected from Plan once and shared afterward; callers must not modify
// the returned definition.
func DescribeSchema() *llm.Schema {
	schemaOnce.Do(func() {
		def, err := reflectPlanSchema()
		if err != nil {
			panic(fmt.Sprintf("lessonplan: reflect plan schema: %v", err))
		}
		planSchema = &llm.Schema{
			Name:        SchemaName,
			Description: "Plan de clase con objetivo ABCD, secuencia didáctica y rúbrica de evaluación",
			Definition:  def,
		}
	})
	return planSchema
}

// reflectPlanSchema derives the schema from the Plan type. Fields without
// omitempty are required; propertyOrdering mirrors struct field order so
// Gemini emits keys in a stable order.
func reflectPlanSchema() (map[string]any, error) {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := r.Reflect(&Plan{})
	addPropertyOrdering(s)

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def map[string]any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	// Providers reject meta keywords in response schemas.
	delete(def, "$schema")
	delete(def, "$id")
	return def, nil
}

func addPropertyOrdering(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		order := make([]string, 0, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			order = append(order, pair.Key)
			addPropertyOrdering(pair.Value)
		}
		if s.Extras == nil {
			s.Extras = map[string]any{}
		}
		s.Extras["propertyOrdering"] = order
	}
	addPropertyOrdering(s.Items)
}
