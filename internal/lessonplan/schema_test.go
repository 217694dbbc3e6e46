package lessonplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeSchema_TopLevel(t *testing.T) {
	s := DescribeSchema()
	require.NotNil(t, s)
	assert.Equal(t, SchemaName, s.Name)
	assert.Same(t, s, DescribeSchema(), "schema is computed once")

	def := s.Definition
	assert.Equal(t, "object", def["type"])
	assert.NotContains(t, def, "$schema")
	assert.NotContains(t, def, "$id")

	assert.ElementsMatch(t,
		[]any{"title", "abcdObjective", "generalObjective", "specificObjectives", "activities", "rubric"},
		def["required"])

	props, ok := def["properties"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"title", "grade", "subject", "duration", "abcdObjective",
		"generalObjective", "specificObjectives", "activities", "rubric"} {
		assert.Contains(t, props, name)
	}

	assert.Equal(t,
		[]any{"title", "grade", "subject", "duration", "abcdObjective", "generalObjective",
			"specificObjectives", "activities", "rubric"},
		def["propertyOrdering"])
}

func TestDescribeSchema_Nested(t *testing.T) {
	props := DescribeSchema().Definition["properties"].(map[string]any)

	abcd := props["abcdObjective"].(map[string]any)
	assert.Equal(t, "object", abcd["type"])
	assert.ElementsMatch(t,
		[]any{"audience", "behavior", "condition", "degree", "fullStatement"},
		abcd["required"])

	activities := props["activities"].(map[string]any)
	assert.Equal(t, "array", activities["type"])
	item := activities["items"].(map[string]any)
	phase := item["properties"].(map[string]any)["phase"].(map[string]any)
	assert.Equal(t, []any{"Inicio", "Desarrollo", "Cierre"}, phase["enum"])

	rubric := props["rubric"].(map[string]any)["items"].(map[string]any)
	levels := rubric["properties"].(map[string]any)["levels"].(map[string]any)
	assert.ElementsMatch(t, []any{"excellent", "good", "fair", "poor"}, levels["required"])

	objectives := props["specificObjectives"].(map[string]any)
	assert.Equal(t, "string", objectives["items"].(map[string]any)["type"])
}

func TestPhasesMatchSchemaEnum(t *testing.T) {
	props := DescribeSchema().Definition["properties"].(map[string]any)
	item := props["activities"].(map[string]any)["items"].(map[string]any)
	enum := item["properties"].(map[string]any)["phase"].(map[string]any)["enum"].([]any)

	require.Len(t, enum, len(Phases))
	for i, p := range Phases {
		assert.Equal(t, string(p), enum[i])
	}
}
