package lessonplan

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPlanJSON(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/plan.json")
	require.NoError(t, err)
	return string(data)
}

// mutatePlan decodes the sample plan, applies fn and re-encodes it.
func mutatePlan(t *testing.T, fn func(doc map[string]any)) string {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(loadPlanJSON(t)), &doc))
	fn(doc)
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(out)
}

func TestValidate_ValidPlan(t *testing.T) {
	plan, err := Validate(loadPlanJSON(t))
	require.NoError(t, err)

	assert.Equal(t, "Descubriendo las fracciones equivalentes", plan.Title)
	assert.Equal(t, "Los estudiantes de 5to de primaria", plan.ABCDObjective.Audience)
	require.Len(t, plan.Activities, 3)
	assert.Equal(t, PhaseStart, plan.Activities[0].Phase)
	assert.Equal(t, PhaseDevelopment, plan.Activities[1].Phase)
	assert.Equal(t, PhaseClosing, plan.Activities[2].Phase)
	require.Len(t, plan.Rubric, 2)
	assert.Equal(t, "Identifica 4 de 5 equivalencias.", plan.Rubric[1].Levels.Good)
}

func TestValidate_PreservesOrder(t *testing.T) {
	raw := mutatePlan(t, func(doc map[string]any) {
		doc["specificObjectives"] = []any{"tercero", "primero", "segundo"}
		doc["activities"] = []any{
			map[string]any{"phase": "Cierre", "description": "c", "duration": "5 minutos"},
			map[string]any{"phase": "Inicio", "description": "a", "duration": "5 minutos"},
			map[string]any{"phase": "Desarrollo", "description": "b", "duration": "5 minutos"},
		}
	})

	plan, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"tercero", "primero", "segundo"}, plan.SpecificObjectives)
	assert.Equal(t, []Phase{PhaseClosing, PhaseStart, PhaseDevelopment},
		[]Phase{plan.Activities[0].Phase, plan.Activities[1].Phase, plan.Activities[2].Phase})
}

func TestValidate_EchoFieldsOptional(t *testing.T) {
	raw := mutatePlan(t, func(doc map[string]any) {
		delete(doc, "grade")
		delete(doc, "subject")
		delete(doc, "duration")
	})

	plan, err := Validate(raw)
	require.NoError(t, err)
	assert.Empty(t, plan.Grade)
	assert.Empty(t, plan.Subject)
	assert.Empty(t, plan.Duration)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		raw        func(t *testing.T) string
		wantKind   error
		wantFields []string
	}{
		{
			name:     "empty",
			raw:      func(*testing.T) string { return "" },
			wantKind: ErrEmptyOutput,
		},
		{
			name:     "whitespace only",
			raw:      func(*testing.T) string { return " \n\t " },
			wantKind: ErrEmptyOutput,
		},
		{
			name:     "not json",
			raw:      func(*testing.T) string { return "{not json" },
			wantKind: ErrMalformedJSON,
		},
		{
			name:     "truncated",
			raw:      func(t *testing.T) string { s := loadPlanJSON(t); return s[:len(s)/2] },
			wantKind: ErrMalformedJSON,
		},
		{
			name:       "title only",
			raw:        func(*testing.T) string { return `{"title":"x"}` },
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/abcdObjective", "/generalObjective", "/specificObjectives", "/activities", "/rubric"},
		},
		{
			name:     "json null",
			raw:      func(*testing.T) string { return "null" },
			wantKind: ErrSchemaViolation,
		},
		{
			name: "missing rubric",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) { delete(doc, "rubric") })
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/rubric"},
		},
		{
			name: "phase outside enum",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) {
					doc["activities"].([]any)[1].(map[string]any)["phase"] = "Evaluación"
				})
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/activities/1/phase"},
		},
		{
			name: "wrong type",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) { doc["specificObjectives"] = "uno, dos" })
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/specificObjectives"},
		},
		{
			name: "empty activities",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) { doc["activities"] = []any{} })
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/activities"},
		},
		{
			name: "empty title",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) { doc["title"] = "" })
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/title"},
		},
		{
			name: "blank rubric level",
			raw: func(t *testing.T) string {
				return mutatePlan(t, func(doc map[string]any) {
					doc["rubric"].([]any)[0].(map[string]any)["levels"].(map[string]any)["poor"] = "   "
				})
			},
			wantKind:   ErrSchemaViolation,
			wantFields: []string{"/rubric/0/levels/poor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Validate(tt.raw(t))
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Kind: ErrSchemaViolation, Fields: []string{"/title", "/rubric"}}
	assert.True(t, strings.HasPrefix(err.Error(), ErrSchemaViolation.Error()))
	assert.Contains(t, err.Error(), "/title, /rubric")
	assert.False(t, errors.Is(err, ErrMalformedJSON))
}
