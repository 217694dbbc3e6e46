package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/render"
)

func testPlan() *lessonplan.Plan {
	return &lessonplan.Plan{
		Title:    "Fracciones Equivalentes: ¡a jugar!",
		Grade:    "4to Primaria",
		Subject:  "Matemáticas",
		Duration: "60 minutos",
		ABCDObjective: lessonplan.ABCDObjective{
			Audience: "Estudiantes", Behavior: "identificarán", Condition: "con tiras",
			Degree: "4 de 5", FullStatement: "Estudiantes identificarán con tiras 4 de 5.",
		},
		GeneralObjective:   "Comprender fracciones equivalentes.",
		SpecificObjectives: []string{"Comparar"},
		Activities:         []lessonplan.Activity{{Phase: lessonplan.PhaseStart, Description: "Inicio", Duration: "10 minutos"}},
		Rubric: []lessonplan.RubricItem{{Criterion: "Precisión", Levels: lessonplan.RubricLevels{
			Excellent: "a", Good: "b", Fair: "c", Poor: "d",
		}}},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 9, 30, 15, 0, time.UTC)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fracciones Equivalentes", "fracciones-equivalentes"},
		{"  Matemáticas: ¡Año nuevo!  ", "matematicas-ano-nuevo"},
		{"Ciencias / Biología 5to", "ciencias-biologia-5to"},
		{"¿¡!?", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	got := Slugify(strings.Repeat("palabra ", 30))
	assert.LessOrEqual(t, len(got), 80)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"html", FormatHTML, false},
		{"", FormatHTML, false},
		{"MD", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSink_HTML(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: filepath.Join(dir, "exports"), Now: fixedNow}

	path, err := sink.Export(context.Background(), Document{Format: FormatHTML, Plan: testPlan()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "fracciones-equivalentes-a-jugar-20260304-093015.html"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := render.HTML(testPlan())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileSink_MarkdownNamed(t *testing.T) {
	sink := NewFileSink(t.TempDir())

	path, err := sink.Export(context.Background(), Document{Name: "Mi Plan", Format: FormatMarkdown, Plan: testPlan()})
	require.NoError(t, err)
	assert.Equal(t, "mi-plan.md", filepath.Base(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, render.Markdown(testPlan()), string(got))
}

func TestFileSink_NamedReplacesUnnamedStamps(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir, Now: func() time.Time { return time.Date(2026, 3, 4, 9, 30, 15, 0, time.UTC) }}

	first := testPlan()
	second := testPlan()
	second.Title = "Otra versión"

	p1, err := sink.Export(context.Background(), Document{Name: "semana 1", Format: FormatMarkdown, Plan: first})
	require.NoError(t, err)
	p2, err := sink.Export(context.Background(), Document{Name: "semana 1", Format: FormatMarkdown, Plan: second})
	require.NoError(t, err)
	assert.Equal(t, p1, p2, "an explicit name is used as-is")

	got, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, render.Markdown(second), string(got))

	unnamed, err := sink.Export(context.Background(), Document{Format: FormatMarkdown, Plan: second})
	require.NoError(t, err)
	assert.Equal(t, "otra-version-20260304-093015.md", filepath.Base(unnamed))
}

func TestFileSink_Errors(t *testing.T) {
	sink := NewFileSink(t.TempDir())

	_, err := sink.Export(context.Background(), Document{Format: FormatHTML})
	assert.Error(t, err)

	_, err = sink.Export(context.Background(), Document{Format: "pdf", Plan: testPlan()})
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sink.Export(ctx, Document{Format: FormatHTML, Plan: testPlan()})
	assert.ErrorIs(t, err, context.Canceled)
}
