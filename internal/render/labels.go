// Package render lays out a lesson plan for the terminal, as Markdown, and
// as a printable HTML document. Every renderer shows the same sections in
// the same order and never modifies the plan.
package render

import "github.com/omegalab/lessonplan/internal/lessonplan"

// Section headings and labels.
const (
	LabelGrade    = "Grado"
	LabelSubject  = "Materia"
	LabelDuration = "Duración"

	HeadingABCD        = "Objetivo ABCD"
	LabelAudience      = "A - Audiencia"
	LabelBehavior      = "B - Comportamiento"
	LabelCondition     = "C - Condición"
	LabelDegree        = "D - Grado"
	HeadingGeneral     = "Objetivo General"
	HeadingSpecific    = "Objetivos Específicos"
	HeadingActivities  = "Secuencia Didáctica"
	HeadingRubric      = "Rúbrica de Evaluación"
	ColumnCriterion    = "Criterio"
	ColumnExcellent    = "Excelente"
	ColumnGood         = "Bueno"
	ColumnFair         = "Regular"
	ColumnPoor         = "Insuficiente"
	PrintButtonLabel   = "Descargar PDF"
	NewPlanButtonLabel = "Nuevo plan"

	Footer = "Generado con OMEGA COMPUTER LAB 2026 - Herramienta de productividad docente"
)

// RubricColumns are the rubric table headers in display order.
var RubricColumns = []string{ColumnCriterion, ColumnExcellent, ColumnGood, ColumnFair, ColumnPoor}

type labeled struct {
	Label string
	Value string
}

func abcdParts(o lessonplan.ABCDObjective) []labeled {
	return []labeled{
		{LabelAudience, o.Audience},
		{LabelBehavior, o.Behavior},
		{LabelCondition, o.Condition},
		{LabelDegree, o.Degree},
	}
}

func rubricRow(r lessonplan.RubricItem) []string {
	return []string{r.Criterion, r.Levels.Excellent, r.Levels.Good, r.Levels.Fair, r.Levels.Poor}
}

// Form labels and placeholders shared by the terminal and web forms.
const (
	FormGrade       = "Grado / Nivel"
	FormSubject     = "Materia / Asignatura"
	FormTopic       = "Tema de la Clase"
	FormDuration    = "Duración"
	FormContext     = "Contexto o necesidades específicas"
	FormOptional    = "(Opcional)"
	HintGrade       = "Ej: 5to Primaria"
	HintSubject     = "Ej: Matemáticas"
	HintTopic       = "Ej: Fracciones equivalentes"
	HintContext     = "Ej: Estudiantes con diferentes ritmos de aprendizaje, enfoque en trabajo colaborativo..."
	SubmitLabel     = "Generar Plan de Clase"
	GeneratingLabel = "Generando plan..."
)
