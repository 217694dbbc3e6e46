package render

import (
	"fmt"
	"strings"

	"github.com/omegalab/lessonplan/internal/lessonplan"
)

// Markdown renders plan as a GitHub-flavored Markdown document.
func Markdown(plan *lessonplan.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", oneLine(plan.Title))
	fmt.Fprintf(&b, "**%s:** %s | **%s:** %s | **%s:** %s\n\n",
		LabelGrade, oneLine(plan.Grade),
		LabelSubject, oneLine(plan.Subject),
		LabelDuration, oneLine(plan.Duration))

	fmt.Fprintf(&b, "## %s\n\n", HeadingABCD)
	fmt.Fprintf(&b, "> %s\n\n", oneLine(plan.ABCDObjective.FullStatement))
	for _, p := range abcdParts(plan.ABCDObjective) {
		fmt.Fprintf(&b, "- **%s:** %s\n", p.Label, oneLine(p.Value))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n%s\n\n", HeadingGeneral, plan.GeneralObjective)

	fmt.Fprintf(&b, "## %s\n\n", HeadingSpecific)
	for _, o := range plan.SpecificObjectives {
		fmt.Fprintf(&b, "- %s\n", oneLine(o))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", HeadingActivities)
	for i, a := range plan.Activities {
		fmt.Fprintf(&b, "### %d. %s (%s)\n\n%s\n\n", i+1, a.Phase, oneLine(a.Duration), a.Description)
	}

	fmt.Fprintf(&b, "## %s\n\n", HeadingRubric)
	b.WriteString("| " + strings.Join(RubricColumns, " | ") + " |\n")
	b.WriteString(strings.Repeat("| --- ", len(RubricColumns)) + "|\n")
	for _, r := range plan.Rubric {
		cells := rubricRow(r)
		for i, c := range cells {
			cells[i] = tableCell(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	fmt.Fprintf(&b, "\n---\n\n_%s_\n", Footer)
	return b.String()
}

// oneLine collapses line breaks so a value cannot break out of its element.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tableCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}
