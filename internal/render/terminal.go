package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/ui/theme"
)

const minTerminalWidth = 40

// Below this width the rubric columns truncate their headers, so criteria
// are stacked instead.
const minRubricTableWidth = 74

// Terminal renders plan for a terminal of the given width.
func Terminal(plan *lessonplan.Plan, width int) string {
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var out []string
	section := func(title string, body ...string) {
		out = append(out, "", theme.Section.Render(title))
		out = append(out, body...)
	}

	out = append(out,
		theme.Title.Align(lipgloss.Left).Width(width).Render(plan.Title),
		dim.Width(width).Render(fmt.Sprintf("%s: %s  ·  %s: %s  ·  %s: %s",
			LabelGrade, plan.Grade, LabelSubject, plan.Subject, LabelDuration, plan.Duration)),
	)

	abcd := []string{
		theme.Quote.Width(width).Render("“" + plan.ABCDObjective.FullStatement + "”"),
	}
	for _, p := range abcdParts(plan.ABCDObjective) {
		abcd = append(abcd, text.Render(label.Render(p.Label+": ")+p.Value))
	}
	section(HeadingABCD, abcd...)

	section(HeadingGeneral, text.Render(plan.GeneralObjective))

	var specific []string
	for _, o := range plan.SpecificObjectives {
		specific = append(specific, bullet("•", o, width, text))
	}
	section(HeadingSpecific, specific...)

	var activities []string
	for i, a := range plan.Activities {
		head := label.Render(fmt.Sprintf("%d. %s", i+1, a.Phase)) + dim.Render(" · "+a.Duration)
		activities = append(activities, head, indent(text.Width(width-3).Render(a.Description), 3))
	}
	section(HeadingActivities, activities...)

	if width < minRubricTableWidth {
		section(HeadingRubric, rubricStacked(plan.Rubric, width, text, label)...)
	} else {
		section(HeadingRubric, rubricTable(plan.Rubric, width))
	}

	out = append(out, "", dim.Width(width).Align(lipgloss.Center).Render(Footer))
	return strings.Join(out, "\n")
}

func rubricTable(items []lessonplan.RubricItem, width int) string {
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	criterion := cell.Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(RubricColumns...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return criterion
			default:
				return cell
			}
		})
	for _, r := range items {
		t.Row(rubricRow(r)...)
	}
	return t.String()
}

func rubricStacked(items []lessonplan.RubricItem, width int, text, label lipgloss.Style) []string {
	var out []string
	for i, r := range items {
		if i > 0 {
			out = append(out, "")
		}
		row := rubricRow(r)
		out = append(out, text.Render(label.Render(ColumnCriterion+": ")+row[0]))
		for j, col := range RubricColumns[1:] {
			out = append(out, indent(text.Width(width-3).Render(label.Render(col+": ")+row[j+1]), 3))
		}
	}
	return out
}

func bullet(mark, s string, width int, style lipgloss.Style) string {
	body := style.Width(width - 3).Render(s)
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = " " + mark + " " + lines[i]
		} else {
			lines[i] = "   " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
