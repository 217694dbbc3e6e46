package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omegalab/lessonplan/internal/export"
	"github.com/omegalab/lessonplan/internal/lessonplan"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one lesson plan without the interactive UI",
	Example: `  lessonplan generate --grade "5to Primaria" --subject Matemáticas \
    --topic "Fracciones equivalentes" --duration "90 minutos"
  lessonplan generate -g "2do Secundaria" -s Historia -t "Revolución Francesa" --save --format html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := setup(cmd.Context(), cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		f := cmd.Flags()
		grade, _ := f.GetString("grade")
		subject, _ := f.GetString("subject")
		topic, _ := f.GetString("topic")
		duration, _ := f.GetString("duration")
		extra, _ := f.GetString("context")
		req := lessonplan.Request{
			Grade:             grade,
			Subject:           subject,
			Topic:             topic,
			Duration:          duration,
			AdditionalContext: extra,
		}.Normalize()

		if err := lessonplan.ValidateRequest(req); err != nil {
			var ierr *lessonplan.InputError
			if errors.As(err, &ierr) {
				for _, fe := range ierr.Fields {
					fmt.Fprintf(os.Stderr, "--%s: %s\n", flagFor(fe.Field), fe.Message)
				}
			}
			return err
		}

		formatName, _ := f.GetString("format")
		if formatName == "" {
			formatName = rt.cfg.Export.Format
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		plan, err := rt.service.Generate(cmd.Context(), req)
		if err != nil {
			fmt.Fprintln(os.Stderr, lessonplan.UserMessage(err))
			return err
		}

		doc := export.Document{Format: format, Plan: plan}
		if save, _ := f.GetBool("save"); !save {
			// stdout defaults to Markdown unless a format was asked for.
			if !f.Changed("format") {
				doc.Format = export.FormatMarkdown
			}
			body, err := export.Render(doc)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(body)
			return err
		}

		dir, _ := f.GetString("out")
		if dir == "" {
			if dir, err = rt.cfg.ExportDir(); err != nil {
				return fmt.Errorf("resolve export dir: %w", err)
			}
		}
		doc.Name, _ = f.GetString("name")
		path, err := export.NewFileSink(dir).Export(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// flagFor maps a request field to its flag name.
func flagFor(field string) string {
	if field == "additionalContext" {
		return "context"
	}
	return field
}

func init() {
	f := generateCmd.Flags()
	f.StringP("grade", "g", "", "Grade or level (e.g. \"5to Primaria\")")
	f.StringP("subject", "s", "", "Subject (e.g. \"Matemáticas\")")
	f.StringP("topic", "t", "", "Lesson topic")
	f.StringP("duration", "d", lessonplan.DefaultDuration, "Lesson duration: 45, 60, 90 or 120 minutos")
	f.StringP("context", "c", "", "Optional notes about the group")
	f.StringP("format", "f", "", "Output format: markdown or html")
	f.Bool("save", false, "Write the plan to a file instead of stdout")
	f.StringP("out", "o", "", "Directory for --save (defaults to the export dir)")
	f.String("name", "", "File name for --save, without extension")
}
