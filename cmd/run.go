package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omegalab/lessonplan/internal/app"
	"github.com/omegalab/lessonplan/internal/export"
	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/logging"
)

// runApp builds dependencies and launches the TUI. Logs go to a file since
// the terminal belongs to the UI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logPath, err := cfg.LogFile()
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	rt, err := setup(cmd.Context(), cfg, logFile)
	if err != nil {
		return err
	}
	defer rt.Close()

	exportDir, err := rt.cfg.ExportDir()
	if err != nil {
		return fmt.Errorf("resolve export dir: %w", err)
	}

	status := rt.model
	if !rt.configured {
		status = "sin configurar"
	}

	rt.logger.Info().Str("export_dir", exportDir).Msg("Starting terminal UI")
	return app.Run(app.Options{
		Generator:  rt.service,
		Controller: flow.New(),
		Sink:       export.NewFileSink(exportDir),
		Logger:     rt.logger,
		Configured: rt.configured,
		Status:     status,
	})
}
