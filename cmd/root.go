package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/omegalab/lessonplan/internal/config"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/llm"
	"github.com/omegalab/lessonplan/internal/logging"
	"github.com/omegalab/lessonplan/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lessonplan",
	Short: "AI lesson plan generator for teachers",
	Long: "lessonplan (OMEGA Planificador) turns a grade, subject, topic and duration\n" +
		"into a complete lesson plan: ABCD objective, activities and rubric.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides LESSONPLAN_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESSONPLAN_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Path = p
	}
	return cfg, nil
}

// openStore opens the LLM event store named by cfg.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// runtime bundles what every generating command needs.
type runtime struct {
	cfg        config.Config
	logger     zerolog.Logger
	store      *store.Store
	service    *lessonplan.Service
	configured bool
	// model is the provider's model ID, or empty when unconfigured.
	model string
}

func (r *runtime) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// setup opens the event store and builds the lesson plan service. A missing
// credential is not an error: the service is built without a provider and
// every generation reports the configuration problem. Unknown providers are
// rejected by config.Load before reaching here.
func setup(ctx context.Context, cfg config.Config, logOut io.Writer) (*runtime, error) {
	logger := logging.New(cfg.Logging, logOut)

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger, store: st}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	var cfgErr *llm.ErrConfiguration
	switch {
	case errors.As(err, &cfgErr):
		logger.Warn().Str("provider", cfgErr.Provider).Str("reason", cfgErr.Reason).Msg("LLM provider not configured")
	case err != nil:
		st.Close()
		return nil, err
	default:
		rt.configured = true
		rt.model = provider.ModelID()
		logger.Info().Str("provider", cfg.LLM.Provider).Str("model", rt.model).Msg("LLM provider ready")
	}

	rt.service = lessonplan.NewService(provider, cfg.Generation, logger)
	return rt, nil
}
