package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rahul4469/truthguardian/internal/config"
	"github.com/rahul4469/truthguardian/internal/logging"
	"github.com/rahul4469/truthguardian/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "truthguardian",
	Short: "TruthGuardian - AI-assisted news credibility checks",
	Long: `TruthGuardian asks a generative model whether a piece of news text is
credible and shows the verdict as Likely Credible, Potentially Misleading or
Likely Fake News.

Run without arguments to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv(config.ConfigFileEnv, configPath); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, err = logging.New(cfg.Log.Level, cfg.IsDevelopment())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAnalyzer builds the Gemini-backed credibility analyzer from cfg.
func newAnalyzer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services.CredibilityAnalyzer, error) {
	gemini, err := services.NewGeminiClient(ctx, services.GeminiConfig{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		BaseURL:           cfg.Gemini.BaseURL,
		APIVersion:        cfg.Gemini.APIVersion,
		Temperature:       cfg.Gemini.Temperature,
		TopK:              cfg.Gemini.TopK,
		TopP:              cfg.Gemini.TopP,
		MaxOutputTokens:   cfg.Gemini.MaxOutputTokens,
		Timeout:           cfg.Gemini.Timeout,
		JSONMode:          cfg.Gemini.JSONMode,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		Burst:             cfg.Gemini.Burst,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Info("gemini client ready", zap.String("model", gemini.Model()))
	return services.NewCredibilityAnalyzer(gemini, logger), nil
}
