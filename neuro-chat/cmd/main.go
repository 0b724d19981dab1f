package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiawesome/neurolab/neuro-chat/internal/api"
	"github.com/weiawesome/neurolab/neuro-chat/internal/chat"
	"github.com/weiawesome/neurolab/neuro-chat/internal/config"
	"github.com/weiawesome/neurolab/neuro-chat/internal/tui"
	pkgconfig "github.com/weiawesome/neurolab/pkg/config"
	"github.com/weiawesome/neurolab/pkg/log"
)

const defaultTUILogFile = "./logs/neuro-chat.log"

var (
	// Global flags
	configPath string
	baseURL    string
	userID     string
	jsonOutput bool

	cfg       *config.Config
	client    *api.Client
	logCloser io.Closer
)

// rootCmd opens the interactive chat screen.
var rootCmd = &cobra.Command{
	Use:   "neuro-chat",
	Short: "NeuroLab assistant chat client",
	Long: `neuro-chat talks to the NeuroLab API.

Without a subcommand it opens the interactive chat screen, where replies
are revealed one sentence at a time.`,
	SilenceUsage: true,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: runChat,
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api-url", "", "NeuroLab API base URL (or set NEUROLAB_API_URL)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User id sent with profile requests")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of text")

	profileCmd.AddCommand(profileUpdateCmd)

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(testsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if userID != "" {
		cfg.API.UserID = userID
	}

	logFile := cfg.Log.File
	if logFile == "" && cmd == rootCmd {
		logFile = defaultTUILogFile
	}
	logCloser, err = log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "neuro-chat",
		File:        logFile,
	})
	if err != nil {
		return err
	}

	opts := []api.Option{api.WithTimeout(cfg.API.Timeout)}
	if cfg.API.UserID != "" {
		opts = append(opts, api.WithUserID(cfg.API.UserID))
	}
	client = api.NewClient(cfg.API.BaseURL, opts...)

	l := log.L()
	l.Debug().Str("base_url", cfg.API.BaseURL).Str("command", cmd.Name()).Msg("client ready")
	return nil
}

func timing() chat.Timing {
	return chat.Timing{
		InitialDelay: cfg.Reveal.InitialDelay,
		ChunkDelay:   cfg.Reveal.ChunkDelay,
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	err := tui.Run(ctx, client, tui.Options{
		Timing:     timing(),
		Threshold:  cfg.Scroll.Threshold,
		LineHeight: cfg.Scroll.LineHeight,
	})
	l := log.L()
	l.Info().Dur("session", time.Since(start)).Msg("chat screen closed")
	return err
}
