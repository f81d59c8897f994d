package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpggio/gtd/internal/app"
	"github.com/rpggio/gtd/internal/command"
	"github.com/rpggio/gtd/internal/config"
	"github.com/rpggio/gtd/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	var (
		configPath string
		exitCode   int
		workspace  *app.App
		logger     = zap.NewNop()
	)

	rootCmd := &cobra.Command{
		Use:               "gtd",
		Short:             "File-backed GTD tracker for projects, tasks and asides",
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		TraverseChildren:  true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
			workspace, err = app.Open(cfg, logger)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/gtd/config.yaml)")

	for _, kind := range command.Kinds() {
		rootCmd.AddCommand(kindCmd(kind, func(cmd *cobra.Command, args []string) error {
			res, err := command.Run(cmd.Context(), kind.String(), args, workspace.Deps)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Output)
			exitCode = res.ExitCode
			return nil
		}))
	}

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if workspace != nil {
		if cerr := workspace.Close(); cerr != nil {
			logger.Warn("closing state database", zap.Error(cerr))
		}
	}
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, command.Describe(err).Line())
		return 1
	}
	return exitCode
}

func kindCmd(kind command.Kind, runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:     kind.Usage(),
		Short:   kind.Short(),
		Aliases: kind.Aliases(),
		RunE:    runE,
	}
	if kind == command.KindAsides {
		var reply string
		cmd.Flags().StringVar(&reply, "reply", "", "Answer to the capture prompt: y, n, edit, '1 only', '2 to P003'")
		cmd.RunE = func(c *cobra.Command, args []string) error {
			if reply != "" {
				args = append([]string{"--reply=" + reply}, args...)
			}
			return runE(c, args)
		}
	}
	return cmd
}
