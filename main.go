package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"codecrew/config"
	"codecrew/logging"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfg    *config.Config
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "codecrew",
		Short:         "Project showcase API for teams and their members",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Log)
			return nil
		},
	}

	root.AddCommand(
		a.serveCommand(),
		a.migrateCommand(),
		a.userCommand(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error("codecrew failed", "err", err)
		os.Exit(1)
	}
}
