package main

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-voz/config"
	"github.com/RyanBlaney/sonido-voz/logging"
)

type app struct {
	configFile string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "sonidovoz",
		Short:         "Voice quality analysis service",
		Long:          "sonidovoz analyzes recorded voice clips and reports acoustic measurements, quality scores and a voice-type classification.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: a.configFile,
				Defaults:   config.DefaultConfig(),
			})
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.SetLevel(logging.ParseLevel(cfg.Logging.Level))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config file")
	config.RegisterFlags(cmd.PersistentFlags(), config.DefaultConfig())

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newAnalyzeCmd(a))

	return cmd
}
