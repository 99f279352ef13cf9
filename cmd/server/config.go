package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/motionjam/shakedown/internal/config"
)

// newRootCmd builds the cobra command, delegating flag/env wiring to
// config.BindFlags and config.ApplyViper (internal/config), and returns
// the resolved *config.Process once RunE fires.
func newRootCmd(run func(cfg *config.Process) error) *cobra.Command {
	v := viper.New()
	var cfg *config.Process

	cmd := &cobra.Command{
		Use:           "shakedown",
		Short:         "Authoritative server core for a motion-based, phone-as-controller party game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.ApplyViper(cfg, cmd.Flags(), v)
			if err := validateProcess(cfg); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cfg = config.BindFlags(cmd.Flags(), v)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func validateProcess(cfg *config.Process) error {
	if (cfg.TLSCertPath == "") != (cfg.TLSKeyPath == "") {
		return fmt.Errorf("both --tls-cert and --tls-key must be provided together")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", cfg.Port)
	}
	return nil
}
