package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/subclip/internal/bootstrap"
	"github.com/patrickprogramme/subclip/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Outils de configuration",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Créer le fichier de configuration par défaut",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = ctx.configPath()
			}

			data, err := config.DefaultContent(target)
			if err != nil {
				return err
			}
			status, err := bootstrap.ExportConfig(target, data, overwrite)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch status {
			case bootstrap.StatusSkipped:
				return fmt.Errorf("un fichier de configuration différent existe déjà : %s (utilisez --overwrite pour le remplacer)", target)
			case bootstrap.StatusUnchanged:
				fmt.Fprintf(out, "Configuration déjà à jour : %s\n", target)
			case bootstrap.StatusOverwritten:
				fmt.Fprintf(out, "Configuration remplacée (sauvegarde créée) : %s\n", target)
			default:
				fmt.Fprintf(out, "Configuration écrite : %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination du fichier de configuration")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Remplacer une configuration existante (une sauvegarde est créée)")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Afficher la configuration effective (fichier, environnement et options)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if raw {
				b, err := cfg.Encode()
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			}

			fmt.Fprintf(out, "Fichier : %s\n", cfg.Path())
			fmt.Fprintln(out, renderTable([]string{"Clé", "Valeur"}, configRows(cfg)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Afficher la configuration sérialisée au format du fichier")
	return cmd
}

func configRows(cfg *config.Config) [][]string {
	trig := cfg.Hotkey
	if combo, err := cfg.HotkeyCombination(); err == nil {
		trig = combo.String()
	}
	return [][]string{
		{"hotkey", trig},
		{"trigger", cfg.Trigger},
		{"settle_delay_ms", strconv.Itoa(cfg.SettleDelayMS)},
		{"poll_interval_ms", strconv.Itoa(cfg.PollIntervalMS)},
		{"watch_config", yesNo(cfg.WatchConfig)},
		{"single_instance", yesNo(cfg.SingleInstance)},
		{"lock_file", cfg.LockFile},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.file", cfg.Logging.File},
		{"config_version", strconv.Itoa(cfg.ConfigVersion)},
	}
}
