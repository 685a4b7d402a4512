package main

import (
	"github.com/patrickprogramme/subclip/internal/app"
	"github.com/patrickprogramme/subclip/internal/ui"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(newCommandContext())
}

func newRootCommandWith(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subclip",
		Short:         "Résume dans le presse-papier les extraits de sous-titres SRT copiés",
		Long:          "subclip surveille le raccourci de copie. Quand le texte copié contient des sous-titres SRT,\nil est remplacé par \"<début> - <fin> (<extrait>)\".",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx.readOverrides(cmd)
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListener(cmd, ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Chemin du fichier de configuration (.yaml ou .toml)")
	flags.StringVar(&ctx.hotkeyFlag, "hotkey", "", "Raccourci déclencheur, ex: ctrl+c")
	flags.StringVar(&ctx.triggerFlag, "trigger", "", "Source des déclenchements : auto, hotkey ou poll")
	flags.IntVar(&ctx.settleFlag, "settle-delay", 0, "Attente en millisecondes avant la lecture du presse-papier")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Niveau de log : debug, info, warn ou error")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newOnceCommand(ctx))
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Écouter le raccourci et résumer le presse-papier (commande par défaut)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListener(cmd, ctx)
		},
	}
}

func runListener(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	log, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	a := app.New(cfg, ui.NewTerminal(), ctx.clipboard(), log, ctx.overrides)
	return a.Run(cmd.Context())
}
