package main

import (
	"fmt"

	"github.com/patrickprogramme/subclip/internal/app"
	"github.com/patrickprogramme/subclip/internal/clipboard"
	"github.com/spf13/cobra"
)

func newOnceCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Résumer le presse-papier actuel une seule fois, sans raccourci",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			clip := ctx.clipboard()
			if dryRun {
				// lecture réelle, écriture en mémoire uniquement
				text, err := clip.ReadAll()
				if err != nil {
					return fmt.Errorf("%w : %w", app.ErrClipboardRead, err)
				}
				clip = &clipboard.Memory{Text: text}
			}

			a := app.New(cfg, nil, clip, log, ctx.overrides)
			res, err := a.ModifyClipboard(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Afficher le résumé sans modifier le presse-papier")
	return cmd
}
