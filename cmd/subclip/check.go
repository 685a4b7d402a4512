package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patrickprogramme/subclip/internal/app"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "check [fichier...]",
		Short: "Analyser un texte (fichiers ou entrée standard) sans toucher au presse-papier",
		Long: "Applique la détection et le résumé au texte lu.\n" +
			"Avec --plain, n'affiche que ce que contiendrait le presse-papier.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			res, err := app.Inspect(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plain {
				if res.Outcome == app.OutcomeReplaced {
					fmt.Fprintln(out, res.Summary.String())
				} else {
					fmt.Fprint(out, text)
				}
				return nil
			}
			fmt.Fprintln(out, renderResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Afficher uniquement le texte résultant")
	return cmd
}

// readInput concatène les fichiers donnés, ou lit l'entrée standard sans argument.
func readInput(stdin io.Reader, paths []string) (string, error) {
	if len(paths) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("lecture de l'entrée standard : %w", err)
		}
		return string(b), nil
	}

	var sb strings.Builder
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("lecture de %s : %w", p, err)
		}
		sb.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
