package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/patrickprogramme/subclip/internal/app"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// outcomeLabel traduit un Outcome pour l'affichage.
func outcomeLabel(o app.Outcome) string {
	switch o {
	case app.OutcomeReplaced:
		return "résumé"
	case app.OutcomeNotSubtitle:
		return "pas des sous-titres (inchangé)"
	case app.OutcomeClipboardUnavailable:
		return "presse-papier indisponible"
	case app.OutcomeParseFailed:
		return "sous-titres illisibles"
	default:
		return string(o)
	}
}

func renderResult(res app.Result) string {
	rows := [][]string{{"Résultat", outcomeLabel(res.Outcome)}}
	if res.Outcome == app.OutcomeReplaced {
		rows = append(rows,
			[]string{"Début", res.Summary.Range.Start},
			[]string{"Fin", res.Summary.Range.End},
			[]string{"Extrait", res.Summary.Excerpt},
			[]string{"Presse-papier", res.Summary.String()},
		)
	}
	return renderTable([]string{"Champ", "Valeur"}, rows)
}
