package model

import "fmt"

// TimeRange représente la plage couverte par un extrait de sous-titres,
// chaque borne au format "MM:SS" (heures et millisecondes ignorées).
type TimeRange struct {
	Start string
	End   string
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}

// Summary est le résumé écrit dans le presse-papier à la place des sous-titres.
type Summary struct {
	Range   TimeRange
	Excerpt string
}

// String rend le résumé sous la forme "<début> - <fin> (<extrait>)".
// Exemple : "00:01 - 00:06 (hello there... - ...doing today)".
func (s Summary) String() string {
	return fmt.Sprintf("%s (%s)", s.Range, s.Excerpt)
}

