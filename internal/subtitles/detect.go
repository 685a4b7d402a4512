package subtitles

import (
	"errors"
	"regexp"
)

var (
	// ErrNotSubtitle : le texte ne contient aucune ligne de minutage SRT.
	ErrNotSubtitle = errors.New("le texte ne ressemble pas à des sous-titres")
	// ErrMalformedTimestamp : horodatage qui n'a pas la forme HH:MM:SS[,mmm].
	ErrMalformedTimestamp = errors.New("horodatage mal formé")
)

// motifs compilés une seule fois
var (
	// ligne de minutage complète, ex: "00:00:01,000 --> 00:00:03,500".
	// \p{Nd} accepte aussi les chiffres non ASCII (arabes orientaux, pleine chasse...)
	timingLine = regexp.MustCompile(`^\p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2},\p{Nd}{3} --> \p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2},\p{Nd}{3}$`)
	// numéro de bloc (index SRT)
	indexLine = regexp.MustCompile(`^\p{Nd}+$`)
	// ponctuation supprimée de l'extrait
	punctuation = regexp.MustCompile(`[.,]`)
)

const timingArrow = " --> "

// IsSubtitleContent retourne true si au moins une ligne du texte est une ligne
// de minutage SRT. Un texte sans ligne de minutage n'est jamais considéré comme
// des sous-titres, même s'il contient des numéros ou des flèches.
func IsSubtitleContent(text string) bool {
	for _, line := range splitLines(text) {
		if timingLine.MatchString(line) {
			return true
		}
	}
	return false
}
