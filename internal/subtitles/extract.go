package subtitles

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/patrickprogramme/subclip/pkg/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nombre de mots conservés de chaque côté de l'extrait
const edgeWords = 2

// Summarize détecte puis résume un texte de sous-titres.
// Retourne ErrNotSubtitle si le texte ne contient aucune ligne de minutage.
func Summarize(text string) (model.Summary, error) {
	if !IsSubtitleContent(text) {
		return model.Summary{}, ErrNotSubtitle
	}
	return Extract(text)
}

// Extract parcourt le texte ligne par ligne et construit le résumé :
//   - le début vient de la PREMIÈRE ligne de minutage, la fin de la DERNIÈRE ;
//   - les numéros de bloc sont ignorés ;
//   - toutes les autres lignes (lignes vides comprises) forment le texte.
//
// Le texte est mis en minuscules puis débarrassé des '.' et ','.
// Au-delà de 3 mots l'extrait ne garde que les deux premiers et les deux derniers.
func Extract(text string) (model.Summary, error) {
	var (
		r         model.TimeRange
		fragments []string
	)

	for _, line := range splitLines(text) {
		switch {
		case timingLine.MatchString(line):
			startTS, endTS, _ := splitTiming(line)
			if r.Start == "" {
				start, err := FormatTime(startTS)
				if err != nil {
					return model.Summary{}, fmt.Errorf("début de minutage : %w", err)
				}
				r.Start = start
			}
			end, err := FormatTime(endTS)
			if err != nil {
				return model.Summary{}, fmt.Errorf("fin de minutage : %w", err)
			}
			r.End = end
		case indexLine.MatchString(line):
			// numéro de bloc
		default:
			fragments = append(fragments, line)
		}
	}

	return model.Summary{Range: r, Excerpt: excerpt(fragments)}, nil
}

// excerpt assemble les fragments de texte et réduit le résultat à
// "w0 w1... - ...wN-2 wN-1" quand il y a au moins 4 mots.
// En dessous, le texte normalisé est retourné tel quel (espaces compris).
func excerpt(fragments []string) string {
	text := cases.Lower(language.Und).String(strings.Join(fragments, " "))
	text = punctuation.ReplaceAllString(text, "")

	words := strings.FieldsFunc(text, isWordSeparator)
	if len(words) < 2*edgeWords {
		return text
	}
	head := strings.Join(words[:edgeWords], " ")
	tail := strings.Join(words[len(words)-edgeWords:], " ")
	return head + "... - ..." + tail
}

// splitLines découpe le texte selon toutes les fins de ligne reconnues
// (\n, \r\n, \r, \v, \f, \x1c-\x1e, U+0085, U+2028, U+2029).
// Un terminateur final ne produit pas de ligne vide supplémentaire.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// isWordSeparator : espaces Unicode plus les séparateurs d'information
// \x1c-\x1f, qui découpent aussi les mots.
func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
