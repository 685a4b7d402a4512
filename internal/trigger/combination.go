package trigger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCombination : combinaison de touches non reconnue.
var ErrInvalidCombination = errors.New("combinaison de touches invalide")

// codes de touches virtuelles Windows (documentés, identiques sur toutes les versions)
const (
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12 // Alt
	vkInsert  = 0x2D
	vkLWin    = 0x5B
	vkRWin    = 0x5C
	vkF1      = 0x70
)

// Combination décrit un raccourci clavier : un ensemble exact de modificateurs
// plus une touche principale.
type Combination struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Win   bool
	Key   string // "C", "7", "F5", "Insert"
}

// ParseCombination analyse une chaîne du type "ctrl+c", "Ctrl+Shift+F9" ou "win+insert".
// L'ordre des modificateurs est libre, la touche principale vient en dernier.
func ParseCombination(s string) (Combination, error) {
	var c Combination
	s = strings.TrimSpace(s)
	if s == "" {
		return c, fmt.Errorf("%w : chaîne vide", ErrInvalidCombination)
	}

	parts := strings.Split(s, "+")
	for i, raw := range parts {
		p := strings.ToLower(strings.TrimSpace(raw))
		last := i == len(parts)-1
		if !last {
			if err := c.setModifier(p); err != nil {
				return Combination{}, fmt.Errorf("%w : %q (%v)", ErrInvalidCombination, s, err)
			}
			continue
		}
		key, ok := canonicalKey(p)
		if !ok {
			return Combination{}, fmt.Errorf("%w : %q (touche %q inconnue)", ErrInvalidCombination, s, raw)
		}
		c.Key = key
	}
	return c, nil
}

func (c *Combination) setModifier(p string) error {
	var flag *bool
	switch p {
	case "ctrl", "control":
		flag = &c.Ctrl
	case "alt":
		flag = &c.Alt
	case "shift":
		flag = &c.Shift
	case "win", "cmd", "super", "meta":
		flag = &c.Win
	default:
		return fmt.Errorf("modificateur %q inconnu", p)
	}
	if *flag {
		return fmt.Errorf("modificateur %q répété", p)
	}
	*flag = true
	return nil
}

// canonicalKey normalise la touche principale : lettres et chiffres en majuscule,
// F1 à F24, Insert.
func canonicalKey(p string) (string, bool) {
	switch {
	case len(p) == 1 && p[0] >= 'a' && p[0] <= 'z':
		return strings.ToUpper(p), true
	case len(p) == 1 && p[0] >= '0' && p[0] <= '9':
		return p, true
	case p == "insert" || p == "ins":
		return "Insert", true
	case len(p) >= 2 && p[0] == 'f':
		n, err := strconv.Atoi(p[1:])
		if err != nil || n < 1 || n > 24 {
			return "", false
		}
		return "F" + strconv.Itoa(n), true
	}
	return "", false
}

// String rend la combinaison dans sa forme lisible, ex: "Ctrl+C".
func (c Combination) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Win {
		parts = append(parts, "Win")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// virtualKey retourne le code de touche virtuelle de la touche principale.
func (c Combination) virtualKey() uint32 {
	switch {
	case c.Key == "Insert":
		return vkInsert
	case len(c.Key) == 1:
		// 'A'..'Z' et '0'..'9' ont pour code leur valeur ASCII
		return uint32(c.Key[0])
	case strings.HasPrefix(c.Key, "F"):
		n, _ := strconv.Atoi(c.Key[1:])
		return vkF1 + uint32(n-1)
	}
	return 0
}

// modifiersMatch vérifie que l'état courant des modificateurs correspond
// exactement à la combinaison : Ctrl+C ne se déclenche pas sur Ctrl+Shift+C.
func (c Combination) modifiersMatch(isDown func(vk uint32) bool) bool {
	return isDown(vkControl) == c.Ctrl &&
		isDown(vkMenu) == c.Alt &&
		isDown(vkShift) == c.Shift &&
		(isDown(vkLWin) || isDown(vkRWin)) == c.Win
}
