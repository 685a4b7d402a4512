package trigger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickprogramme/subclip/internal/clipboard"
	"go.uber.org/zap"
)

// ErrUnsupported : le raccourci global n'est pas disponible sur cette plateforme.
var ErrUnsupported = errors.New("raccourci clavier global non supporté sur cette plateforme")

// Listener délivre les déclenchements, un à la fois.
// Run bloque jusqu'à l'annulation de ctx (retourne nil) ou une erreur fatale.
// fire est toujours appelé depuis une seule goroutine : un déclenchement reçu
// pendant l'exécution de fire est fusionné avec le suivant.
type Listener interface {
	Run(ctx context.Context, fire func()) error
	Name() string
}

// Mode choisit la source des déclenchements.
type Mode string

const (
	ModeAuto   Mode = "auto"   // raccourci si disponible, sinon surveillance
	ModeHotkey Mode = "hotkey" // raccourci clavier global
	ModePoll   Mode = "poll"   // surveillance du presse-papier
)

// ParseMode convertit la chaîne de configuration en Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeHotkey, ModePoll:
		return m, nil
	default:
		return "", fmt.Errorf("mode de déclenchement inconnu : %q (attendu auto, hotkey ou poll)", s)
	}
}

// Options paramètre New.
type Options struct {
	Mode         Mode
	Hotkey       Combination
	PollInterval time.Duration
	Clipboard    clipboard.Provider // requis pour le mode poll
	Logger       *zap.SugaredLogger
}

// New construit le Listener correspondant à opts.Mode.
func New(opts Options) (Listener, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	switch opts.Mode {
	case ModeHotkey:
		return newHotkeyListener(opts.Hotkey, log)
	case ModePoll:
		return newPollListener(opts.Clipboard, opts.PollInterval, log)
	case ModeAuto, "":
		l, err := newHotkeyListener(opts.Hotkey, log)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, ErrUnsupported) {
			return nil, err
		}
		log.Infow("raccourci global indisponible, surveillance du presse-papier", "hotkey", opts.Hotkey.String())
		return newPollListener(opts.Clipboard, opts.PollInterval, log)
	default:
		return nil, fmt.Errorf("mode de déclenchement inconnu : %q", opts.Mode)
	}
}
