package trigger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickprogramme/subclip/internal/clipboard"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	minPollInterval     = 50 * time.Millisecond
)

// pollListener déclenche quand le contenu du presse-papier change.
// Sert de repli là où aucun raccourci global n'est disponible.
type pollListener struct {
	clip     clipboard.Provider
	interval time.Duration
	log      *zap.SugaredLogger
}

func newPollListener(clip clipboard.Provider, interval time.Duration, log *zap.SugaredLogger) (Listener, error) {
	if clip == nil {
		return nil, errors.New("surveillance du presse-papier : aucun presse-papier fourni")
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if interval < minPollInterval {
		interval = minPollInterval
	}
	return &pollListener{clip: clip, interval: interval, log: log}, nil
}

func (p *pollListener) Name() string {
	return "copie (surveillance du presse-papier)"
}

// Run lit le presse-papier à intervalle régulier et appelle fire quand le contenu
// devient non vide et différent du dernier vu. Le contenu initial ne déclenche rien.
func (p *pollListener) Run(ctx context.Context, fire func()) error {
	last := p.snapshot()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := p.clip.ReadAll()
			if err != nil {
				p.log.Debugw("lecture du presse-papier en échec", "error", err)
				continue
			}
			current = normalize(current)
			if current == "" || current == last {
				continue
			}
			fire()
			// fire a pu réécrire le presse-papier : ce nouveau contenu ne doit pas redéclencher
			last = p.snapshot()
		}
	}
}

func (p *pollListener) snapshot() string {
	s, err := p.clip.ReadAll()
	if err != nil {
		return ""
	}
	return normalize(s)
}

// normalize retire le BOM et unifie les fins de ligne avant comparaison.
func normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
