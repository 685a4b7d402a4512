package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickprogramme/subclip/internal/clipboard"
	"github.com/patrickprogramme/subclip/internal/config"
	"github.com/patrickprogramme/subclip/internal/logging"
	"github.com/patrickprogramme/subclip/internal/subtitles"
	"github.com/patrickprogramme/subclip/internal/trigger"
	"github.com/patrickprogramme/subclip/internal/ui"
	"github.com/patrickprogramme/subclip/pkg/model"
)

// ExitCombination : combinaison qui arrête subclip depuis sa console.
const ExitCombination = "Ctrl+C"

var (
	ErrClipboardRead  = errors.New("lecture du presse-papier impossible")
	ErrClipboardWrite = errors.New("écriture du presse-papier impossible")
	ErrAlreadyRunning = errors.New("une autre instance de subclip est déjà active")
)

// Outcome décrit ce qu'un déclenchement a fait du presse-papier.
type Outcome string

const (
	OutcomeReplaced             Outcome = "replaced"              // résumé écrit
	OutcomeNotSubtitle          Outcome = "not_subtitle"          // laissé tel quel
	OutcomeClipboardUnavailable Outcome = "clipboard_unavailable" // lecture ou écriture impossible
	OutcomeParseFailed          Outcome = "parse_failed"          // sous-titres détectés mais non résumables
)

// Result est le compte rendu d'un passage sur le presse-papier.
type Result struct {
	Outcome  Outcome
	Original string
	Summary  model.Summary
}

// listenerFactory construit le déclencheur pour une configuration donnée.
type listenerFactory func(cfg *config.Config) (trigger.Listener, error)

// App orchestre le presse-papier, le déclencheur, la configuration et les logs.
type App struct {
	mu    sync.RWMutex
	cfg   *config.Config
	flags config.Overrides

	clip clipboard.Provider
	log  *logging.Logger
	ui   ui.Interface

	newListener listenerFactory
}

// New construit l'application. flags est réappliqué à chaque rechargement de la configuration.
// Pour les tests, on injecte un clipboard.Memory et une ui.NewWriters.
func New(cfg *config.Config, uiClient ui.Interface, clip clipboard.Provider, log *logging.Logger, flags config.Overrides) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		cfg:   cfg,
		flags: flags,
		clip:  clip,
		log:   log,
		ui:    uiClient,
	}
	a.newListener = a.defaultListener
	return a
}

func (a *App) config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

func (a *App) setConfig(cfg *config.Config) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	if err := a.log.SetLevel(cfg.Logging.Level); err != nil {
		a.log.Warnw("niveau de log non appliqué", "error", err)
	}
}

func (a *App) defaultListener(cfg *config.Config) (trigger.Listener, error) {
	mode, err := cfg.TriggerMode()
	if err != nil {
		return nil, err
	}
	combo, err := cfg.HotkeyCombination()
	if err != nil {
		return nil, err
	}
	return trigger.New(trigger.Options{
		Mode:         mode,
		Hotkey:       combo,
		PollInterval: cfg.PollInterval(),
		Clipboard:    a.clip,
		Logger:       a.log.SugaredLogger,
	})
}

// ModifyClipboard lit le presse-papier et, s'il contient des sous-titres,
// le remplace par leur résumé. Sinon le presse-papier n'est pas touché.
func (a *App) ModifyClipboard(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	text, err := a.clip.ReadAll()
	if err != nil {
		return Result{Outcome: OutcomeClipboardUnavailable}, fmt.Errorf("%w : %w", ErrClipboardRead, err)
	}

	res, err := Inspect(text)
	if err != nil || res.Outcome != OutcomeReplaced {
		return res, err
	}

	if err := a.clip.WriteAll(res.Summary.String()); err != nil {
		return Result{Outcome: OutcomeClipboardUnavailable, Original: text}, fmt.Errorf("%w : %w", ErrClipboardWrite, err)
	}
	return res, nil
}

// Inspect applique le résumé à text sans toucher au presse-papier.
// OutcomeReplaced signifie ici "serait remplacé".
func Inspect(text string) (Result, error) {
	summary, err := subtitles.Summarize(text)
	switch {
	case errors.Is(err, subtitles.ErrNotSubtitle):
		return Result{Outcome: OutcomeNotSubtitle, Original: text}, nil
	case err != nil:
		return Result{Outcome: OutcomeParseFailed, Original: text}, fmt.Errorf("résumé des sous-titres : %w", err)
	}
	return Result{Outcome: OutcomeReplaced, Original: text, Summary: summary}, nil
}

// HandleTrigger est appelé à chaque déclenchement : attente de stabilisation,
// puis ModifyClipboard. Toute erreur (ou panique) est journalisée et absorbée
// pour que l'écoute continue.
func (a *App) HandleTrigger(ctx context.Context) {
	log := a.log.With("invocation", uuid.NewString())
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("erreur inattendue pendant le traitement du raccourci", "panic", r)
		}
	}()

	// laisse l'OS terminer la copie déclenchée par le même raccourci
	if delay := a.config().SettleDelay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	res, err := a.ModifyClipboard(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Errorw("échec de modification du presse-papier", "outcome", res.Outcome, "error", err)
		return
	}
	if res.Outcome == OutcomeReplaced {
		log.Debugw("presse-papier résumé", "outcome", res.Outcome, "summary", res.Summary.String())
		return
	}
	log.Debugw("presse-papier inchangé", "outcome", res.Outcome)
}
