package app

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/patrickprogramme/subclip/internal/config"
)

// Run écoute le déclencheur jusqu'à l'annulation de ctx (Ctrl+C / SIGTERM).
// Un rechargement de la configuration redémarre le déclencheur avec les nouvelles valeurs.
func (a *App) Run(ctx context.Context) error {
	cfg := a.config()

	if cfg.SingleInstance {
		lock := flock.New(cfg.LockFile)
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("verrou %s : %w", cfg.LockFile, err)
		}
		if !locked {
			return fmt.Errorf("%w (verrou : %s)", ErrAlreadyRunning, cfg.LockFile)
		}
		defer func() { _ = lock.Unlock() }()
	}

	reloads := make(chan *config.Config, 1)
	if cfg.WatchConfig && cfg.Path() != "" {
		stop, err := a.watchConfig(ctx, cfg.Path(), reloads)
		if err != nil {
			a.log.Warnw("surveillance de la configuration désactivée", "error", err)
		} else {
			defer stop()
		}
	}

	for {
		listener, err := a.newListener(a.config())
		if err != nil {
			return fmt.Errorf("déclencheur : %w", err)
		}
		a.ui.PrintBanner(ctx, listener.Name(), ExitCombination)

		lctx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- listener.Run(lctx, func() { a.HandleTrigger(lctx) })
		}()

		select {
		case <-ctx.Done():
			cancel()
			<-done
			a.ui.PrintStopped(ctx)
			return nil

		case err := <-done:
			cancel()
			if err != nil {
				return fmt.Errorf("écoute du déclencheur %s : %w", listener.Name(), err)
			}
			if ctx.Err() != nil {
				a.ui.PrintStopped(ctx)
			}
			return nil

		case next := <-reloads:
			cancel()
			if err := <-done; err != nil {
				a.log.Warnw("arrêt du déclencheur", "error", err)
			}
			a.setConfig(next)
			a.ui.PrintInfo(ctx, fmt.Sprintf("configuration rechargée : %s", next.Path()))
		}
	}
}
