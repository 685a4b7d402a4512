package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickprogramme/subclip/internal/config"
	"github.com/patrickprogramme/subclip/internal/fsutil"
)

// les éditeurs écrivent souvent en plusieurs fois : on attend le calme
const reloadDebounce = 300 * time.Millisecond

// watchConfig surveille le fichier de configuration et publie chaque version
// valide sur out. Le dossier parent est surveillé (et non le fichier) pour
// survivre aux éditeurs qui remplacent le fichier par un rename.
func (a *App) watchConfig(ctx context.Context, path string, out chan *config.Config) (func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("chemin de configuration %s : %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	go a.watchLoop(ctx, w, path, abs, out)
	return func() { _ = w.Close() }, nil
}

func (a *App) watchLoop(ctx context.Context, w *fsnotify.Watcher, path, abs string, out chan *config.Config) {
	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				debounce.Reset(reloadDebounce)
			}

		case <-debounce.C:
			cfg, err := a.reloadConfig(path)
			if err != nil {
				a.log.Errorw("configuration modifiée invalide, ancienne configuration conservée", "path", path, "error", err)
				continue
			}
			// ne garder que la version la plus récente
			select {
			case <-out:
			default:
			}
			out <- cfg

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			a.log.Warnw("erreur de surveillance de la configuration", "error", err)
		}
	}
}

// reloadConfig relit le fichier, réapplique les options CLI et valide le résultat.
// Un fichier supprimé n'est pas recréé : Load écrirait les valeurs par défaut.
func (a *App) reloadConfig(path string) (*config.Config, error) {
	exists, err := fsutil.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("fichier de configuration %s absent", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Apply(a.flags)
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.log.Warnw("configuration", "warning", w)
	}
	return cfg, nil
}
