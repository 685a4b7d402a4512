package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/patrickprogramme/subclip/internal/trigger"
)

// Validate vérifie la cohérence de la configuration.
// Retourne des warnings (non-fataux) et une erreur regroupant tous les problèmes bloquants.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	var errs []error

	mode, merr := trigger.ParseMode(c.Trigger)
	if merr != nil {
		errs = append(errs, merr)
	}
	if _, herr := trigger.ParseCombination(c.Hotkey); herr != nil {
		errs = append(errs, fmt.Errorf("hotkey : %w", herr))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("niveau de log inconnu : %q (attendu debug, info, warn ou error)", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("format de log inconnu : %q (attendu console ou json)", c.Logging.Format))
	}

	if mode == trigger.ModeHotkey && runtime.GOOS != "windows" {
		warnings = append(warnings, "le mode hotkey n'est disponible que sous Windows; utilisez trigger: auto ou poll")
	}
	if mode == trigger.ModePoll && c.Hotkey != defaultHotkey {
		warnings = append(warnings, fmt.Sprintf("hotkey %q ignoré en mode poll", c.Hotkey))
	}
	if c.SettleDelayMS > 2000 {
		warnings = append(warnings, fmt.Sprintf("settle_delay_ms élevé (%d ms) : le résumé arrivera tard", c.SettleDelayMS))
	}

	return warnings, errors.Join(errs...)
}
