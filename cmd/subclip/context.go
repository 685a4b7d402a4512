package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/patrickprogramme/subclip/internal/clipboard"
	"github.com/patrickprogramme/subclip/internal/config"
	"github.com/patrickprogramme/subclip/internal/logging"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag    string
	hotkeyFlag    string
	triggerFlag   string
	settleFlag    int
	logLevelFlag  string
	overrides     config.Overrides
	overridesRead bool

	// presse-papier du système sauf injection (tests)
	clip clipboard.Provider

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *logging.Logger
	loggerErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

// readOverrides ne retient que les options réellement passées sur la ligne de commande.
func (c *commandContext) readOverrides(cmd *cobra.Command) {
	if c.overridesRead {
		return
	}
	c.overridesRead = true
	flags := cmd.Flags()
	if flags.Changed("hotkey") {
		c.overrides.Hotkey = &c.hotkeyFlag
	}
	if flags.Changed("trigger") {
		c.overrides.Trigger = &c.triggerFlag
	}
	if flags.Changed("settle-delay") {
		c.overrides.SettleDelayMS = &c.settleFlag
	}
	if flags.Changed("log-level") {
		c.overrides.LogLevel = &c.logLevelFlag
	}
}

func (c *commandContext) clipboard() clipboard.Provider {
	if c.clip == nil {
		c.clip = clipboard.NewSystem()
	}
	return c.clip
}

func (c *commandContext) configPath() string {
	if p := strings.TrimSpace(c.configFlag); p != "" {
		return p
	}
	return defaultConfigPath()
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		cfg.Apply(c.overrides)
		warnings, err := cfg.Validate()
		if err != nil {
			c.configErr = fmt.Errorf("configuration %s invalide : %w", cfg.Path(), err)
			return
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning : %s\n", w)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*logging.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			File:   cfg.Logging.File,
			Color:  logging.IsTerminal(os.Stderr),
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Close()
	}
}

// defaultConfigPath : subclip.yaml à côté de l'exécutable, sinon dans le dossier courant.
func defaultConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "oui"
	}
	return "non"
}
