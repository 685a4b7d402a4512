package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/patrickprogramme/subclip/internal/assets"
	"github.com/patrickprogramme/subclip/internal/bootstrap"
	"github.com/patrickprogramme/subclip/internal/trigger"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// DefaultFileName est le nom du fichier de configuration cherché à côté de l'exécutable.
const DefaultFileName = "subclip.yaml"

const (
	defaultHotkey         = "ctrl+c"
	defaultTrigger        = "auto"
	defaultSettleDelayMS  = 100
	defaultPollIntervalMS = 500
	minPollIntervalMS     = 50
	defaultLogLevel       = "error"
	defaultLogFormat      = "console"
)

// struct pour les paramètres de configuration
type Config struct {
	// Déclenchement
	Hotkey         string `yaml:"hotkey" toml:"hotkey" env:"SUBCLIP_HOTKEY"`
	Trigger        string `yaml:"trigger" toml:"trigger" env:"SUBCLIP_TRIGGER"`
	SettleDelayMS  int    `yaml:"settle_delay_ms" toml:"settle_delay_ms" env:"SUBCLIP_SETTLE_DELAY_MS"`
	PollIntervalMS int    `yaml:"poll_interval_ms" toml:"poll_interval_ms" env:"SUBCLIP_POLL_INTERVAL_MS"`

	// Exécution
	WatchConfig    bool   `yaml:"watch_config" toml:"watch_config" env:"SUBCLIP_WATCH_CONFIG"`
	SingleInstance bool   `yaml:"single_instance" toml:"single_instance" env:"SUBCLIP_SINGLE_INSTANCE"`
	LockFile       string `yaml:"lock_file" toml:"lock_file" env:"SUBCLIP_LOCK_FILE"`

	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	ConfigVersion int `yaml:"config_version" toml:"config_version"`

	configFilePath string
}

// LoggingConfig regroupe les paramètres du logger zap.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" env:"SUBCLIP_LOG_LEVEL"`
	Format string `yaml:"format" toml:"format" env:"SUBCLIP_LOG_FORMAT"`
	File   string `yaml:"file" toml:"file" env:"SUBCLIP_LOG_FILE"`
}

// Overrides : valeurs venant de la ligne de commande (nil = non fourni).
type Overrides struct {
	Hotkey        *string
	Trigger       *string
	SettleDelayMS *int
	LogLevel      *string
}

// configuration par défaut
func defaultConfig() *Config {
	c := &Config{}

	c.Hotkey = defaultHotkey
	c.Trigger = defaultTrigger
	c.SettleDelayMS = defaultSettleDelayMS
	c.PollIntervalMS = defaultPollIntervalMS

	c.WatchConfig = true
	c.SingleInstance = true
	c.LockFile = ""

	c.Logging.Level = defaultLogLevel
	c.Logging.Format = defaultLogFormat
	c.Logging.File = ""

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut normalisée (sans fichier).
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, il est créé depuis les valeurs par défaut.
// Ordre de priorité : défauts < fichier < .env < variables d'environnement.
// Les options CLI s'appliquent ensuite via Apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	// si le fichier n'existe pas -> le créer à partir du modèle
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := DefaultContent(path)
		if err != nil {
			return nil, err
		}
		if err := bootstrap.EnsureConfigPresent(path, data); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()
	// un fichier sans config_version date d'avant le versionnage : version 0
	cfg.ConfigVersion = 0

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// les champs absents du fichier conservent les valeurs par défaut
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : la migration réécrit le fichier, donc avant l'environnement
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	if err := applyEnv(cfg, filepath.Dir(path)); err != nil {
		return nil, err
	}
	cfg.normalizeConfig()

	return cfg, nil
}

// applyEnv charge un éventuel .env à côté du fichier de config puis applique
// les variables SUBCLIP_*. Une variable déjà définie n'est pas remplacée par le .env.
func applyEnv(cfg *Config, dir string) error {
	dotenv := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return fmt.Errorf("lecture de %s impossible : %w", dotenv, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("variables d'environnement invalides : %w", err)
	}
	return nil
}

// Apply applique les options de la ligne de commande puis renormalise.
func (c *Config) Apply(o Overrides) {
	if o.Hotkey != nil {
		c.Hotkey = *o.Hotkey
	}
	if o.Trigger != nil {
		c.Trigger = *o.Trigger
	}
	if o.SettleDelayMS != nil {
		c.SettleDelayMS = *o.SettleDelayMS
	}
	if o.LogLevel != nil {
		c.Logging.Level = *o.LogLevel
	}
	c.normalizeConfig()
}

func (c *Config) normalizeConfig() {
	c.Hotkey = strings.TrimSpace(c.Hotkey)
	if c.Hotkey == "" {
		c.Hotkey = defaultHotkey
	}

	c.Trigger = strings.TrimSpace(strings.ToLower(c.Trigger))
	if c.Trigger == "" {
		c.Trigger = defaultTrigger
	}

	if c.SettleDelayMS < 0 {
		c.SettleDelayMS = 0
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = defaultPollIntervalMS
	}
	if c.PollIntervalMS < minPollIntervalMS {
		c.PollIntervalMS = minPollIntervalMS
	}

	c.LockFile = slashPath(c.LockFile)
	if c.LockFile == "" {
		c.LockFile = filepath.Join(os.TempDir(), "subclip.lock")
	} else {
		c.LockFile = filepath.Clean(c.LockFile)
	}

	c.Logging.Level = strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.TrimSpace(strings.ToLower(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.File = slashPath(c.Logging.File)
	if c.Logging.File != "" {
		c.Logging.File = filepath.Clean(c.Logging.File)
	}
}

// slashPath corrige les chemins Windows écrits avec des backslashes.
// Seuls les champs de chemin sont concernés : les séquences d'échappement
// des autres chaînes restent intactes.
func slashPath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

// Path retourne le chemin du fichier chargé ("" pour une config construite en mémoire).
func (c *Config) Path() string {
	return c.configFilePath
}

// SettleDelay : attente entre le raccourci et la lecture du presse-papier.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// PollInterval : intervalle de lecture en mode poll.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// HotkeyCombination analyse le raccourci configuré.
func (c *Config) HotkeyCombination() (trigger.Combination, error) {
	return trigger.ParseCombination(c.Hotkey)
}

// TriggerMode analyse le mode de déclenchement configuré.
func (c *Config) TriggerMode() (trigger.Mode, error) {
	return trigger.ParseMode(c.Trigger)
}

// Encode sérialise la config dans le format de son fichier (YAML par défaut).
func (c *Config) Encode() ([]byte, error) {
	return encode(c.configFilePath, c)
}

// DefaultContent retourne le contenu du fichier de configuration par défaut pour path :
// le modèle commenté embarqué pour YAML, la config par défaut sérialisée pour TOML.
func DefaultContent(path string) ([]byte, error) {
	if isTOML(path) {
		b, err := toml.Marshal(defaultConfig())
		if err != nil {
			return nil, fmt.Errorf("encodage TOML de la configuration par défaut : %w", err)
		}
		return b, nil
	}
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return nil, fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	return b, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isTOML(path) {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}
