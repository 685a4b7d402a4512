package config

import (
	"fmt"
	"os"

	"github.com/patrickprogramme/subclip/internal/fsutil"
)

// orchestrateConfigUpgrade : sauvegarde, migration, écriture
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return fmt.Errorf("config nil lors de la migration")
	}
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	// 1) backup
	backupPath, err := fsutil.BackupFile(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde du fichier de configuration avant migration : %w", err)
	}

	// 2) appliquer migrations successives
	if err := migrateConfig(cfg, fromVersion); err != nil {
		return fmt.Errorf("échec lors de la migration de la configuration (depuis %d) : %w", fromVersion, err)
	}
	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	// 3) sérialiser dans le format du fichier
	b, err := encode(cfg.configFilePath, cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage de la configuration migrée : %w", err)
	}

	// 4) écrire atomiquement, restaurer la sauvegarde en cas d'échec
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		if orig, rerr := os.ReadFile(backupPath); rerr == nil {
			_ = fsutil.WriteFileAtomic(cfg.configFilePath, orig, 0o644)
		}
		return fmt.Errorf("échec d'écriture du fichier de configuration migré %s : %w", cfg.configFilePath, err)
	}

	fmt.Printf("info : configuration mise à jour de la version %d à %d (sauvegarde : %s)\n", fromVersion, CurrentConfigVersion, backupPath)
	return nil
}

// migrateConfig : appliquer les transformations nécessaires entre versions
func migrateConfig(cfg *Config, from int) error {
	if cfg == nil {
		return fmt.Errorf("pas de config fournie")
	}
	for v := from; v < CurrentConfigVersion; v++ {
		switch v {
		case 0:
			// 0 -> 1 : fichiers écrits avant l'ajout de config_version.
			// Un délai nul y signifiait "valeur par défaut".
			if cfg.SettleDelayMS == 0 {
				cfg.SettleDelayMS = defaultSettleDelayMS
			}
		default:
			// pas de changement par défaut
		}
	}
	return nil
}
