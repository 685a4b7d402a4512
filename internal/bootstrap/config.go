package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/subclip/internal/fsutil"
)

// Statuts retournés par ExportConfig
const (
	StatusWritten     = "written"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (different)"
	StatusOverwritten = "overwritten"
)

// EnsureConfigPresent écrit data dans dstPath si dstPath n'existe pas encore.
// - dstPath : chemin complet sur disque (ex: binDir/subclip.yaml)
// - data : contenu par défaut (asset embarqué ou config sérialisée)
// Comportement : idempotent, ne remplace jamais un fichier existant.
func EnsureConfigPresent(dstPath string, data []byte) error {
	if err := ensureParentDir(dstPath); err != nil {
		return err
	}

	// si le fichier existe déjà -> ne rien faire
	if _, err := os.Stat(dstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("échec stat fichier cible %s: %w", dstPath, err)
	}

	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("échec écriture config %s: %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

// ExportConfig écrit data dans dstPath, pour la commande "config init".
// - fichier absent : écrit -> StatusWritten
// - fichier identique : rien -> StatusUnchanged
// - fichier différent et force == false : rien -> StatusSkipped
// - fichier différent et force == true : sauvegarde puis écrase -> StatusOverwritten
func ExportConfig(dstPath string, data []byte, force bool) (string, error) {
	if err := ensureParentDir(dstPath); err != nil {
		return "", err
	}

	existing, err := os.ReadFile(dstPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("lecture de %s impossible : %w", dstPath, err)
		}
		if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
			return "", fmt.Errorf("échec écriture config %s: %w", dstPath, err)
		}
		return StatusWritten, nil
	}

	if bytes.Equal(existing, data) {
		return StatusUnchanged, nil
	}
	if !force {
		return StatusSkipped, nil
	}

	if _, err := fsutil.BackupFile(dstPath); err != nil {
		return "", fmt.Errorf("backup failed for %s: %w", dstPath, err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return "", fmt.Errorf("échec écriture config %s: %w", dstPath, err)
	}
	return StatusOverwritten, nil
}

// ensureParentDir crée le dossier parent si absent, et refuse un parent qui n'est pas un répertoire.
func ensureParentDir(dstPath string) error {
	parent := filepath.Dir(dstPath)
	if parent == "" {
		parent = "."
	}
	st, err := os.Stat(parent)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("échec test parent %s: %w", parent, err)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("échec création répertoire parent %s: %w", parent, err)
		}
		return nil
	}
	if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}
	return nil
}
