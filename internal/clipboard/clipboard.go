package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	// ErrUnavailable : aucun mécanisme de presse-papier utilisable sur ce système
	// (ex: Linux sans xclip/xsel/wl-clipboard).
	ErrUnavailable = errors.New("presse-papier indisponible sur ce système")
	// ErrEmptyText : refus d'écrire une chaîne vide dans le presse-papier.
	ErrEmptyText = errors.New("le texte à copier ne peut pas être vide")
)

// Provider est la frontière vers le presse-papier du système.
// Les tests injectent une implémentation en mémoire.
type Provider interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System utilise le presse-papier de l'OS via atotto/clipboard.
type System struct{}

// NewSystem retourne le presse-papier système.
func NewSystem() *System {
	return &System{}
}

// ReadAll lit le contenu texte du presse-papier.
func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("lecture du presse-papier : %w", err)
	}
	return text, nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Retourne ErrEmptyText si text est vide.
func (System) WriteAll(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("écriture du presse-papier : %w", err)
	}
	return nil
}

// Equals vérifie si le contenu actuel du presse-papier est strictement égal à text.
// En cas d'erreur de lecture, retourne false et ignore l'erreur silencieusement.
func Equals(p Provider, text string) bool {
	current, err := p.ReadAll()
	if err != nil {
		return false
	}
	return current == text
}

// Memory est un presse-papier en mémoire, utile pour les tests et le mode --dry-run.
type Memory struct {
	mu       sync.Mutex
	Text     string
	ReadErr  error
	WriteErr error
	Writes   int
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text == "" {
		return ErrEmptyText
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Text = text
	m.Writes++
	return nil
}

// Set remplace le contenu sans compter d'écriture (simule une copie de l'utilisateur).
func (m *Memory) Set(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Text = text
}
