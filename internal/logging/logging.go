package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options paramètre le logger.
type Options struct {
	Level  string    // debug, info, warn, error ("" = error)
	Format string    // console ou json ("" = console)
	File   string    // fichier supplémentaire, "" = aucun
	Color  bool      // couleurs des niveaux (console uniquement)
	Output io.Writer // nil = os.Stderr
}

// Logger enveloppe un zap.SugaredLogger dont le niveau peut changer à chaud.
type Logger struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
	file  *os.File
}

// New construit le logger : sortie d'erreur (ou opts.Output) et éventuellement un fichier.
// Horodatage ISO8601, niveau modifiable via SetLevel.
func New(opts Options) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("niveau de log %q : %w", opts.Level, err)
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(opts.Format, opts.Color), zapcore.Lock(zapcore.AddSync(out)), level),
	}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("ouverture du fichier de log %s : %w", opts.File, err)
		}
		file = f
		// jamais de codes couleur dans un fichier
		cores = append(cores, zapcore.NewCore(newEncoder(opts.Format, false), zapcore.Lock(f), level))
	}

	return &Logger{
		SugaredLogger: zap.New(zapcore.NewTee(cores...)).Sugar(),
		level:         level,
		file:          file,
	}, nil
}

func newEncoder(format string, color bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// SetLevel change le niveau à chaud (rechargement de la configuration).
func (l *Logger) SetLevel(s string) error {
	if err := l.level.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("niveau de log %q : %w", s, err)
	}
	return nil
}

// Level retourne le niveau courant.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Close vide les tampons et ferme le fichier de log éventuel.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Nop retourne un logger qui n'écrit rien.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar(), level: zap.NewAtomicLevel()}
}

// IsTerminal indique si f est un terminal (y compris mintty/cygwin).
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
