package ui

import "context"

// Interface regroupe les sorties console destinées à l'utilisateur.
// Les erreurs techniques passent par le logger, pas par ici.
type Interface interface {
	// PrintBanner annonce le déclencheur actif et la façon de quitter.
	PrintBanner(ctx context.Context, triggerName, exitCombo string)
	// PrintStopped signale l'arrêt demandé par l'utilisateur.
	PrintStopped(ctx context.Context)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
