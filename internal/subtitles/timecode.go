package subtitles

import (
	"fmt"
	"strings"
)

// FormatTime convertit un horodatage "HH:MM:SS,mmm" (ou "HH:MM:SS") en "MM:SS".
// Les heures et les millisecondes sont ignorées, sans contrôle de plage :
// "00:01:23,456" -> "01:23", "01:00:00,000" -> "00:00".
func FormatTime(ts string) (string, error) {
	hhmmss, _, _ := strings.Cut(ts, ",")
	parts := strings.Split(hhmmss, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w : %q", ErrMalformedTimestamp, ts)
	}
	return parts[1] + ":" + parts[2], nil
}

// splitTiming sépare une ligne de minutage en horodatages de début et de fin.
func splitTiming(line string) (start, end string, ok bool) {
	return strings.Cut(line, timingArrow)
}
