//go:build !windows

package trigger

import "go.uber.org/zap"

func newHotkeyListener(c Combination, _ *zap.SugaredLogger) (Listener, error) {
	return nil, ErrUnsupported
}
