// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/shieldai/shield/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// ready initializes the platform clipboard on first use. A failed
// initialization is remembered; headless sessions report it on every write.
func ready() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("clipboard unavailable", "error", err)
			initErr = fmt.Errorf("clipboard unavailable: %w", err)
		}
	})
	return initErr
}

// WriteText replaces the clipboard contents with text.
func WriteText(text string) error {
	if err := ready(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("copied", "bytes", len(text))
	return nil
}
