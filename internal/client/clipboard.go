package client

import (
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

var clipboardReady bool

// InitClipboard initializes the system clipboard. Copying is disabled if
// no clipboard is available.
func InitClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Warn().Err(err).Msg("Clipboard unavailable")
		return
	}
	clipboardReady = true
}

// CopyToClipboard writes text to the system clipboard and reports whether
// it was copied.
func CopyToClipboard(text string) bool {
	if !clipboardReady {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return true
}
