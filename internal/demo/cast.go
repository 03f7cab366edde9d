package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// castHeader is the first line of an asciicast v2 file.
type castHeader struct {
	Version int               `json:"version"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Env     map[string]string `json:"env,omitempty"`
}

// clearScreen homes the cursor and clears the terminal before each frame.
const clearScreen = "\x1b[H\x1b[2J"

// GenerateASCIICast writes frames as an asciicast v2 recording. Each
// frame is drawn at the sum of the delays before it.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int) error {
	enc := json.NewEncoder(w)
	header := castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to write cast header: %w", err)
	}

	var elapsed float64
	for i, f := range frames {
		elapsed += f.Delay.Seconds()
		// Terminals expect CRLF in raw output.
		content := strings.ReplaceAll(f.Content, "\n", "\r\n")
		event := []any{elapsed, "o", clearScreen + content}
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}
	return nil
}
