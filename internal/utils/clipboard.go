package utils

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing to clipboard: %w", err)
	}
	return nil
}
