package tui

import (
	"errors"
	"fmt"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
)

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// userFacingError converts structured extraction errors into friendly
// messages, while leaving other error types unchanged.
func userFacingError(err error) error {
	if err == nil {
		return nil
	}

	var extractErr *extract.Error
	if errors.As(err, &extractErr) {
		return errors.New(extractErr.UserMessage())
	}

	return err
}
