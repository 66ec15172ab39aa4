package cmd

import (
	"strings"

	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/pipeline"
)

// loadUploads reads paths, warning about any skipped for their extension.
func loadUploads(paths []string, anyFormat bool) ([]pipeline.Upload, error) {
	uploads, skipped, err := pipeline.ReadFiles(paths, anyFormat)
	if len(skipped) > 0 {
		display.Warn("Skipping unsupported files (accepted: " +
			strings.Join(pipeline.AcceptedExtensions, " ") + "): " + strings.Join(skipped, ", "))
	}
	return uploads, err
}
