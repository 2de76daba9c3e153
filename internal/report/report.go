package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/solstat/solstat/internal/config"
	"github.com/solstat/solstat/pkg/metrics"
)

// ErrUnsupportedFormat is returned for formats Render does not know.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options controls report rendering.
type Options struct {
	Format string
	TopN   int
}

// Render writes the repository record in the requested format.
func Render(record *metrics.RepositoryRecord, opts Options, writer io.Writer) error {
	switch opts.Format {
	case config.FormatText:
		return renderText(record, opts.TopN, writer)
	case config.FormatJSON:
		return renderJSON(record, writer)
	case config.FormatYAML:
		return renderYAML(record, writer)
	case config.FormatPlot:
		return renderPlot(record, writer)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Format)
	}
}

func renderJSON(record *metrics.RepositoryRecord, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func renderYAML(record *metrics.RepositoryRecord, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)

	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}

	return nil
}
