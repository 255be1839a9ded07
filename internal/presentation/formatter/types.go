package formatter

import (
	"fmt"
	"io"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

// Formatter renders collected journey data to an output stream.
type Formatter interface {
	Format(data *model.JourneyData) error
}

// New returns the formatter for the given output format name.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
