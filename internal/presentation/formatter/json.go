package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(data *model.JourneyData) error {
	out, err := sonic.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = f.w.Write(out)
	return err
}
