package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tildaslashalef/redline/internal/comment"
)

// jsonDescriptor renders the raw JSON dump: a pretty-printed array of
// row objects with no text transformation. Buffered so an input error
// never leaves a truncated array behind.
type jsonDescriptor struct {
	includeCode bool
}

func newJSONDescriptor(opts Options) *jsonDescriptor {
	return &jsonDescriptor{includeCode: opts.IncludeCode}
}

func (d *jsonDescriptor) Format() Format { return FormatJSON }
func (d *jsonDescriptor) Buffered() bool { return true }

func (d *jsonDescriptor) Begin(w io.Writer) error { return nil }

func (d *jsonDescriptor) Row(w io.Writer, row comment.Row) error { return nil }

func (d *jsonDescriptor) Finish(w io.Writer, groups []Group) error {
	rows := Flatten(groups)
	if rows == nil {
		rows = []comment.Row{}
	}

	// The code field is omitted entirely when code inclusion is off
	if !d.includeCode {
		for i := range rows {
			rows[i].Code = ""
		}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rows: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
