// Package comment defines the review comment row model, its CSV codec
// and the normalization rules applied before any renderer sees a row.
package comment

// Default category applied when a row has none.
const DefaultCategory = "Other"

// Row is one code-review comment as processed in memory. Free-text
// fields hold real line breaks; the CSV codec is responsible for the
// escaped on-disk form.
type Row struct {
	Filename   string `json:"filename"`
	Lines      string `json:"lines,omitempty"`
	Title      string `json:"title,omitempty"`
	Comment    string `json:"comment"`
	Priority   int    `json:"priority"`
	Category   string `json:"category,omitempty"`
	Additional string `json:"additional,omitempty"`
	SHA        string `json:"sha,omitempty"`
	URL        string `json:"url,omitempty"`

	// Code holds extracted source text. Populated only when code
	// inclusion is enabled, and stripped from JSON output otherwise.
	Code string `json:"code,omitempty"`
}

// PriorityLabels maps the small integer priority scale to display
// labels; the value at index 0 doubles as the "unset" label.
type PriorityLabels []string

// Label returns the display label for a priority value. Absent or
// out-of-range values map to the unset label, never to an error.
func (p PriorityLabels) Label(priority int) string {
	if priority >= 0 && priority < len(p) && p[priority] != "" {
		return p[priority]
	}
	if len(p) > 0 && p[0] != "" {
		return p[0]
	}
	return "unset"
}

// Normalize produces a row safe for in-memory processing: free-text
// fields are unescaped and an absent category receives the default.
func Normalize(r Row) Row {
	r.Title = Unescape(r.Title)
	r.Comment = Unescape(r.Comment)
	r.Additional = Unescape(r.Additional)
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	return r
}
