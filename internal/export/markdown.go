package export

import (
	"fmt"
	"strings"

	"github.com/tildaslashalef/redline/internal/comment"
	"github.com/tildaslashalef/redline/internal/span"
)

const (
	// maxTitleRunes caps an explicit row title.
	maxTitleRunes = 255
	// derivedTitleRunes is how much of the comment seeds a derived title.
	derivedTitleRunes = 100
	ellipsis          = "..."
)

// Title derives the human-readable issue title shared by the CSV-style
// renderers: the row's title truncated to 255 runes when present,
// otherwise the first 100 runes of the comment plus an ellipsis marker
// if the comment is longer.
func Title(row comment.Row) string {
	if row.Title != "" {
		return truncate(row.Title, maxTitleRunes, "")
	}
	return truncate(row.Comment, derivedTitleRunes, ellipsis)
}

func truncate(s string, max int, marker string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + marker
}

// MarkdownDescription assembles the issue description used by the
// GitLab and GitHub CSV renderers. Section order is fixed: priority,
// category, affected file/lines/sha, comment, additional information,
// code fence.
func MarkdownDescription(row comment.Row, labels comment.PriorityLabels) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Priority: %s\n\n", labels.Label(row.Priority))
	fmt.Fprintf(&b, "## Category: %s\n\n", row.Category)

	b.WriteString("### Affected\n")
	fmt.Fprintf(&b, "- File: `%s`\n", row.Filename)
	if row.Lines != "" {
		fmt.Fprintf(&b, "- Lines: `%s`\n", row.Lines)
	}
	if row.SHA != "" {
		fmt.Fprintf(&b, "- SHA: `%s`\n", row.SHA)
	}
	if row.URL != "" {
		fmt.Fprintf(&b, "- URL: %s\n", row.URL)
	}
	b.WriteString("\n")

	b.WriteString(row.Comment)
	b.WriteString("\n")

	if row.Additional != "" {
		fmt.Fprintf(&b, "\n### Additional information\n%s\n", row.Additional)
	}

	if row.Code != "" {
		fmt.Fprintf(&b, "\n```%s\n%s\n```\n", span.FenceTag(row.Filename), row.Code)
	}

	return b.String()
}

// JIRADescription assembles the same sections using JIRA markup tokens
// instead of Markdown.
func JIRADescription(row comment.Row, labels comment.PriorityLabels) string {
	var b strings.Builder

	fmt.Fprintf(&b, "h2. Priority: %s\n\n", labels.Label(row.Priority))
	fmt.Fprintf(&b, "h2. Category: %s\n\n", row.Category)

	b.WriteString("h3. Affected\n")
	fmt.Fprintf(&b, "File: {{%s}}\n", row.Filename)
	if row.Lines != "" {
		fmt.Fprintf(&b, "Lines: {{%s}}\n", row.Lines)
	}
	if row.SHA != "" {
		fmt.Fprintf(&b, "SHA: {{%s}}\n", row.SHA)
	}
	if row.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", row.URL)
	}
	b.WriteString("\n")

	b.WriteString(row.Comment)
	b.WriteString("\n")

	if row.Additional != "" {
		fmt.Fprintf(&b, "\nh3. Additional information\n%s\n", row.Additional)
	}

	if row.Code != "" {
		tag := span.FenceTag(row.Filename)
		if tag != "" {
			fmt.Fprintf(&b, "\n{code:%s}\n%s\n{code}\n", tag, row.Code)
		} else {
			fmt.Fprintf(&b, "\n{code}\n%s\n{code}\n", row.Code)
		}
	}

	return b.String()
}
