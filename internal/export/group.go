package export

import (
	"fmt"

	"github.com/tildaslashalef/redline/internal/comment"
	"github.com/tildaslashalef/redline/internal/span"
)

// GroupRows partitions rows into groups by the chosen key, preserving
// the order groups are first encountered in the row stream. This is a
// stable partition, not a sort: row order within a group reflects
// input order.
//
// When grouping by filename, each row's range tokens are re-sorted
// into ascending document order, since comments added non-sequentially
// record their ranges out of order. A malformed selector is an input
// error and fails the call. Other grouping keys leave the tokens
// untouched.
func GroupRows(rows []comment.Row, key GroupKey) ([]Group, error) {
	var groups []Group
	index := make(map[string]int)

	for _, row := range rows {
		if key == GroupByFilename && row.Lines != "" {
			sorted, err := span.SortSelector(row.Lines)
			if err != nil {
				return nil, fmt.Errorf("row for %s: %w", row.Filename, err)
			}
			row.Lines = sorted
		}

		k := groupKeyValue(row, key)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups, nil
}

// Flatten concatenates the groups' rows back into a single slice in
// group order. Grouping then flattening never drops or duplicates rows.
func Flatten(groups []Group) []comment.Row {
	var rows []comment.Row
	for _, g := range groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}

func groupKeyValue(row comment.Row, key GroupKey) string {
	if key == GroupByCategory {
		if row.Category == "" {
			return comment.DefaultCategory
		}
		return row.Category
	}
	return row.Filename
}
