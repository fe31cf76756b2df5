package tabular

// LeftJoin joins right onto left on equality of the named key column.
// Matching is exact and case-sensitive. Every left row appears at least
// once; a left row with several matching right rows fans out to one output
// row per match, and a left row with none keeps empty right cells. Right
// rows with no matching left row are dropped. Right columns other than the
// key carry over under their own name unless it collides with a left
// column, in which case the suffix is appended.
func LeftJoin(left, right Table, key, suffix string) Table {
	out := Table{Columns: append([]string(nil), left.Columns...)}

	rightCols := make([]int, 0, len(right.Columns))
	for i, c := range right.Columns {
		if c == key {
			continue
		}
		rightCols = append(rightCols, i)
		if left.Index(c) >= 0 {
			c += suffix
		}
		out.Columns = append(out.Columns, c)
	}

	// Key value → right row indexes, preserving file order for fan-out.
	byKey := make(map[string][]int, right.Len())
	for i := range right.Rows {
		k := right.Cell(i, key)
		byKey[k] = append(byKey[k], i)
	}

	for li, lrow := range left.Rows {
		matches := byKey[left.Cell(li, key)]
		if len(matches) == 0 {
			row := make([]string, 0, len(out.Columns))
			row = append(row, lrow...)
			for range rightCols {
				row = append(row, "")
			}
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, ri := range matches {
			row := make([]string, 0, len(out.Columns))
			row = append(row, lrow...)
			for _, ci := range rightCols {
				var v string
				if ci < len(right.Rows[ri]) {
					v = right.Rows[ri][ci]
				}
				row = append(row, v)
			}
			out.Rows = append(out.Rows, row)
		}
	}

	return out
}
