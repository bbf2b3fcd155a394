package sheets

// HeaderIndex maps expected field names to their column positions in the
// header row. A field missing from the header gets -1; column order in the
// sheet is never assumed.
func HeaderIndex(header []string, fields ...string) map[string]int {
	idx := make(map[string]int, len(fields))
	for _, f := range fields {
		idx[f] = -1
		for i, h := range header {
			if h == f {
				idx[f] = i
				break
			}
		}
	}
	return idx
}

// Cell reads a column from a row, padding missing or unmapped columns with
// the empty string.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
