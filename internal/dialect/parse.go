package dialect

// parseRows splits data into rows of cells using d. Quote characters are
// dropped from the cells, an escape character keeps the rune that follows it.
// Parsing never fails: unterminated quotes run to the end of the data.
func parseRows(data string, d Dialect) [][]string {
	var (
		rows    [][]string
		row     []string
		cell    []rune
		inQuote bool
		quote   = firstRune(d.QuoteChar)
		delim   = firstRune(d.Delimiter)
		escape  = firstRune(d.EscapeChar)
	)

	endCell := func() {
		row = append(row, string(cell))
		cell = cell[:0]
	}
	endRow := func() {
		endCell()
		rows = append(rows, row)
		row = nil
	}

	runes := []rune(data)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if escape != 0 && r == escape && i+1 < len(runes) {
			i++
			cell = append(cell, runes[i])
			continue
		}

		if inQuote {
			if r == quote {
				if i+1 < len(runes) && runes[i+1] == quote {
					cell = append(cell, quote)
					i++
					continue
				}
				inQuote = false
				continue
			}
			cell = append(cell, r)
			continue
		}

		switch {
		case quote != 0 && r == quote:
			inQuote = true
		case delim != 0 && r == delim:
			endCell()
		case r == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRow()
		case r == '\n':
			endRow()
		default:
			cell = append(cell, r)
		}
	}

	if len(cell) > 0 || len(row) > 0 || inQuote {
		endRow()
	}
	return rows
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
