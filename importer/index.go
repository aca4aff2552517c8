package importer

import "anhthu_server/spreadsheet"

// IndexBy builds a lookup from the given key column to the row carrying it.
// When several rows share a key the first one seen wins; later rows only
// contribute through the explicit override rules applied by the callers
// (see mergePrice).
func IndexBy(rows []spreadsheet.Row, key string) map[string]spreadsheet.Row {
	index := make(map[string]spreadsheet.Row, len(rows))
	for _, row := range rows {
		k := row.String(key)
		if k == "" {
			continue
		}
		if _, seen := index[k]; !seen {
			index[k] = row
		}
	}
	return index
}

// GroupRowsBy builds a one-to-many lookup from the key column to all rows
// carrying that key, preserving input order (one marketplace product has
// many sales/variant rows).
func GroupRowsBy(rows []spreadsheet.Row, key string) map[string][]spreadsheet.Row {
	index := make(map[string][]spreadsheet.Row, len(rows))
	for _, row := range rows {
		k := row.String(key)
		if k == "" {
			continue
		}
		index[k] = append(index[k], row)
	}
	return index
}

// mergePrice applies the scalar override rule: a recorded zero or absent
// price is replaced by a later positive one, otherwise the stored value
// stands. Negative prices (return and adjustment rows in the export) never
// win; they coerce to the zero default like any other malformed value.
func mergePrice(stored, next float64) float64 {
	if stored == 0 && next > 0 {
		return next
	}
	return stored
}

// familyPrice folds the override rule over a family's rows, so the product
// price is the first positive price any member carries.
func familyPrice(family *Family) float64 {
	var price float64
	for _, row := range family.Rows {
		price = mergePrice(price, row.Float(posColPrice))
	}
	return price
}

// familyStock sums stock across the family's rows. Negative counts from the
// POS export (oversold items) clamp to zero.
func familyStock(family *Family) int {
	total := 0
	for _, row := range family.Rows {
		if n := row.Int(posColStock); n > 0 {
			total += n
		}
	}
	return total
}
