package importer

import "anhthu_server/spreadsheet"

// Family is one logical catalog product assembled from point-of-sale rows:
// an anchor row plus the variant rows pointing at it through the
// related-code column.
type Family struct {
	// Key is the anchor's code: the related code when the row carries one,
	// its own code otherwise.
	Key  string
	Rows []spreadsheet.Row
}

// Main returns the anchor row: the member whose own code equals the family
// key. When the anchor itself is absent from the export (the related code
// points at a row that was never exported) the first member stands in, so an
// orphan family still imports instead of being dropped.
func (f *Family) Main() spreadsheet.Row {
	for _, row := range f.Rows {
		if row.String(posColCode) == f.Key {
			return row
		}
	}
	return f.Rows[0]
}

// GroupFamilies collapses point-of-sale rows into product families keyed by
// `related_code || own_code`. Because the key is computed per row from the
// pointer the row itself carries, membership does not depend on the order
// rows are processed in: any permutation of the input yields the same
// families. Families are returned in first-seen order.
func GroupFamilies(rows []spreadsheet.Row) []*Family {
	byKey := make(map[string]*Family, len(rows))
	var ordered []*Family

	for _, row := range rows {
		code := row.String(posColCode)
		if code == "" {
			continue
		}

		key := row.String(posColRelatedCode)
		if key == "" {
			key = code
		}

		family, ok := byKey[key]
		if !ok {
			family = &Family{Key: key}
			byKey[key] = family
			ordered = append(ordered, family)
		}
		family.Rows = append(family.Rows, row)
	}

	return ordered
}
