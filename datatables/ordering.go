package datatables

import (
	"sort"

	"golang.org/x/text/cases"
)

// order applies the directives one after another. Each directive re-sorts the
// whole sequence ascending (stable) and reverses it when the direction is desc.
//
// With several directives the last one becomes the primary order and earlier
// directives only survive as tie breakers when no reversal happened after them.
// This is not a composite comparator, callers relying on multi column ordering
// get exactly this sequential behavior.
//
// When caseInsensitive is set strings are compared case folded first, then
// byte by byte.
func order(records []Record, directives []OrderDirective, columns *columnResolver, caseInsensitive bool) ([]Record, error) {
	for _, directive := range directives {
		identity, err := columns.IdentityOf(directive.Column)
		if err != nil {
			return nil, err
		}
		records = sortBy(records, identity, caseInsensitive)
		if directive.Dir == Descending {
			records = reverse(records)
		}
	}
	return records, nil
}

func sortBy(records []Record, column string, caseInsensitive bool) []Record {
	var caser cases.Caser
	if caseInsensitive {
		caser = cases.Fold()
	}

	keys := make([]interface{}, len(records))
	for i, record := range records {
		value, _ := Serialize(record).Lookup(column)
		if caseInsensitive {
			value = foldKey(caser, value)
		}
		keys[i] = value
	}

	index := make([]int, len(records))
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(i, j int) bool {
		return compare(keys[index[i]], keys[index[j]]) < 0
	})

	sorted := make([]Record, len(records))
	for i, idx := range index {
		sorted[i] = records[idx]
	}
	return sorted
}

func foldKey(caser cases.Caser, value interface{}) interface{} {
	value = indirect(value)
	if rank(value) != rankString {
		return value
	}
	s, ok := toString(value)
	if !ok {
		return value
	}
	return foldedString{folded: caser.String(s), raw: s}
}

func reverse(records []Record) []Record {
	reversed := make([]Record, len(records))
	for i, record := range records {
		reversed[len(records)-1-i] = record
	}
	return reversed
}
