package datatables

import (
	"strings"

	"golang.org/x/text/cases"
)

// matcher checks whether a column value contains a keyword.
type matcher struct {
	keyword         string
	caseInsensitive bool
	caser           cases.Caser
}

func newMatcher(keyword string, caseInsensitive bool) *matcher {
	m := &matcher{keyword: keyword, caseInsensitive: caseInsensitive}
	if caseInsensitive {
		m.caser = cases.Fold()
		m.keyword = m.caser.String(keyword)
	}
	return m
}

func (m *matcher) match(value interface{}) bool {
	s, ok := toString(value)
	if !ok {
		return false
	}
	if m.caseInsensitive {
		s = m.caser.String(s)
	}
	return strings.Contains(s, m.keyword)
}

// filterGlobal keeps the records where at least one searchable column contains
// the keyword. Columns missing from a record are skipped.
func filterGlobal(records []Record, request *Request, columns *columnResolver, caseInsensitive bool) ([]Record, error) {
	keyword := request.Keyword()
	if keyword == "" {
		return records, nil
	}

	specs, err := columns.Searchable()
	if err != nil {
		return nil, err
	}
	identities := make([]string, 0, len(specs))
	for _, spec := range specs {
		identities = append(identities, spec.Identity)
	}

	m := newMatcher(keyword, caseInsensitive)
	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		row := Serialize(record)
		for _, identity := range identities {
			value, ok := row.Lookup(identity)
			if ok && m.match(value) {
				filtered = append(filtered, record)
				break
			}
		}
	}
	return filtered, nil
}

// filterByColumn applies every per-column keyword in turn, so a record has to
// match all of them to be kept.
func filterByColumn(records []Record, request *Request, columns *columnResolver, caseInsensitive bool) ([]Record, error) {
	for i := range request.Columns {
		if !request.IsColumnSearchable(i) {
			continue
		}

		identity, err := columns.IdentityOf(i)
		if err != nil {
			return nil, err
		}

		m := newMatcher(request.ColumnKeyword(i), caseInsensitive)
		filtered := make([]Record, 0, len(records))
		for _, record := range records {
			value, ok := Serialize(record).Lookup(identity)
			if ok && m.match(value) {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}
	return records, nil
}
