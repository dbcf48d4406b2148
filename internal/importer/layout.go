package importer

import "strings"

type field int

const (
	fieldForename field = iota
	fieldSurname
	fieldEmail
	fieldTelephone
	fieldHouse
	fieldStreet
	fieldPostcode
)

// column lists the header spellings accepted for one field.
type column struct {
	field    field
	names    []string
	required bool
}

// columns are matched case-insensitively. Forename and surname are the
// landmarks that identify the header row.
var columns = []column{
	{fieldForename, []string{"forename", "first name", "firstname", "first_name"}, true},
	{fieldSurname, []string{"surname", "last name", "lastname", "last_name"}, true},
	{fieldEmail, []string{"email", "e-mail", "email address"}, false},
	{fieldTelephone, []string{"telephone", "phone", "tel", "telephone number"}, false},
	{fieldHouse, []string{"house_num_name", "house", "house number", "house name"}, false},
	{fieldStreet, []string{"street_name", "street", "road"}, false},
	{fieldPostcode, []string{"postcode", "post code", "postal code", "zip"}, false},
}

// delimiters are tried in order until one yields a header row.
var delimiters = []rune{',', ';', '\t'}

// layout maps fields to their column index in the header row.
type layout map[field]int

// matchHeader returns the layout of row when it carries every required
// column.
func matchHeader(row []string) (layout, bool) {
	l := layout{}

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}

		for _, c := range columns {
			if _, seen := l[c.field]; seen {
				continue
			}

			for _, alias := range c.names {
				if name == alias {
					l[c.field] = i
					break
				}
			}
		}
	}

	for _, c := range columns {
		if _, ok := l[c.field]; c.required && !ok {
			return nil, false
		}
	}

	return l, true
}

// value returns the trimmed cell for f, or "" when the column is absent.
func (l layout) value(row []string, f field) string {
	i, ok := l[f]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
