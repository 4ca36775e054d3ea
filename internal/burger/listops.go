package burger

import (
	"sort"
	"strings"
	"time"
)

type Field string

const (
	FieldRating     Field = "rating"
	FieldLocation   Field = "location"
	FieldRestaurant Field = "restaurant"
	FieldDate       Field = "date"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldRating, FieldLocation, FieldRestaurant, FieldDate:
		return Field(s), true
	}
	return "", false
}

// DefaultDirection is what a fresh click on a sort control gets.
func DefaultDirection(f Field) Direction {
	if f == FieldRating || f == FieldDate {
		return Desc
	}
	return Asc
}

// Toggle computes the next sort state: clicking the active field flips the
// direction, clicking a different field resets to its default.
func Toggle(current Field, currentDir Direction, clicked Field) (Field, Direction) {
	if current == clicked {
		if currentDir == Asc {
			return clicked, Desc
		}
		return clicked, Asc
	}
	return clicked, DefaultDirection(clicked)
}

// Filter keeps records matching both predicates, AND semantics. An empty
// value disables its predicate. Location matches exactly, the type
// case-insensitively.
func Filter(records []Burger, location, burgerType string) []Burger {
	out := make([]Burger, 0, len(records))
	for _, b := range records {
		if location != "" && b.Location != location {
			continue
		}
		if burgerType != "" && !strings.EqualFold(b.BurgerType, burgerType) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Sort orders records in place. Callers always sort a freshly filtered copy
// of the full set, so filters and the active sort stay independent.
func Sort(records []Burger, field Field, dir Direction) {
	sort.Slice(records, func(i, j int) bool {
		cmp := compare(records[i], records[j], field)
		if dir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compare(a, b Burger, field Field) int {
	switch field {
	case FieldRating:
		switch {
		case a.Rating < b.Rating:
			return -1
		case a.Rating > b.Rating:
			return 1
		}
	case FieldLocation:
		return strings.Compare(a.Location, b.Location)
	case FieldRestaurant:
		return strings.Compare(a.Restaurant, b.Restaurant)
	case FieldDate:
		ta, tb := parseDate(a.Date), parseDate(b.Date)
		switch {
		case ta < tb:
			return -1
		case ta > tb:
			return 1
		}
	}
	return 0
}

// parseDate is lenient about the formats the dataset uses; unparsable dates
// sort as epoch zero.
func parseDate(s string) int64 {
	s = strings.TrimSpace(s)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04",
		"01/02/2006",
		"January 2, 2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}

// Locations returns the distinct locations of the set, sorted, for the
// filter dropdown.
func Locations(records []Burger) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, b := range records {
		if b.Location == "" {
			continue
		}
		if _, ok := seen[b.Location]; ok {
			continue
		}
		seen[b.Location] = struct{}{}
		out = append(out, b.Location)
	}
	sort.Strings(out)
	return out
}
