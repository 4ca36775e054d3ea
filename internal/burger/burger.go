// Package burger holds the in-memory record model and the pure
// normalize/filter/sort operations the pages are built from. The collection
// is fetched fresh on each load and never persisted.
package burger

import (
	"encoding/json"
	"strconv"
)

// TypeNormal and TypeSmash are the two types new submissions may use.
// Fetched records keep whatever string the backend stored.
const (
	TypeNormal = "normal"
	TypeSmash  = "smash"
)

type Burger struct {
	ID         string  `json:"id"`
	Restaurant string  `json:"restaurant"`
	Location   string  `json:"location"`
	BurgerName string  `json:"burgerName"`
	BurgerType string  `json:"burgerType"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
	Instagram  string  `json:"instagram"`
	Maps       string  `json:"maps"`
}

// UnmarshalJSON tolerates the backend's loose typing: the id may arrive as
// a string or a number, the rating as a number or a numeric string.
func (b *Burger) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		Restaurant string          `json:"restaurant"`
		Location   string          `json:"location"`
		BurgerName string          `json:"burgerName"`
		BurgerType string          `json:"burgerType"`
		Rating     json.RawMessage `json:"rating"`
		Date       string          `json:"date"`
		Instagram  string          `json:"instagram"`
		Maps       string          `json:"maps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = rawString(raw.ID)
	b.Restaurant = raw.Restaurant
	b.Location = raw.Location
	b.BurgerName = raw.BurgerName
	b.BurgerType = raw.BurgerType
	b.Rating = rawNumber(raw.Rating)
	b.Date = raw.Date
	b.Instagram = raw.Instagram
	b.Maps = raw.Maps
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// Normalize unwraps the response shapes the backend is known to produce:
// a bare array, {"items":[...]}, an {"body":...} envelope whose body is a
// JSON-encoded string or a nested object, or a JSON string of any of those.
// Anything else yields an empty list; it never fails.
func Normalize(v any) []Burger {
	if s, ok := v.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return nil
		}
		v = inner
	}
	if m, ok := v.(map[string]any); ok {
		if body, present := m["body"]; present {
			if s, ok := body.(string); ok {
				var inner any
				if err := json.Unmarshal([]byte(s), &inner); err != nil {
					return nil
				}
				v = inner
			} else {
				v = body
			}
		}
	}
	switch t := v.(type) {
	case []any:
		return decodeList(t)
	case map[string]any:
		if items, ok := t["items"].([]any); ok {
			return decodeList(items)
		}
	}
	return nil
}

func decodeList(items []any) []Burger {
	out := make([]Burger, 0, len(items))
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			continue
		}
		var b Burger
		if err := json.Unmarshal(data, &b); err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}
