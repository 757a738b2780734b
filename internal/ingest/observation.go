package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawObservation is one scraped product sighting as emitted by a store
// scraper. It lives only for the duration of a reconciliation run.
type RawObservation struct {
	StoreName  string      `json:"store_name"`
	Category   string      `json:"type"`
	PartNumber PartNumbers `json:"part #"`
	Price      FlexString  `json:"price"`
	URL        string      `json:"url"`
	ImageURL   string      `json:"image_url"`
	SourceFile string      `json:"-"`
}

// FlexString decodes a JSON string or number into a string. Scrapers are not
// consistent about quoting prices.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(trimmed)
	return nil
}

func (f FlexString) String() string { return string(f) }

func (f FlexString) IsZero() bool { return strings.TrimSpace(string(f)) == "" }

// PartNumbers decodes the scrapers' part-number field, which arrives as a
// plain string, a JSON list, or a stringified list such as "['A1', 'A2']".
type PartNumbers struct {
	raw    string
	values []string
}

func (p *PartNumbers) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = PartNumbers{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = PartNumbers{raw: s}
	case '[':
		var items []FlexString
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			if v := strings.TrimSpace(item.String()); v != "" {
				values = append(values, v)
			}
		}
		*p = PartNumbers{values: values}
	default:
		*p = PartNumbers{raw: string(trimmed)}
	}
	return nil
}

// Candidates returns the ordered part-number candidates to try against the
// specification catalog.
func (p PartNumbers) Candidates() []string {
	if len(p.values) > 0 {
		out := make([]string, len(p.values))
		copy(out, p.values)
		return out
	}
	return ParsePartNumbers(p.raw)
}

// IsZero reports whether the field carried no usable value at all.
func (p PartNumbers) IsZero() bool {
	return len(p.values) == 0 && strings.TrimSpace(p.raw) == ""
}

// String renders the field for the unmatched log, preserving the raw form
// the scraper emitted where possible.
func (p PartNumbers) String() string {
	if len(p.values) > 0 {
		return "[" + strings.Join(p.values, ", ") + "]"
	}
	return p.raw
}
