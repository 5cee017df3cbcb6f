package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Sell status tokens used by the backend.
const (
	SellStatusOnSale  = "SELL"
	SellStatusSoldOut = "SOLD_OUT"
	SellStatusStopped = "STOP"
)

// Item is a product record as returned by the shop backend. Category labels
// arrive under different fields depending on the endpoint.
type Item struct {
	ID           Scalar `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Brand        string `json:"brand,omitempty"`
	SellStatus   string `json:"sellStatus"`
	Stock        Scalar `json:"stock"`
	Price        Scalar `json:"price"`
	ImageURL     string `json:"imageUrl,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	Categories   Labels `json:"categories,omitempty"`
	CategoryList Labels `json:"categoryList,omitempty"`
	Tags         Labels `json:"tags,omitempty"`
	Category     Labels `json:"category,omitempty"`
}

// ItemsResponse is the paged envelope some item endpoints wrap results in.
type ItemsResponse struct {
	Items   []Item `json:"items,omitempty"`
	Data    []Item `json:"data,omitempty"`
	Content []Item `json:"content,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// List returns whichever item list the envelope carried.
func (r ItemsResponse) List() []Item {
	switch {
	case r.Items != nil:
		return r.Items
	case r.Data != nil:
		return r.Data
	default:
		return r.Content
	}
}

// Scalar keeps the raw text of a JSON string or number. The backend sends
// prices and stock counts as either.
type Scalar struct {
	Raw   string
	Valid bool
}

// NewScalar wraps a raw value.
func NewScalar(raw string) Scalar {
	return Scalar{Raw: raw, Valid: true}
}

// String returns the raw text, or "" when the field was absent or null.
func (s Scalar) String() string {
	return s.Raw
}

// UnmarshalJSON accepts strings, numbers and null. Other literals are kept
// as raw text so numeric parsing rejects them later.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = Scalar{Raw: str, Valid: true}
		return nil
	}
	*s = Scalar{Raw: string(trimmed), Valid: true}
	return nil
}

// MarshalJSON writes numbers unquoted and everything else as a string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	var n json.Number
	if err := json.Unmarshal([]byte(s.Raw), &n); err == nil {
		return []byte(s.Raw), nil
	}
	return json.Marshal(s.Raw)
}

// Labels is a list of category or tag labels. It decodes a single string, a
// list of strings, a category object, or a list of category objects.
type Labels []string

var labelKeys = []string{"name", "value", "label", "categoryName", "title"}

// UnmarshalJSON never fails on an unexpected shape; unusable entries are skipped.
func (l *Labels) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] != '[' {
		if label, ok := labelFrom(trimmed); ok {
			*l = Labels{label}
		} else {
			*l = nil
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	out := make(Labels, 0, len(raw))
	for _, entry := range raw {
		if label, ok := labelFrom(entry); ok {
			out = append(out, label)
		}
	}
	*l = out
	return nil
}

func labelFrom(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", false
		}
		for _, key := range labelKeys {
			if v, ok := obj[key]; ok {
				if label, ok := labelFrom(v); ok {
					return label, true
				}
			}
		}
		return "", false
	default:
		return "", false
	}
}
