package render

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var ErrMissingTemplateField = errors.New("missing_template_field")

// Renderer turns normalized entry data into a printable HTML document.
// The PDF engine consumes the HTML as-is.
type Renderer interface {
	RenderOffer(fields *OfferFields) (string, error)
	RenderEntry(input EntryInput) (string, error)
}

// OfferFields is an ordered field map for template substitution. Set
// never overwrites: known fields are extracted first, the raw payload is
// merged in afterwards without clobbering them.
type OfferFields struct {
	keys   []string
	values map[string]string
}

func NewOfferFields() *OfferFields {
	return &OfferFields{values: make(map[string]string)}
}

func (f *OfferFields) Set(key, value string) {
	if _, exists := f.values[key]; exists {
		return
	}
	f.keys = append(f.keys, key)
	f.values[key] = value
}

func (f *OfferFields) Get(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

func (f *OfferFields) Keys() []string {
	return f.keys
}

// NormalizeOffer extracts the offer letter's known fields, allowing the
// alternate key spellings the dashboard sends, then merges the remaining
// payload through for template substitution.
func NormalizeOffer(body map[string]any) *OfferFields {
	fields := NewOfferFields()
	fields.Set("name", firstString(body, "name", "candidateName"))
	fields.Set("position", firstString(body, "position", "eventName"))
	fields.Set("salary", firstString(body, "salary", "amount", "ctc"))

	keys := make([]string, 0, len(body))
	for key := range body {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields.Set(key, stringify(body[key]))
	}
	return fields
}

func firstString(body map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := stringify(body[key]); value != "" {
			return value
		}
	}
	return ""
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}
