package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Sub-amount keys carried by structured earnings.
const (
	SenderTotalPay = "senderTotalPay"
	TotalFare      = "totalFare"
)

// AmountKind tags the stored shape of a monetary field.
type AmountKind int

const (
	// AmountAbsent is a missing or null field.
	AmountAbsent AmountKind = iota
	// AmountNumeric is a number, or a string that reads as one.
	AmountNumeric
	// AmountStructured is a document of named sub-amounts.
	AmountStructured
	// AmountText is free text that may embed "key: number" pairs.
	AmountText
)

func (k AmountKind) String() string {
	switch k {
	case AmountNumeric:
		return "numeric"
	case AmountStructured:
		return "structured"
	case AmountText:
		return "text"
	default:
		return "absent"
	}
}

// Amount is a monetary field of unreliable shape. It is only read through
// Normalize and NormalizeField.
type Amount struct {
	kind   AmountKind
	number float64
	parts  map[string]float64
	raw    string
}

// NumericAmount builds a numeric amount.
func NumericAmount(v float64) Amount {
	return Amount{kind: AmountNumeric, number: v, raw: fmt.Sprint(v)}
}

// StructuredAmount builds an amount from named sub-amounts.
func StructuredAmount(parts map[string]float64) Amount {
	copied := make(map[string]float64, len(parts))
	for k, v := range parts {
		copied[k] = v
	}
	a := Amount{kind: AmountStructured, parts: copied}
	a.raw = a.describeParts()
	return a
}

// TextAmount interprets s the way a stored string is interpreted: numeric if it
// reads as a number, free text otherwise.
func TextAmount(s string) Amount {
	return amountFromString(s)
}

// Kind returns the stored shape.
func (a Amount) Kind() AmountKind {
	return a.kind
}

// IsAbsent reports whether the field was missing.
func (a Amount) IsAbsent() bool {
	return a.kind == AmountAbsent
}

// Raw returns the stored value as text, for diagnostics.
func (a Amount) Raw() string {
	return a.raw
}

// Has reports whether subKey can be read from the amount. Numeric amounts answer
// every key.
func (a Amount) Has(subKey string) bool {
	switch a.kind {
	case AmountNumeric:
		return true
	case AmountStructured:
		_, ok := a.lookupPart(subKey)
		return ok
	case AmountText:
		_, ok := extractEmbedded(a.raw, subKey)
		return ok
	default:
		return false
	}
}

// Issue describes a monetary value that was degraded to zero.
type Issue struct {
	Field  string `json:"field"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Field, i.Raw, i.Reason)
}

// Normalize extracts subKey from the amount. Absent and malformed values read as 0.
func Normalize(a Amount, subKey string) float64 {
	v, _ := NormalizeField("", a, subKey)
	return v
}

// NormalizeField is Normalize that also describes why a present value became 0.
// The returned value is always finite and non-negative.
func NormalizeField(field string, a Amount, subKey string) (float64, *Issue) {
	var (
		v  float64
		ok bool
	)

	switch a.kind {
	case AmountAbsent:
		return 0, nil
	case AmountNumeric:
		v = a.number
	case AmountStructured:
		if v, ok = a.lookupPart(subKey); !ok {
			return 0, a.issue(field, fmt.Sprintf("missing sub-amount %q", subKey))
		}
	case AmountText:
		if v, ok = extractEmbedded(a.raw, subKey); !ok {
			return 0, a.issue(field, fmt.Sprintf("no %q amount in text", subKey))
		}
	}

	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, a.issue(field, "non-finite amount")
	case v < 0:
		return 0, a.issue(field, "negative amount")
	}
	return v, nil
}

func (a Amount) issue(field, reason string) *Issue {
	return &Issue{Field: field, Raw: a.raw, Reason: reason}
}

func (a Amount) lookupPart(subKey string) (float64, bool) {
	if v, ok := a.parts[subKey]; ok {
		return v, true
	}
	for k, v := range a.parts {
		if strings.EqualFold(k, subKey) {
			return v, true
		}
	}
	return 0, false
}

func (a Amount) describeParts() string {
	keys := make([]string, 0, len(a.parts))
	for k := range a.parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %v", k, a.parts[k]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

var currencyMarkers = []string{"₹", "$", "€", "£", "rs.", "rs", "inr", "usd"}

// parseNumber reads s as a number after dropping whitespace, thousands
// separators and one leading or trailing currency marker.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, marker := range currencyMarkers {
		if strings.HasPrefix(lower, marker) {
			s = s[len(marker):]
			break
		}
		if strings.HasSuffix(lower, marker) {
			s = s[:len(s)-len(marker)]
			break
		}
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func amountFromString(s string) Amount {
	if strings.TrimSpace(s) == "" {
		return Amount{}
	}
	if v, ok := parseNumber(s); ok {
		return Amount{kind: AmountNumeric, number: v, raw: s}
	}
	return Amount{kind: AmountText, raw: s}
}

var embeddedPatterns sync.Map

func embeddedPattern(subKey string) *regexp.Regexp {
	if re, ok := embeddedPatterns.Load(subKey); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)(?:^|[^a-z0-9_])["']?` + regexp.QuoteMeta(subKey) +
		`["']?\s*[:=]\s*["']?\s*(?:₹|\$|rs\.?|inr)?\s*(-?[0-9][0-9,]*(?:\.[0-9]+)?)`)
	embeddedPatterns.Store(subKey, re)
	return re
}

func extractEmbedded(text, subKey string) (float64, bool) {
	if subKey == "" {
		return 0, false
	}
	m := embeddedPattern(subKey).FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseNumber(m[1])
}

// UnmarshalBSONValue decodes any stored shape without failing the document.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		*a = Amount{}
	case bsontype.Double:
		*a = NumericAmount(rv.Double())
	case bsontype.Int32:
		*a = NumericAmount(float64(rv.Int32()))
	case bsontype.Int64:
		*a = NumericAmount(float64(rv.Int64()))
	case bsontype.Decimal128:
		*a = amountFromString(rv.Decimal128().String())
	case bsontype.String:
		*a = amountFromString(rv.StringValue())
	case bsontype.EmbeddedDocument:
		elems, err := rv.Document().Elements()
		if err != nil {
			*a = Amount{kind: AmountText, raw: rv.String()}
			return nil
		}
		parts := make(map[string]float64, len(elems))
		for _, e := range elems {
			if v, ok := numericValue(e.Value()); ok {
				parts[e.Key()] = v
			}
		}
		*a = Amount{kind: AmountStructured, parts: parts, raw: rv.String()}
	default:
		*a = Amount{kind: AmountText, raw: rv.String()}
	}
	return nil
}

func numericValue(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Double:
		return v.Double(), true
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Decimal128:
		return parseNumber(v.Decimal128().String())
	case bsontype.String:
		return parseNumber(v.StringValue())
	default:
		return 0, false
	}
}

// UnmarshalJSON accepts null, numbers, strings and objects of numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountFromString(s)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		parts := make(map[string]float64, len(fields))
		for k, raw := range fields {
			var inner Amount
			if err := inner.UnmarshalJSON(raw); err == nil && inner.kind == AmountNumeric {
				parts[k] = inner.number
			}
		}
		*a = Amount{kind: AmountStructured, parts: parts, raw: string(data)}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*a = Amount{kind: AmountText, raw: string(data)}
			return nil
		}
		v, err := n.Float64()
		if err != nil {
			*a = Amount{kind: AmountText, raw: string(data)}
			return nil
		}
		*a = Amount{kind: AmountNumeric, number: v, raw: n.String()}
	}
	return nil
}

// MarshalJSON writes the amount back in its stored shape.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AmountNumeric:
		if math.IsNaN(a.number) || math.IsInf(a.number, 0) {
			return json.Marshal(a.raw)
		}
		return json.Marshal(a.number)
	case AmountStructured:
		return json.Marshal(a.parts)
	case AmountText:
		return json.Marshal(a.raw)
	default:
		return []byte("null"), nil
	}
}
