package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind classifies a cell.
type Kind int

const (
	Missing Kind = iota
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "missing"
	}
}

// Value is a single decoded cell.
type Value struct {
	kind Kind
	num  float64
	str  string
}

var missingTokens = map[string]bool{
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// ParseValue classifies a raw cell. Blank cells and the usual missing-data
// tokens become Missing; finite decimal literals become Number. Infinities
// and hex forms stay String so they never reach a sum.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" || missingTokens[strings.ToLower(s)] {
		return Value{}
	}
	if f, ok := parseDecimal(s); ok {
		return Value{kind: Number, num: f, str: s}
	}
	return Value{kind: String, str: s}
}

func parseDecimal(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == Missing }

// Float returns the numeric value and whether the cell is a Number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Number
}

// String returns the cell as it appeared in the file, or "" when missing.
func (v Value) String() string {
	return v.str
}

// MarshalJSON renders numbers as JSON numbers, strings as strings and missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}
