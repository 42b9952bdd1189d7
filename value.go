package pqb

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"math"
	r "reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Enum of value variants. See `Value`.
type ValueKind byte

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueText
	ValueBytes
	ValueUUID
	ValueJSON
	ValueArray
)

/*
A literal SQL value: a closed tagged union over the types this package knows
how to render. The zero value is SQL `null`. Construct via `Null`, `Bool`,
`Int`, `Float`, `Text`, `Bytes`, `UUID`, `JSON`, `Array`, or convert arbitrary
Go values via `ValueOf`.

In inline mode, renders as a Postgres literal. In parameter mode, becomes one
ordinal parameter carrying the native Go value; see `(Value).Arg`.
*/
type Value struct {
	kind    ValueKind
	boolean bool
	integer int64
	double  float64
	text    string
	bytes   []byte
	uid     uuid.UUID
	items   []Value
}

// SQL `null`. Same as `Value{}`.
func Null() Value { return Value{} }

// Boolean value, rendered as `TRUE` / `FALSE`.
func Bool(val bool) Value { return Value{kind: ValueBool, boolean: val} }

// Integer value, rendered in decimal.
func Int(val int64) Value { return Value{kind: ValueInt, integer: val} }

/*
Floating-point value, rendered as the shortest decimal form that round-trips.
The non-finite values render as the quoted literals 'NaN', 'Infinity',
'-Infinity', which Postgres accepts for the floating-point types.
*/
func Float(val float64) Value { return Value{kind: ValueFloat, double: val} }

// Text value, rendered as a single-quoted literal. See `appendTextLiteral` for
// the escaping policy.
func Text(val string) Value { return Value{kind: ValueText, text: val} }

// Byte string, rendered as a Postgres hex bytea literal such as `'\x0102'`.
func Bytes(val []byte) Value { return Value{kind: ValueBytes, bytes: val} }

// UUID value, rendered as a quoted canonical form.
func UUID(val uuid.UUID) Value { return Value{kind: ValueUUID, uid: val} }

// JSON document, rendered as a quoted text literal of the raw JSON.
func JSON(val json.RawMessage) Value { return Value{kind: ValueJSON, text: string(val)} }

// Array of values, rendered as `ARRAY[...]`. The empty array renders as the
// literal '{}', which unlike `ARRAY[]` doesn't require a cast in Postgres.
func Array(vals ...Value) Value { return Value{kind: ValueArray, items: vals} }

/*
Converts an arbitrary Go value to a `Value`. Supports nil, booleans, all
integer and float widths, strings, byte slices, `uuid.UUID`,
`json.RawMessage`, `time.Time`, `driver.Valuer` implementors, pointers (nil
pointers become SQL `null`), and slices (which become arrays). Panics on
anything else.
*/
func ValueOf(src any) Value {
	switch src := src.(type) {
	case nil:
		return Value{}
	case Value:
		return src
	case bool:
		return Bool(src)
	case int:
		return Int(int64(src))
	case int8:
		return Int(int64(src))
	case int16:
		return Int(int64(src))
	case int32:
		return Int(int64(src))
	case int64:
		return Int(src)
	case uint:
		return Int(int64(src))
	case uint8:
		return Int(int64(src))
	case uint16:
		return Int(int64(src))
	case uint32:
		return Int(int64(src))
	case uint64:
		return Int(int64(src))
	case float32:
		return Float(float64(src))
	case float64:
		return Float(src)
	case string:
		return Text(src)
	case []byte:
		return Bytes(src)
	case uuid.UUID:
		return UUID(src)
	case json.RawMessage:
		return JSON(src)
	case time.Time:
		return Text(src.Format(time.RFC3339Nano))
	}

	valuer, _ := src.(driver.Valuer)
	if valuer != nil {
		if isNil(valuer) {
			return Value{}
		}
		return ValueOf(try1(valuer.Value()))
	}

	return valueOfReflect(src)
}

func valueOfReflect(src any) Value {
	val := r.ValueOf(src)

	switch val.Kind() {
	case r.Ptr:
		if val.IsNil() {
			return Value{}
		}
		return ValueOf(val.Elem().Interface())

	case r.Slice:
		if val.IsNil() {
			return Value{}
		}
		items := make([]Value, val.Len())
		for ind := range items {
			items[ind] = ValueOf(val.Index(ind).Interface())
		}
		return Array(items...)

	default:
		panic(ErrInvalidInput.while(`converting Go value to SQL value`).because(
			errf(`unsupported type %T`, src),
		))
	}
}

// Returns the variant tag.
func (self Value) Kind() ValueKind { return self.kind }

// True if the value is SQL `null`.
func (self Value) IsNull() bool { return self.kind == ValueNull }

/*
Returns the native Go value used as a query argument in parameter mode: nil,
`bool`, `int64`, `float64`, `string`, `[]byte`, `uuid.UUID`, or `[]any` for
arrays.
*/
func (self Value) Arg() any {
	switch self.kind {
	case ValueNull:
		return nil
	case ValueBool:
		return self.boolean
	case ValueInt:
		return self.integer
	case ValueFloat:
		return self.double
	case ValueText, ValueJSON:
		return self.text
	case ValueBytes:
		return self.bytes
	case ValueUUID:
		return self.uid
	case ValueArray:
		out := make([]any, len(self.items))
		for ind, val := range self.items {
			out[ind] = val.Arg()
		}
		return out
	default:
		panic(ErrInternal.while(`encoding SQL value`).because(
			errf(`unrecognized value kind %v`, self.kind),
		))
	}
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Value) AppendExpr(bui *Bui) { bui.Value(self) }

// Implement the `Appender` interface, rendering the inline literal form.
func (self Value) Append(text []byte) []byte {
	switch self.kind {
	case ValueNull:
		return append(text, `NULL`...)

	case ValueBool:
		if self.boolean {
			return append(text, `TRUE`...)
		}
		return append(text, `FALSE`...)

	case ValueInt:
		return appendInt(text, self.integer)

	case ValueFloat:
		return appendFloatLiteral(text, self.double)

	case ValueText, ValueJSON:
		return appendTextLiteral(text, self.text)

	case ValueBytes:
		text = append(text, quoteSingle, '\\', 'x')
		text = append(text, hex.EncodeToString(self.bytes)...)
		return append(text, quoteSingle)

	case ValueUUID:
		text = append(text, quoteSingle)
		text = append(text, self.uid.String()...)
		return append(text, quoteSingle)

	case ValueArray:
		if len(self.items) == 0 {
			return append(text, `'{}'`...)
		}
		text = append(text, `ARRAY[`...)
		for ind, val := range self.items {
			if ind > 0 {
				text = append(text, `, `...)
			}
			text = val.Append(text)
		}
		return append(text, `]`...)

	default:
		panic(ErrInternal.while(`encoding SQL value`).because(
			errf(`unrecognized value kind %v`, self.kind),
		))
	}
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Value) String() string { return bytesToMutableString(self.Append(nil)) }

func appendFloatLiteral(text []byte, val float64) []byte {
	switch {
	case math.IsNaN(val):
		return append(text, `'NaN'`...)
	case math.IsInf(val, 1):
		return append(text, `'Infinity'`...)
	case math.IsInf(val, -1):
		return append(text, `'-Infinity'`...)
	default:
		return strconv.AppendFloat(text, val, 'g', -1, 64)
	}
}

/*
Appends a single-quoted text literal. When the text contains no quotes,
backslashes, or control characters, this is a plain literal such as 'text'.
Otherwise this uses the escape form E'text', where quotes, backslashes, and
known control characters get backslash escapes, and the remaining control
characters get three-digit octal escapes.
*/
func appendTextLiteral(text []byte, val string) []byte {
	if textNeedsEscape(val) {
		return appendTextEscaped(text, val)
	}

	text = append(text, quoteSingle)
	text = append(text, val...)
	return append(text, quoteSingle)
}

func textNeedsEscape(val string) bool {
	for ind := 0; ind < len(val); ind++ {
		char := val[ind]
		if char == quoteSingle || char == '\\' || char < 0x20 {
			return true
		}
	}
	return false
}

func appendTextEscaped(text []byte, val string) []byte {
	text = append(text, 'E', quoteSingle)

	for ind := 0; ind < len(val); ind++ {
		char := val[ind]
		switch {
		case char == quoteSingle:
			text = append(text, '\\', quoteSingle)
		case char == '\\':
			text = append(text, '\\', '\\')
		case char == '\b':
			text = append(text, '\\', 'b')
		case char == '\f':
			text = append(text, '\\', 'f')
		case char == '\n':
			text = append(text, '\\', 'n')
		case char == '\r':
			text = append(text, '\\', 'r')
		case char == '\t':
			text = append(text, '\\', 't')
		case char < 0x20:
			// Three-digit octal escape for the remaining control characters.
			// Always three digits, so a following literal digit is never
			// absorbed by the octal scan.
			text = append(text, '\\', '0'+(char>>6), '0'+((char>>3)&7), '0'+(char&7))
		default:
			text = append(text, char)
		}
	}

	return append(text, quoteSingle)
}
