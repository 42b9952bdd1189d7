package pqb

import (
	"database/sql/driver"
	r "reflect"
	"strconv"
	"unsafe"
)

const (
	ordinalParamPrefix = '$'
	quoteSingle        = '\''
	quoteDouble        = '"'
)

var (
	charsetSpace      = new(charset).addStr(" \t\v")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetDelimStart = new(charset).addSet(charsetWhitespace).addStr(`([{.`)
	charsetDelimEnd   = new(charset).addSet(charsetWhitespace).addStr(`,}])`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile, for example when it's part of a scratch buffer during
SQL scanning.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func maybeAppendSpace(val []byte) []byte {
	if hasDelimSuffix(bytesToMutableString(val)) {
		return val
	}
	return append(val, ` `...)
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

/*
Appends a double-quoted SQL identifier. Any double quote inside the name is
doubled, which makes the quoting injective: distinct names always produce
distinct quoted forms.
*/
func appendIdent(text []byte, val string) []byte {
	text = append(text, quoteDouble)
	for ind := 0; ind < len(val); ind++ {
		if val[ind] == quoteDouble {
			text = append(text, quoteDouble)
		}
		text = append(text, val[ind])
	}
	text = append(text, quoteDouble)
	return text
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

/*
Questionable. Could be avoided by using `is [not] distinct from` which works for
both nulls and non-nulls, but at the time of writing, that operator doesn't
work on indexes in PG, resulting in atrocious performance.
*/
func norm(val any) any {
	val = normNil(val)
	if val == nil {
		return nil
	}

	valuer, _ := val.(driver.Valuer)
	if valuer != nil {
		return try1(valuer.Value())
	}

	return val
}

func normNil(val any) any {
	if isNil(val) {
		return nil
	}
	return val
}

func isNil(val any) bool {
	return val == nil || isValueNil(r.ValueOf(val))
}

func isValueNil(val r.Value) bool {
	return !val.IsValid() || isNilable(val.Kind()) && val.IsNil()
}

func isNilable(kind r.Kind) bool {
	switch kind {
	case r.Chan, r.Func, r.Interface, r.Map, r.Ptr, r.Slice:
		return true
	default:
		return false
	}
}

func exprAppend[A Expr](val A, text []byte) []byte {
	bui := Bui{Text: text}
	val.AppendExpr(&bui)
	return bui.Text
}

func exprString[A Expr](val A) string {
	return bytesToMutableString(exprAppend(val, nil))
}

// Copied from `github.com/mitranim/gax` and tested there.
func growBytes(prev []byte, size int) []byte {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]byte, len, 2*cap+size)
	copy(next, prev)
	return next
}

// Same as `growBytes`. WTB generics.
func growInterfaces(prev []any, size int) []any {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]any, len, 2*cap+size)
	copy(next, prev)
	return next
}

func appendInt(text []byte, val int64) []byte {
	return strconv.AppendInt(text, val, 10)
}

func appendStr(buf *[]byte, val string) {
	*buf = append(*buf, val...)
}

func appendSpaceIfNeeded(buf *[]byte) {
	*buf = maybeAppendSpace(*buf)
}

func appendEnclosed(buf *[]byte, prefix, infix, suffix string) {
	*buf = append(*buf, prefix...)
	*buf = append(*buf, infix...)
	*buf = append(*buf, suffix...)
}

const bitsetSize = 64

// Tracks usage of up to 64 arguments. Enough for any sane query fragment.
type bitset uint64

func (self *bitset) set(ind int) { *self |= 1 << uint(ind) }

func (self bitset) has(ind int) bool { return self&(1<<uint(ind)) != 0 }

func isQuery(val any) bool {
	_, ok := val.(IQuery)
	return ok
}

func appendNonQueries(out *[]any, args []any) {
	for _, arg := range args {
		if !isQuery(arg) {
			*out = append(*out, arg)
		}
	}
}

// Count of query args before the given index. Queries are interpolated rather
// than appended to the argument list, which shifts the ordinals that follow.
func queryArgsBefore(args []any, index int) int {
	var count int
	for _, arg := range args[:index] {
		if isQuery(arg) {
			count++
		}
	}
	return count
}

func queryFrom(str string, args []any) Query {
	var query Query
	query.Append(str, args...)
	return query
}
