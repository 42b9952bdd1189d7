package pqb

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/mitranim/refut"
)

/*
Takes a struct and generates a string of column names suitable for inclusion
into `select`. Also accepts the following inputs and automatically dereferences
them into a struct type:

	* Struct pointer.
	* Struct slice.
	* Struct slice pointer.

Nil slices and pointers are fine, as long as they carry a struct type. Any other
input causes a panic.

Should be used in conjunction with `Query`. Also see `Query.WrapSelectCols()`.
*/
func Cols(dest any) string {
	rtype := refut.RtypeDeref(reflect.TypeOf(dest))
	if rtype.Kind() == reflect.Slice {
		rtype = refut.RtypeDeref(rtype.Elem())
	}

	if rtype.Kind() != reflect.Struct {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: `generating struct columns for select clause`,
			Cause: fmt.Errorf(`expected struct, got %q`, rtype),
		})
	}

	idents := structRtypeSqlIdents(rtype)
	return sqlIdent{idents: idents}.selectString()
}

/*
Scans a struct, converting fields tagged with `db` into `WHERE` conjuncts for
the `Select` builder: one equality condition per field, except that fields
whose value would encode as SQL `null` become `IS NULL` conditions. The input
must be a struct or a struct pointer. A nil pointer is fine and produces a nil
result. Panics on other inputs.

	text := pqb.SelectFrom(`users`).Where(pqb.StructCond(filter)...).ToSQL()
*/
func StructCond(src any) []Expr {
	var out []Expr
	traverseStructDbFields(src, func(name string, value any) {
		arg := Named(name, value)
		val, err := arg.Norm()
		try(err)

		if val == nil {
			out = append(out, IsNull(Col(name)))
		} else {
			out = append(out, Eq(Col(name), ValueOf(val)))
		}
	})
	return out
}

/*
Scans a struct, accumulating fields tagged with `db` into a map suitable for
`Query.AppendNamed`. The input must be a struct or a struct pointer. A nil
pointer is fine and produces an empty non-nil map. Panics on other inputs.
Treats embedded structs as part of enclosing structs.
*/
func StructMap(input any) map[string]any {
	dict := map[string]any{}
	traverseStructDbFields(input, func(name string, value any) {
		dict[name] = value
	})
	return dict
}

/*
Scans a struct, converting fields tagged with `db` into a sequence of named
`NamedArgs`. The input must be a struct or a struct pointer. A nil pointer is
fine and produces a nil result. Panics on other inputs. Treats embedded structs
as part of enclosing structs.
*/
func StructNamedArgs(input any) NamedArgs {
	var args NamedArgs
	traverseStructDbFields(input, func(name string, value any) {
		args = append(args, Named(name, value))
	})
	return args
}

/*
Sequence of named SQL arguments with utility methods for query building. Usually
obtained by calling `StructNamedArgs()`.
*/
type NamedArgs []NamedArg

/*
Returns a query whose string representation is suitable for an SQL `select`
clause. Should be included into other queries via `Query.Append` or
`Query.AppendNamed`.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{
		One: 10,
		Two: 20,
	}

	text := StructNamedArgs(val).Names().String()

Is equivalent to:

	text := `"one", "two"`
*/
func (self NamedArgs) Names() Query {
	var query Query
	self.queryAppendNames(&query)
	return query
}

func (self NamedArgs) queryAppendNames(query *Query) {
	for i, arg := range self {
		if i > 0 {
			appendStr(&query.Text, `, `)
		}
		arg.queryAppendName(query)
	}
}

/*
Returns a query whose string representation is suitable for an SQL `values()`
clause, with arguments. Should be included into other queries via
`Query.Append` or `Query.AppendNamed`.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{
		One: 10,
		Two: 20,
	}

	query := StructNamedArgs(val).Values()
	text := query.String()
	args := query.Args

Is equivalent to:

	text := `$1, $2`
	args := []any{10, 20}
*/
func (self NamedArgs) Values() Query {
	query := Query{Args: make([]any, 0, len(self))}
	self.queryAppendValues(&query)
	return query
}

func (self NamedArgs) queryAppendValues(query *Query) {
	for i, arg := range self {
		if i > 0 {
			appendStr(&query.Text, `, `)
		}
		arg.queryAppendValue(query)
	}
}

/*
Returns a query whose string representation is suitable for an SQL `insert`
clause, with arguments. Should be included into other queries via
`Query.Append` or `Query.AppendNamed`.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{
		One: 10,
		Two: 20,
	}

	query := StructNamedArgs(val).NamesAndValues()
	text := query.String()
	args := query.Args

Is equivalent to:

	text := `("one", "two") values ($1, $2)`
	args := []any{10, 20}
*/
func (self NamedArgs) NamesAndValues() Query {
	if len(self) == 0 {
		return Query{Text: []byte(`default values`)}
	}

	query := Query{Args: make([]any, 0, len(self))}

	appendStr(&query.Text, `(`)
	self.queryAppendNames(&query)
	appendStr(&query.Text, `) values (`)
	self.queryAppendValues(&query)
	appendStr(&query.Text, `)`)

	return query
}

/*
Returns a query whose string representation is suitable for an SQL `update set`
clause, with arguments. Should be included into other queries via
`Query.Append` or `Query.AppendNamed`.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{
		One: 10,
		Two: 20,
	}

	query := StructNamedArgs(val).Assignments()
	text := query.String()
	args := query.Args

Is equivalent to:

	text := `"one" = $1, "two" = $2`
	args := []any{10, 20}

Known issue: when empty, this generates an empty query which is invalid SQL.
Don't use this when `NamedArgs` is empty.
*/
func (self NamedArgs) Assignments() Query {
	query := Query{Args: make([]any, 0, len(self))}

	for i, arg := range self {
		if i > 0 {
			appendStr(&query.Text, `, `)
		}
		arg.queryAppendName(&query)
		query.Append(`= $1`, arg.Value)
	}

	return query
}

/*
Returns a query whose string representation is suitable for an SQL `where` or
`on` clause, with arguments. Should be included into other queries via
`Query.Append` or `Query.AppendNamed`.

For example, this:

	val := struct {
		One   int64  `db:"one"`
		Two   int64  `db:"two"`
		Three *int64 `db:"three"`
	}{
		One: 10,
		Two: 20,
	}

	query := StructNamedArgs(val).Conditions()
	text := query.String()
	args := query.Args

Is equivalent to:

	text := `"one" = $1 and "two" = $2 and "three" is null`
	args := []any{10, 20}
*/
func (self NamedArgs) Conditions() Query {
	if len(self) == 0 {
		return Query{Text: []byte(`true`)}
	}

	var query Query
	for i, arg := range self {
		if i > 0 {
			query.Append(`and`)
		}
		arg.queryAppendCondition(&query)
	}
	return query
}

/*
Returns true if at least one argument satisfies the predicate function. Example:

	ok := args.Some(NamedArg.IsNil)
*/
func (self NamedArgs) Some(fun func(NamedArg) bool) bool {
	for _, arg := range self {
		if fun != nil && fun(arg) {
			return true
		}
	}
	return false
}

/*
Returns true if every argument satisfies the predicate function. Example:

	ok := args.Every(NamedArg.IsNil)
*/
func (self NamedArgs) Every(fun func(NamedArg) bool) bool {
	for _, arg := range self {
		if fun == nil || !fun(arg) {
			return false
		}
	}
	return true
}

// Convenience function for creating a named arg without struct field labels.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Same as `sql.NamedArg`, with additional methods. See `NamedArgs`.
type NamedArg struct {
	Name  string
	Value any
}

// Normalizes the inner value by attempting SQL encoding. Used internally for
// detecting nils, which influences `NamedArgs.Conditions` and `StructCond`.
func (self NamedArg) Norm() (val any, err error) {
	defer rec(&err)
	return norm(self.Value), nil
}

/*
Returns true if the value would be equivalent to `null` in SQL. Caution: this is
NOT the same as comparing the value to `nil`:

	NamedArg{}.Value == nil                      // true
	NamedArg{}.IsNil()                           // true

	NamedArg{Value: (*string)(nil)}.Value == nil // false
	NamedArg{Value: (*string)(nil)}.IsNil()      // true
*/
func (self NamedArg) IsNil() bool {
	val, _ := self.Norm()
	return val == nil
}

func (self NamedArg) queryAppendName(query *Query) {
	appendSpaceIfNeeded(&query.Text)
	appendEnclosed(&query.Text, `"`, self.Name, `"`)
}

func (self NamedArg) queryAppendValue(query *Query) {
	query.Append(`$1`, self.Value)
}

func (self NamedArg) queryAppendCondition(query *Query) {
	val, err := self.Norm()
	try(err)

	self.queryAppendName(query)

	if val == nil {
		appendStr(&query.Text, ` is null`)
	} else {
		query.Append(`= $1`, val)
	}
}

func structRtypeSqlIdents(rtype reflect.Type) []sqlIdent {
	var idents []sqlIdent

	err := refut.TraverseStructRtype(rtype, func(sfield reflect.StructField, _ []int) error {
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}

		fieldRtype := refut.RtypeDeref(sfield.Type)
		if fieldRtype.Kind() == reflect.Struct && !isScannableRtype(fieldRtype) {
			idents = append(idents, sqlIdent{
				name:   colName,
				idents: structRtypeSqlIdents(fieldRtype),
			})
			return nil
		}

		idents = append(idents, sqlIdent{name: colName})
		return nil
	})
	if err != nil {
		panic(err)
	}

	return idents
}

type sqlIdent struct {
	name   string
	idents []sqlIdent
}

func (self sqlIdent) selectString() string {
	return bytesToMutableString(self.appendSelect(nil, nil))
}

func (self sqlIdent) appendSelect(buf []byte, path []sqlIdent) []byte {
	/**
	If the ident doesn't have a name, it's just a collection of other idents,
	which are considered to be at the "top level". If the ident has a name, it's
	considered to "contain" the other idents.
	*/
	if len(self.idents) > 0 {
		if self.name != "" {
			path = append(path, self)
		}
		for _, ident := range self.idents {
			buf = ident.appendSelect(buf, path)
		}
		return buf
	}

	if self.name == "" {
		return buf
	}

	if len(buf) > 0 {
		appendStr(&buf, `, `)
	}

	if len(path) == 0 {
		buf = self.appendAlias(buf, nil)
	} else {
		buf = self.appendPath(buf, path)
		appendStr(&buf, ` as `)
		buf = self.appendAlias(buf, path)
	}

	return buf
}

func (self sqlIdent) appendPath(buf []byte, path []sqlIdent) []byte {
	for i, ident := range path {
		if i == 0 {
			appendEnclosed(&buf, `("`, ident.name, `")`)
		} else {
			appendEnclosed(&buf, `"`, ident.name, `"`)
		}
		appendStr(&buf, `.`)
	}
	appendEnclosed(&buf, `"`, self.name, `"`)
	return buf
}

func (self sqlIdent) appendAlias(buf []byte, path []sqlIdent) []byte {
	appendStr(&buf, `"`)
	for _, ident := range path {
		appendStr(&buf, ident.name)
		appendStr(&buf, `.`)
	}
	appendStr(&buf, self.name)
	appendStr(&buf, `"`)
	return buf
}

/*
TODO: consider validating that the column name doesn't contain double quotes. We
might return an error, or panic.
*/
func sfieldColumnName(sfield reflect.StructField) string {
	return refut.TagIdent(sfield.Tag.Get("db"))
}

var timeRtype = reflect.TypeOf(time.Time{})
var sqlScannerRtype = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

func isScannableRtype(rtype reflect.Type) bool {
	return rtype != nil &&
		(rtype == timeRtype || reflect.PtrTo(rtype).Implements(sqlScannerRtype))
}

func traverseStructDbFields(input any, fun func(string, any)) {
	rval := reflect.ValueOf(input)
	rtype := refut.RtypeDeref(rval.Type())

	if rtype.Kind() != reflect.Struct {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: `traversing struct for DB fields`,
			Cause: fmt.Errorf(`expected struct, got %q`, rtype),
		})
	}

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval reflect.Value, sfield reflect.StructField, _ []int) error {
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}
		fun(colName, rval.Interface())
		return nil
	})
	if err != nil {
		panic(err)
	}
}
