package pqb

/*
Short for "expression". Defines an arbitrary SQL expression. The method appends
arbitrary SQL text to the builder, and in parameter mode may also append
arguments, with ordinal parameters such as "$1" in the text.

This method is allowed to panic. Use `(*Bui).CatchExprs` to catch
expression-encoding panics and convert them to errors.

All `Expr` types in this package also implement `Appender` and `fmt.Stringer`,
both rendering in inline mode.
*/
type Expr interface {
	AppendExpr(*Bui)
}

/*
Appends a text representation. Sometimes allows better efficiency than
`fmt.Stringer`. Implemented by all `Expr` types in this package.
*/
type Appender interface {
	Append([]byte) []byte
}
