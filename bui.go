package pqb

/*
Prealloc tool. Makes a `Bui` with the specified capacity of the text and args
buffers.
*/
func MakeBui(textCap, argsCap int) Bui {
	return Bui{
		Text: make([]byte, 0, textCap),
		Args: make([]any, 0, argsCap),
	}
}

/*
Encodes the provided expressions in parameter mode and returns the resulting
text and args. Shortcut for using `(*Bui).Exprs` and `Bui.Reify`. Provided
mostly for examples. Actual code may want to use `Bui`:

	bui := MakeBui(4096, 64)
	bui.Params = true
	panic(bui.CatchExprs(someExprs...))
	text, args := bui.Reify()
*/
func Reify(vals ...Expr) (string, []any) {
	bui := Bui{Params: true}
	bui.Exprs(vals...)
	return bui.Reify()
}

/*
Short for "builder". The SQL writer used by every `Expr` implementation in this
package. Accumulates query text, and in parameter mode also the ordered
argument list.

The zero value renders inline: values become SQL literals inside the text.
When `.Params` is set, values instead become arguments paired with ordinal
parameters such as "$1". See `(*Bui).Value`.
*/
type Bui struct {
	Text   []byte
	Args   []any
	Params bool
}

// Shortcut for `self.String(), self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Bui) Reify() (string, []any) {
	return self.String(), self.Args
}

// Returns inner text as a string, performing a free cast.
func (self Bui) String() string {
	return bytesToMutableString(self.Text)
}

// Increases the capacity (not length) of the text and args buffers by the
// specified amounts. If there's already enough capacity, avoids allocation.
func (self *Bui) Grow(textLen, argsLen int) {
	self.Text = growBytes(self.Text, textLen)
	self.Args = growInterfaces(self.Args, argsLen)
}

// Adds a space if the preceding text doesn't already end with a terminator.
func (self *Bui) Space() {
	self.Text = maybeAppendSpace(self.Text)
}

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *Bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Appends the provided string verbatim, without any space delimiting. Needed
// in the few places where SQL is whitespace-sensitive, such as the opening
// paren of a function call.
func (self *Bui) Raw(val string) {
	self.Text = append(self.Text, val...)
}

// Appends a double-quoted SQL identifier, delimited from the previous text
// with a space if necessary. See `Ident`.
func (self *Bui) Ident(val string) {
	self.Space()
	self.Text = appendIdent(self.Text, val)
}

// Appends an expression, delimited from the preceding text by a space, if
// necessary. Nil input is a nop: nothing will be appended.
func (self *Bui) Expr(val Expr) {
	if val != nil {
		self.Space()
		val.AppendExpr(self)
	}
}

// Appends a sub-expression wrapped in parens. Nil input is a nop: nothing will
// be appended.
func (self *Bui) SubExpr(val Expr) {
	if val != nil {
		self.Str(`(`)
		self.Expr(val)
		self.Str(`)`)
	}
}

// Appends each expr by calling `(*Bui).Expr`. They will be space-separated as
// necessary.
func (self *Bui) Exprs(vals ...Expr) {
	for _, val := range vals {
		self.Expr(val)
	}
}

// Same as `(*Bui).Exprs` but catches panics. Since many functions in this
// package use panics, this should be used for final reification by apps that
// insist on errors-as-values.
func (self *Bui) CatchExprs(vals ...Expr) (err error) {
	defer rec(&err)
	self.Exprs(vals...)
	return
}

/*
Appends a value according to the current mode. Inline mode renders the value
as a SQL literal inside the text. Parameter mode appends the value's native Go
argument to `.Args`, and the corresponding ordinal parameter such as
"$1"/"$2"/.../"$N" to the text.
*/
func (self *Bui) Value(val Value) {
	if self.Params {
		self.Arg(val.Arg())
		return
	}
	self.Space()
	self.Text = val.Append(self.Text)
}

/*
Appends an ordinal parameter such as "$1", space-separated from previous text
if necessary. Requires caution: does not verify the existence of the
corresponding argument.
*/
func (self *Bui) Param(val OrdinalParam) {
	self.Space()
	self.Text = val.Append(self.Text)
}

/*
Appends an arg to the inner slice of args, returning the corresponding ordinal
parameter that should be appended to the text. Requires caution: does not
append the corresponding ordinal parameter.
*/
func (self *Bui) OrphanArg(val any) OrdinalParam {
	self.Args = append(self.Args, val)
	return OrdinalParam(len(self.Args))
}

/*
Appends an argument to `.Args` and a corresponding ordinal parameter to
`.Text`.
*/
func (self *Bui) Arg(val any) { self.Param(self.OrphanArg(val)) }

// Represents an ordinal parameter such as "$1". Mostly for internal use.
type OrdinalParam int

// Implement the `Expr` interface, making this a sub-expression.
func (self OrdinalParam) AppendExpr(bui *Bui) {
	bui.Text = self.Append(bui.Text)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self OrdinalParam) Append(text []byte) []byte {
	text = append(text, ordinalParamPrefix)
	return appendInt(text, int64(self))
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self OrdinalParam) String() string { return exprString(self) }

// Returns the corresponding Go index (starts at zero).
func (self OrdinalParam) Index() int { return int(self) - 1 }

// Inverse of `OrdinalParam.Index`: increments by 1, converting index to param.
func (self OrdinalParam) FromIndex() OrdinalParam { return self + 1 }
