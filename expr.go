package pqb

/*
Represents an SQL identifier, always double-quoted. Quoting is injective:
double quotes inside the name are doubled, so distinct names can't collide
after quoting. There is no keyword list; every identifier is quoted.
*/
type Ident string

// Implement the `Expr` interface, making this a sub-expression.
func (self Ident) AppendExpr(bui *Bui) {
	bui.Text = self.Append(maybeAppendSpace(bui.Text))
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Ident) Append(text []byte) []byte {
	return appendIdent(text, string(self))
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ident) String() string { return bytesToMutableString(self.Append(nil)) }

/*
Represents a nested SQL identifier where all elements are quoted and
dot-separated. Useful for schema-qualified table paths such as
`"schema"."table"`.
*/
type Identifier []string

// Implement the `Expr` interface, making this a sub-expression.
func (self Identifier) AppendExpr(bui *Bui) {
	bui.Text = self.Append(maybeAppendSpace(bui.Text))
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Identifier) Append(text []byte) []byte {
	for ind, val := range self {
		if ind > 0 {
			text = append(text, `.`...)
		}
		text = Ident(val).Append(text)
	}
	return text
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Identifier) String() string { return bytesToMutableString(self.Append(nil)) }

/*
Shortcut for interpolating trusted strings into queries. The text is appended
verbatim, with no quoting or escaping. Must never contain user input.
*/
type Str string

// Implement the `Expr` interface, making this a sub-expression.
func (self Str) AppendExpr(bui *Bui) {
	bui.Text = appendMaybeSpaced(bui.Text, string(self))
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Str) Append(text []byte) []byte {
	return appendMaybeSpaced(text, string(self))
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Str) String() string { return string(self) }

/*
Reference to a column, with an optional qualifier path of up to
schema and table. An empty `.Name` refers to all columns, rendering the
asterisk, optionally qualified: `*` or `"tbl".*`. Usually constructed via
`Col` or `Star`.
*/
type Column struct {
	Path []string
	Name string
}

/*
Column reference from path segments, where the last segment is the column
name: `Col("id")` renders `"id"`, `Col("users", "id")` renders `"users"."id"`.
*/
func Col(path ...string) Column {
	if len(path) == 0 {
		return Column{}
	}
	return Column{Path: path[:len(path)-1], Name: path[len(path)-1]}
}

// All-columns reference: `Star()` renders `*`, `Star("tbl")` renders
// `"tbl".*`.
func Star(path ...string) Column { return Column{Path: path} }

// Implement the `Expr` interface, making this a sub-expression.
func (self Column) AppendExpr(bui *Bui) {
	bui.Text = self.Append(maybeAppendSpace(bui.Text))
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Column) Append(text []byte) []byte {
	for _, val := range self.Path {
		text = Ident(val).Append(text)
		text = append(text, `.`...)
	}
	if self.Name == `` {
		return append(text, `*`...)
	}
	return Ident(self.Name).Append(text)
}

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Column) String() string { return bytesToMutableString(self.Append(nil)) }

/*
Row constructor: a parenthesized, comma-separated sequence of
sub-expressions, such as `("a", "b")`. Usable on either side of comparison
operators. Arity is not checked; comparing tuples of different sizes produces
SQL that Postgres will reject.
*/
type Tuple []Expr

// Implement the `Expr` interface, making this a sub-expression.
func (self Tuple) AppendExpr(bui *Bui) {
	bui.Str(`(`)
	for ind, val := range self {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
	bui.Str(`)`)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Tuple) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Tuple) String() string { return exprString(self) }

/*
Operator precedence, following the Postgres operator table. A sub-expression
is parenthesized when its precedence is lower than or equal to its parent's.
Equal precedence stays bare only for a chain of one associative operator, such
as `a AND b AND c`; comparisons are non-associative in Postgres, and mixed
same-precedence arithmetic such as `a - (b - c)` needs the parens. The one
addition: `AND` directly under `OR` is parenthesized anyway, to keep mixed
boolean expressions readable.
*/
const (
	precOr    = 1
	precAnd   = 2
	precNot   = 3
	precIs    = 4
	precCmp   = 5
	precRange = 6
	precMisc  = 7
	precAdd   = 8
	precMul   = 9
	precNeg   = 10
	precAtom  = 11
)

// Enum of binary operators. See `Binary`.
type BinOp byte

const (
	OpEq BinOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpLike
	OpILike
	OpIs
	OpIsNot
	OpIn
	OpNotIn
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
	OpContains      // @>
	OpContained     // <@
	OpOverlap       // &&
	OpStrictLeft    // <<
	OpStrictRight   // >>
	OpNoExtendRight // &<
	OpNoExtendLeft  // &>
	OpAdjacent      // -|-
)

type binOpDef struct {
	text string
	prec byte
}

var binOpDefs = [...]binOpDef{
	OpEq:            {`=`, precCmp},
	OpNe:            {`<>`, precCmp},
	OpLt:            {`<`, precCmp},
	OpGt:            {`>`, precCmp},
	OpLe:            {`<=`, precCmp},
	OpGe:            {`>=`, precCmp},
	OpLike:          {`LIKE`, precRange},
	OpILike:         {`ILIKE`, precRange},
	OpIs:            {`IS`, precIs},
	OpIsNot:         {`IS NOT`, precIs},
	OpIn:            {`IN`, precRange},
	OpNotIn:         {`NOT IN`, precRange},
	OpAnd:           {`AND`, precAnd},
	OpOr:            {`OR`, precOr},
	OpAdd:           {`+`, precAdd},
	OpSub:           {`-`, precAdd},
	OpMul:           {`*`, precMul},
	OpDiv:           {`/`, precMul},
	OpMod:           {`%`, precMul},
	OpConcat:        {`||`, precMisc},
	OpContains:      {`@>`, precMisc},
	OpContained:     {`<@`, precMisc},
	OpOverlap:       {`&&`, precMisc},
	OpStrictLeft:    {`<<`, precMisc},
	OpStrictRight:   {`>>`, precMisc},
	OpNoExtendRight: {`&<`, precMisc},
	OpNoExtendLeft:  {`&>`, precMisc},
	OpAdjacent:      {`-|-`, precMisc},
}

// Implement the `fmt.Stringer` interface, returning the SQL operator text.
func (self BinOp) String() string { return binOpDefs[self].text }

func (self BinOp) precedence() byte { return binOpDefs[self].prec }

func (self BinOp) associative() bool {
	switch self {
	case OpAnd, OpOr, OpAdd, OpMul, OpConcat:
		return true
	default:
		return false
	}
}

/*
Binary operator expression such as `A = B`. Operands are parenthesized only
where precedence requires it; see the `prec...` constants. Usually constructed
via `Eq`, `And`, `Add`, and the other operator shortcuts.
*/
type Binary struct {
	Op  BinOp
	Lhs Expr
	Rhs Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Binary) AppendExpr(bui *Bui) {
	self.operand(bui, self.Lhs)
	bui.Str(self.Op.String())
	self.operand(bui, self.Rhs)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Binary) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Binary) String() string { return exprString(self) }

func (self Binary) operand(bui *Bui, val Expr) {
	if needsParens(self.Op, val) {
		bui.SubExpr(val)
		return
	}
	bui.Expr(val)
}

func needsParens(op BinOp, val Expr) bool {
	inner, ok := val.(Binary)
	if ok && op == OpOr && inner.Op == OpAnd {
		return true
	}

	prec := exprPrec(val)
	if prec != op.precedence() {
		return prec < op.precedence()
	}
	return !ok || inner.Op != op || !op.associative()
}

func exprPrec(val Expr) byte {
	switch val := val.(type) {
	case Binary:
		return val.Op.precedence()
	case Unary:
		return val.Op.precedence()
	default:
		return precAtom
	}
}

// Enum of unary operators, prefix and postfix. See `Unary`.
type UnaryOp byte

const (
	OpNot UnaryOp = iota
	OpNeg
	OpIsNull
	OpNotNull
)

var unaryOpDefs = [...]struct {
	text    string
	prec    byte
	postfix bool
}{
	OpNot:     {`NOT`, precNot, false},
	OpNeg:     {`-`, precNeg, false},
	OpIsNull:  {`IS NULL`, precIs, true},
	OpNotNull: {`IS NOT NULL`, precIs, true},
}

// Implement the `fmt.Stringer` interface, returning the SQL operator text.
func (self UnaryOp) String() string { return unaryOpDefs[self].text }

func (self UnaryOp) precedence() byte { return unaryOpDefs[self].prec }

/*
Unary operator expression, prefix such as `NOT A` or postfix such as
`A IS NULL`. Usually constructed via `Not`, `Neg`, `IsNull`, `NotNull`.
*/
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Unary) AppendExpr(bui *Bui) {
	def := unaryOpDefs[self.Op]
	if def.postfix {
		self.operand(bui)
		bui.Str(def.text)
		return
	}
	bui.Str(def.text)
	self.operand(bui)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Unary) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Unary) String() string { return exprString(self) }

func (self Unary) operand(bui *Bui) {
	if exprPrec(self.Expr) < self.Op.precedence() {
		bui.SubExpr(self.Expr)
		return
	}
	bui.Expr(self.Expr)
}

/*
Represents an SQL function call such as `MAX("price")`. The name is appended
as-is, without quoting, with the argument list attached directly without a
space. Usually constructed via `Func`.
*/
type Call struct {
	Name string
	Args []Expr
}

// Shortcut for constructing `Call`.
func Func(name string, args ...Expr) Call { return Call{name, args} }

// Implement the `Expr` interface, making this a sub-expression.
func (self Call) AppendExpr(bui *Bui) {
	bui.Str(self.Name)
	bui.Raw(`(`)
	for ind, val := range self.Args {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
	bui.Str(`)`)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Call) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Call) String() string { return exprString(self) }

// One branch of a `Case` expression.
type When struct {
	Cond Expr
	Then Expr
}

/*
Conditional expression: `CASE WHEN cond THEN result ... ELSE alt END`. A nil
`.Else` omits the `ELSE` branch. `CASE` is self-delimiting, so it never needs
outer parens. Without branches this renders `CASE END`, which is invalid SQL;
callers are expected to provide at least one.
*/
type Case struct {
	Whens []When
	Else  Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Case) AppendExpr(bui *Bui) {
	bui.Str(`CASE`)
	for _, val := range self.Whens {
		bui.Str(`WHEN`)
		bui.Expr(val.Cond)
		bui.Str(`THEN`)
		bui.Expr(val.Then)
	}
	if self.Else != nil {
		bui.Str(`ELSE`)
		bui.Expr(self.Else)
	}
	bui.Str(`END`)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Case) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Case) String() string { return exprString(self) }

// Operator shortcuts. Most code builds expressions through these rather than
// through the `Binary` / `Unary` literals.

func Eq(lhs, rhs Expr) Binary    { return Binary{OpEq, lhs, rhs} }
func Ne(lhs, rhs Expr) Binary    { return Binary{OpNe, lhs, rhs} }
func Lt(lhs, rhs Expr) Binary    { return Binary{OpLt, lhs, rhs} }
func Gt(lhs, rhs Expr) Binary    { return Binary{OpGt, lhs, rhs} }
func Le(lhs, rhs Expr) Binary    { return Binary{OpLe, lhs, rhs} }
func Ge(lhs, rhs Expr) Binary    { return Binary{OpGe, lhs, rhs} }
func Like(lhs, rhs Expr) Binary  { return Binary{OpLike, lhs, rhs} }
func ILike(lhs, rhs Expr) Binary { return Binary{OpILike, lhs, rhs} }
func Add(lhs, rhs Expr) Binary   { return Binary{OpAdd, lhs, rhs} }
func Sub(lhs, rhs Expr) Binary   { return Binary{OpSub, lhs, rhs} }
func Mul(lhs, rhs Expr) Binary   { return Binary{OpMul, lhs, rhs} }
func Div(lhs, rhs Expr) Binary   { return Binary{OpDiv, lhs, rhs} }
func Mod(lhs, rhs Expr) Binary   { return Binary{OpMod, lhs, rhs} }

func Concat(lhs, rhs Expr) Binary    { return Binary{OpConcat, lhs, rhs} }
func Contains(lhs, rhs Expr) Binary  { return Binary{OpContains, lhs, rhs} }
func Contained(lhs, rhs Expr) Binary { return Binary{OpContained, lhs, rhs} }
func Overlaps(lhs, rhs Expr) Binary  { return Binary{OpOverlap, lhs, rhs} }

// Membership test against a list of sub-expressions: `A IN (B, C)`.
func In(lhs Expr, vals ...Expr) Binary { return Binary{OpIn, lhs, Tuple(vals)} }

// Negated membership test: `A NOT IN (B, C)`.
func NotIn(lhs Expr, vals ...Expr) Binary { return Binary{OpNotIn, lhs, Tuple(vals)} }

// Membership test against a sub-select: `A IN (SELECT ...)`.
func InSelect(lhs Expr, val *Select) Binary { return Binary{OpIn, lhs, val} }

func Not(val Expr) Unary     { return Unary{OpNot, val} }
func Neg(val Expr) Unary     { return Unary{OpNeg, val} }
func IsNull(val Expr) Unary  { return Unary{OpIsNull, val} }
func NotNull(val Expr) Unary { return Unary{OpNotNull, val} }

/*
Left fold over `AND`. Nil when the input is empty, the sole expression when
there's one.
*/
func And(vals ...Expr) Expr { return fold(OpAnd, vals) }

// Left fold over `OR`. Same edge cases as `And`.
func Or(vals ...Expr) Expr { return fold(OpOr, vals) }

func fold(op BinOp, vals []Expr) Expr {
	if len(vals) == 0 {
		return nil
	}

	out := vals[0]
	for _, val := range vals[1:] {
		out = Binary{op, out, val}
	}
	return out
}
