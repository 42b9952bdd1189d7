package pqb

import "strconv"

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "ASC", "DESC".
type Dir byte

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Dir) Append(text []byte) []byte {
	return appendMaybeSpaced(text, self.String())
}

// Implement `fmt.Stringer` for debug purposes.
func (self Dir) String() string {
	switch self {
	default:
		return ``
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	}
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Dir) GoString() string {
	switch self {
	default:
		return `pqb.DirNone`
	case DirAsc:
		return `pqb.DirAsc`
	case DirDesc:
		return `pqb.DirDesc`
	}
}

const (
	NullsNone  Nulls = 0
	NullsFirst Nulls = 1
	NullsLast  Nulls = 2
)

// Enum for nulls handling in ordering: none, "NULLS FIRST", "NULLS LAST".
type Nulls byte

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Nulls) Append(text []byte) []byte {
	return appendMaybeSpaced(text, self.String())
}

// Implement `fmt.Stringer` for debug purposes.
func (self Nulls) String() string {
	switch self {
	case NullsFirst:
		return `NULLS FIRST`
	case NullsLast:
		return `NULLS LAST`
	default:
		return ``
	}
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Nulls) GoString() string {
	switch self {
	case NullsFirst:
		return `pqb.NullsFirst`
	case NullsLast:
		return `pqb.NullsLast`
	default:
		return `pqb.NullsNone`
	}
}

/*
One `ORDER BY` term: an expression with optional direction and nulls
handling. The zero direction emits no keyword, deferring to the Postgres
default. Usually constructed via `Asc` / `Desc` / `Ord`.
*/
type Ordering struct {
	Expr  Expr
	Dir   Dir
	Nulls Nulls
}

// Ordering term with the default direction.
func Ord(val Expr) Ordering { return Ordering{Expr: val} }

// Ascending ordering term.
func Asc(val Expr) Ordering { return Ordering{Expr: val, Dir: DirAsc} }

// Descending ordering term.
func Desc(val Expr) Ordering { return Ordering{Expr: val, Dir: DirDesc} }

// Returns a copy with `NULLS FIRST`.
func (self Ordering) NullsFirst() Ordering {
	self.Nulls = NullsFirst
	return self
}

// Returns a copy with `NULLS LAST`.
func (self Ordering) NullsLast() Ordering {
	self.Nulls = NullsLast
	return self
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Ordering) AppendExpr(bui *Bui) {
	bui.Expr(self.Expr)
	bui.Text = self.Dir.Append(bui.Text)
	bui.Text = self.Nulls.Append(bui.Text)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Ordering) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Ordering) String() string { return exprString(self) }

// Enum of join kinds. See `(*Select).Join`.
type JoinKind byte

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

// Implement `fmt.Stringer`, returning the SQL join keywords.
func (self JoinKind) String() string {
	switch self {
	case JoinLeft:
		return `LEFT JOIN`
	case JoinRight:
		return `RIGHT JOIN`
	case JoinFull:
		return `FULL JOIN`
	case JoinCross:
		return `CROSS JOIN`
	default:
		return `INNER JOIN`
	}
}

/*
Reference to a table in `FROM` or a join: either a possibly-qualified table
path, or a sub-select, with an optional alias. Postgres requires an alias on
sub-selects; when missing, the placeholder alias "_" is rendered, keeping
rendering total.
*/
type TableRef struct {
	Path  []string
	Sub   *Select
	Alias string
}

// Table reference from path segments: `Table("users")`,
// `Table("schema", "users")`.
func Table(path ...string) TableRef { return TableRef{Path: path} }

// Sub-select reference: renders `(SELECT ...) AS "alias"`.
func SubTable(val *Select, alias string) TableRef {
	return TableRef{Sub: val, Alias: alias}
}

// Returns a copy with the given alias.
func (self TableRef) As(alias string) TableRef {
	self.Alias = alias
	return self
}

// Implement the `Expr` interface, making this a sub-expression.
func (self TableRef) AppendExpr(bui *Bui) {
	if self.Sub != nil {
		bui.Expr(self.Sub)
		bui.Str(`AS`)
		alias := self.Alias
		if alias == `` {
			alias = `_`
		}
		bui.Ident(alias)
		return
	}

	bui.Expr(Identifier(self.Path))
	if self.Alias != `` {
		bui.Str(`AS`)
		bui.Ident(self.Alias)
	}
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self TableRef) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self TableRef) String() string { return exprString(self) }

// One join clause. See `(*Select).Join`.
type Join struct {
	Kind JoinKind
	Ref  TableRef
	On   Expr
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Join) AppendExpr(bui *Bui) {
	bui.Str(self.Kind.String())
	bui.Expr(self.Ref)

	// Cross joins have no condition. One provided by mistake is dropped
	// rather than rendered into invalid SQL.
	if self.Kind == JoinCross {
		return
	}
	if self.On != nil {
		bui.Str(`ON`)
		bui.Expr(self.On)
	}
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Join) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Join) String() string { return exprString(self) }

// Enum of row-level lock strengths. See `(*Select).ForUpdate` and the other
// locking methods.
type LockStrength byte

const (
	LockNone LockStrength = iota
	LockUpdate
	LockNoKeyUpdate
	LockShare
	LockKeyShare
)

// Implement `fmt.Stringer`, returning the SQL locking clause keywords.
func (self LockStrength) String() string {
	switch self {
	case LockUpdate:
		return `FOR UPDATE`
	case LockNoKeyUpdate:
		return `FOR NO KEY UPDATE`
	case LockShare:
		return `FOR SHARE`
	case LockKeyShare:
		return `FOR KEY SHARE`
	default:
		return ``
	}
}

// Enum of lock waiting behaviors. See `(*Select).Nowait` and
// `(*Select).SkipLocked`.
type LockWait byte

const (
	LockWaitDefault LockWait = iota
	LockNowait
	LockSkipLocked
)

// Implement `fmt.Stringer`, returning the SQL keywords.
func (self LockWait) String() string {
	switch self {
	case LockNowait:
		return `NOWAIT`
	case LockSkipLocked:
		return `SKIP LOCKED`
	default:
		return ``
	}
}

// Row-level locking clause such as `FOR UPDATE OF "tbl" SKIP LOCKED`.
type Lock struct {
	Strength LockStrength
	Of       []string
	Wait     LockWait
}

// Implement the `Expr` interface, making this a sub-expression.
func (self Lock) AppendExpr(bui *Bui) {
	if self.Strength == LockNone {
		return
	}

	bui.Str(self.Strength.String())

	if len(self.Of) > 0 {
		bui.Str(`OF`)
		for ind, val := range self.Of {
			if ind > 0 {
				bui.Str(`,`)
			}
			bui.Ident(val)
		}
	}

	if self.Wait != LockWaitDefault {
		bui.Str(self.Wait.String())
	}
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Lock) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Lock) String() string { return exprString(self) }

// Enum of table sampling methods. See `(*Select).Sample`.
type SampleMethod byte

const (
	SampleSystem SampleMethod = iota
	SampleBernoulli
)

// Implement `fmt.Stringer`, returning the SQL sampling method keyword.
func (self SampleMethod) String() string {
	switch self {
	case SampleBernoulli:
		return `BERNOULLI`
	default:
		return `SYSTEM`
	}
}

// `TABLESAMPLE` clause attached to the first `FROM` table.
type TableSample struct {
	Method     SampleMethod
	Percent    float64
	Repeatable *float64
}

// Implement the `Expr` interface, making this a sub-expression.
func (self TableSample) AppendExpr(bui *Bui) {
	bui.Str(`TABLESAMPLE`)
	bui.Str(self.Method.String())
	bui.Str(`(`)
	bui.Text = strconv.AppendFloat(bui.Text, self.Percent, 'g', -1, 64)
	bui.Str(`)`)

	if self.Repeatable != nil {
		bui.Str(`REPEATABLE (`)
		bui.Text = strconv.AppendFloat(bui.Text, *self.Repeatable, 'g', -1, 64)
		bui.Str(`)`)
	}
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self TableSample) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self TableSample) String() string { return exprString(self) }

// Tristate for CTE materialization. The default emits no keyword.
type Materialized byte

const (
	MaterializedDefault Materialized = iota
	MaterializedAlways
	MaterializedNever
)

/*
One common table expression in a `WITH` clause. The body is usually a
`*Select` or a `Values` list. Non-select bodies are parenthesized
automatically.
*/
type CTE struct {
	Name         string
	Cols         []string
	Body         Expr
	Materialized Materialized
}

// Implement the `Expr` interface, making this a sub-expression.
func (self CTE) AppendExpr(bui *Bui) {
	bui.Ident(self.Name)

	if len(self.Cols) > 0 {
		bui.Str(`(`)
		for ind, val := range self.Cols {
			if ind > 0 {
				bui.Str(`,`)
			}
			bui.Ident(val)
		}
		bui.Str(`)`)
	}

	bui.Str(`AS`)

	switch self.Materialized {
	case MaterializedAlways:
		bui.Str(`MATERIALIZED`)
	case MaterializedNever:
		bui.Str(`NOT MATERIALIZED`)
	}

	sub, ok := self.Body.(*Select)
	if ok {
		// Sub-selects parenthesize themselves.
		bui.Expr(sub)
		return
	}
	bui.SubExpr(self.Body)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self CTE) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self CTE) String() string { return exprString(self) }

/*
A `VALUES` list: one or more rows of values. Usable as a CTE body. The empty
list renders nothing, which is invalid SQL; callers are expected to provide at
least one row.
*/
type Values [][]Value

// Implement the `Expr` interface, making this a sub-expression.
func (self Values) AppendExpr(bui *Bui) {
	if len(self) == 0 {
		return
	}

	bui.Str(`VALUES`)
	for ind, row := range self {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Str(`(`)
		for sub, val := range row {
			if sub > 0 {
				bui.Str(`,`)
			}
			bui.Space()
			bui.Value(val)
		}
		bui.Str(`)`)
	}
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Values) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Values) String() string { return exprString(self) }

type projection struct {
	val   Expr
	alias string
}

/*
Structured model of a Postgres `SELECT` statement. The zero value is usable;
methods mutate the receiver and return it for chaining:

	text := pqb.SelectFrom(`users`).
		Col(`id`).
		Where(pqb.Eq(pqb.Col(`active`), pqb.Bool(true))).
		ToSQL()

Renders via `ToSQL` (inline literals) or `ToValues` (ordinal parameters with
an argument list). Also implements `Expr`, rendering as a parenthesized
sub-select, which allows nesting anywhere an expression is allowed.

An empty projection is permitted and renders a degenerate `SELECT` with no
columns. Clauses that were never set are fully omitted from the output.
*/
type Select struct {
	with       []CTE
	distinct   bool
	distinctOn []Expr
	proj       []projection
	from       []TableRef
	sample     *TableSample
	joins      []Join
	where      []Expr
	groups     []Expr
	having     []Expr
	orders     []Ordering
	limit      uint64
	offset     uint64
	hasLimit   bool
	hasOffset  bool
	lock       Lock
}

// Shortcut: new `Select` with one table in `FROM`.
func SelectFrom(path ...string) *Select {
	return new(Select).From(path...)
}

// Appends one column to the projection. The last path segment is the column
// name; see `Col`.
func (self *Select) Col(path ...string) *Select {
	return self.Proj(Col(path...))
}

// Appends several single-segment columns to the projection.
func (self *Select) Cols(names ...string) *Select {
	for _, name := range names {
		self.Proj(Col(name))
	}
	return self
}

// Appends one column with an alias: `"path" AS "alias"`.
func (self *Select) ColAs(alias string, path ...string) *Select {
	return self.ProjAs(alias, Col(path...))
}

// Appends arbitrary expressions to the projection.
func (self *Select) Proj(vals ...Expr) *Select {
	for _, val := range vals {
		self.proj = append(self.proj, projection{val: val})
	}
	return self
}

// Appends one arbitrary expression with an alias to the projection.
func (self *Select) ProjAs(alias string, val Expr) *Select {
	self.proj = append(self.proj, projection{val, alias})
	return self
}

// Appends `*`, optionally table-qualified, to the projection.
func (self *Select) Star(path ...string) *Select {
	return self.Proj(Star(path...))
}

// Sets `SELECT DISTINCT`.
func (self *Select) Distinct() *Select {
	self.distinct = true
	return self
}

// Sets `SELECT DISTINCT ON (...)` with the given expressions.
func (self *Select) DistinctOn(vals ...Expr) *Select {
	self.distinct = true
	self.distinctOn = append(self.distinctOn, vals...)
	return self
}

// Appends one table to `FROM`. May be called multiple times, producing a
// comma-separated table list. An empty path is a nop, which allows
// `SelectFrom()` as a blank starting point.
func (self *Select) From(path ...string) *Select {
	if len(path) == 0 {
		return self
	}
	return self.FromTable(Table(path...))
}

// Appends one aliased table to `FROM`.
func (self *Select) FromAs(alias string, path ...string) *Select {
	return self.FromTable(Table(path...).As(alias))
}

// Appends one sub-select to `FROM`, with an alias.
func (self *Select) FromSelect(val *Select, alias string) *Select {
	return self.FromTable(SubTable(val, alias))
}

// Appends one arbitrary table reference to `FROM`.
func (self *Select) FromTable(val TableRef) *Select {
	self.from = append(self.from, val)
	return self
}

// Appends a join of the given kind.
func (self *Select) Join(kind JoinKind, ref TableRef, on Expr) *Select {
	self.joins = append(self.joins, Join{kind, ref, on})
	return self
}

func (self *Select) InnerJoin(ref TableRef, on Expr) *Select {
	return self.Join(JoinInner, ref, on)
}

func (self *Select) LeftJoin(ref TableRef, on Expr) *Select {
	return self.Join(JoinLeft, ref, on)
}

func (self *Select) RightJoin(ref TableRef, on Expr) *Select {
	return self.Join(JoinRight, ref, on)
}

func (self *Select) FullJoin(ref TableRef, on Expr) *Select {
	return self.Join(JoinFull, ref, on)
}

func (self *Select) CrossJoin(ref TableRef) *Select {
	return self.Join(JoinCross, ref, nil)
}

// Appends conjuncts to `WHERE`. All accumulated conjuncts are joined with
// `AND` in the order they were added.
func (self *Select) Where(vals ...Expr) *Select {
	self.where = append(self.where, vals...)
	return self
}

// Appends expressions to `GROUP BY`.
func (self *Select) GroupBy(vals ...Expr) *Select {
	self.groups = append(self.groups, vals...)
	return self
}

// Appends conjuncts to `HAVING`, joined with `AND` like `WHERE`.
func (self *Select) Having(vals ...Expr) *Select {
	self.having = append(self.having, vals...)
	return self
}

// Appends ordering terms to `ORDER BY`.
func (self *Select) OrderBy(vals ...Ordering) *Select {
	self.orders = append(self.orders, vals...)
	return self
}

// Sets `LIMIT`. Zero is a real limit once set; an unset limit emits nothing.
func (self *Select) Limit(val uint64) *Select {
	self.limit = val
	self.hasLimit = true
	return self
}

// Sets `OFFSET`. Zero is a real offset once set; an unset offset emits
// nothing.
func (self *Select) Offset(val uint64) *Select {
	self.offset = val
	self.hasOffset = true
	return self
}

// Sets the locking clause `FOR UPDATE`.
func (self *Select) ForUpdate() *Select {
	self.lock.Strength = LockUpdate
	return self
}

// Sets the locking clause `FOR NO KEY UPDATE`.
func (self *Select) ForNoKeyUpdate() *Select {
	self.lock.Strength = LockNoKeyUpdate
	return self
}

// Sets the locking clause `FOR SHARE`.
func (self *Select) ForShare() *Select {
	self.lock.Strength = LockShare
	return self
}

// Sets the locking clause `FOR KEY SHARE`.
func (self *Select) ForKeyShare() *Select {
	self.lock.Strength = LockKeyShare
	return self
}

// Restricts the locking clause to the given tables: `... OF "tbl"`.
func (self *Select) LockOf(tables ...string) *Select {
	self.lock.Of = append(self.lock.Of, tables...)
	return self
}

// Makes the locking clause non-blocking: `... NOWAIT`.
func (self *Select) Nowait() *Select {
	self.lock.Wait = LockNowait
	return self
}

// Makes the locking clause skip locked rows: `... SKIP LOCKED`.
func (self *Select) SkipLocked() *Select {
	self.lock.Wait = LockSkipLocked
	return self
}

// Attaches a `TABLESAMPLE` clause to the first `FROM` table.
func (self *Select) Sample(method SampleMethod, percent float64) *Select {
	self.sample = &TableSample{Method: method, Percent: percent}
	return self
}

// Adds `REPEATABLE (seed)` to the sampling clause. Requires a preceding
// `Sample` call.
func (self *Select) Repeatable(seed float64) *Select {
	if self.sample != nil {
		self.sample.Repeatable = &seed
	}
	return self
}

// Appends common table expressions to the `WITH` clause.
func (self *Select) With(vals ...CTE) *Select {
	self.with = append(self.with, vals...)
	return self
}

// Renders the statement with values inlined as SQL literals.
func (self *Select) ToSQL() string {
	var bui Bui
	self.render(&bui)
	return bui.String()
}

/*
Renders the statement in parameter mode: values become "$1"-style ordinal
parameters, numbered left to right in render order, and the matching native Go
arguments are returned alongside the text.
*/
func (self *Select) ToValues() (string, []any) {
	bui := Bui{Params: true}
	self.render(&bui)
	return bui.Reify()
}

/*
Converts to a `Query`, rendering in parameter mode. Allows raw SQL fragments
to be appended after the structured statement; see `Query`.
*/
func (self *Select) Query() Query {
	text, args := self.ToValues()
	return queryFrom(text, args)
}

// Implement the `Expr` interface, rendering as a parenthesized sub-select.
func (self *Select) AppendExpr(bui *Bui) {
	bui.Str(`(`)
	self.render(bui)
	bui.Str(`)`)
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self *Select) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface, rendering in inline mode without
// outer parens.
func (self *Select) String() string { return self.ToSQL() }

func (self *Select) render(bui *Bui) {
	self.renderWith(bui)

	bui.Str(`SELECT`)
	self.renderDistinct(bui)
	self.renderProj(bui)
	self.renderFrom(bui)

	for _, val := range self.joins {
		bui.Expr(val)
	}

	self.renderConds(bui, `WHERE`, self.where)
	self.renderGroups(bui)
	self.renderConds(bui, `HAVING`, self.having)
	self.renderOrders(bui)

	if self.hasLimit {
		bui.Str(`LIMIT`)
		bui.Space()
		bui.Text = strconv.AppendUint(bui.Text, self.limit, 10)
	}
	if self.hasOffset {
		bui.Str(`OFFSET`)
		bui.Space()
		bui.Text = strconv.AppendUint(bui.Text, self.offset, 10)
	}

	if self.lock.Strength != LockNone {
		bui.Expr(self.lock)
	}
}

func (self *Select) renderWith(bui *Bui) {
	if len(self.with) == 0 {
		return
	}

	bui.Str(`WITH`)
	for ind, val := range self.with {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
}

func (self *Select) renderDistinct(bui *Bui) {
	if !self.distinct {
		return
	}

	bui.Str(`DISTINCT`)
	if len(self.distinctOn) == 0 {
		return
	}

	bui.Str(`ON (`)
	for ind, val := range self.distinctOn {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
	bui.Str(`)`)
}

func (self *Select) renderProj(bui *Bui) {
	for ind, val := range self.proj {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val.val)
		if val.alias != `` {
			bui.Str(`AS`)
			bui.Ident(val.alias)
		}
	}
}

func (self *Select) renderFrom(bui *Bui) {
	if len(self.from) == 0 {
		return
	}

	bui.Str(`FROM`)
	for ind, val := range self.from {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
		if ind == 0 && self.sample != nil {
			bui.Expr(*self.sample)
		}
	}
}

// Conjuncts are joined with `AND`. Each is parenthesized exactly like an
// operand of `AND`, so a top-level `OR` keeps its meaning.
func (self *Select) renderConds(bui *Bui, keyword string, vals []Expr) {
	if len(vals) == 0 {
		return
	}

	bui.Str(keyword)
	for ind, val := range vals {
		if ind > 0 {
			bui.Str(`AND`)
		}
		if needsParens(OpAnd, val) {
			bui.SubExpr(val)
		} else {
			bui.Expr(val)
		}
	}
}

func (self *Select) renderGroups(bui *Bui) {
	if len(self.groups) == 0 {
		return
	}

	bui.Str(`GROUP BY`)
	for ind, val := range self.groups {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
}

func (self *Select) renderOrders(bui *Bui) {
	if len(self.orders) == 0 {
		return
	}

	bui.Str(`ORDER BY`)
	for ind, val := range self.orders {
		if ind > 0 {
			bui.Str(`,`)
		}
		bui.Expr(val)
	}
}
