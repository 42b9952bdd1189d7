package pqb

import (
	"fmt"
	r "reflect"
	"runtime"
	"strings"
	"testing"
)

type Internal struct {
	Id   string `json:"internalId"   db:"id"`
	Name string `json:"internalName" db:"name"`
}

type External struct {
	Id       string   `json:"externalId"       db:"id"`
	Name     string   `json:"externalName"     db:"name"`
	Internal Internal `json:"externalInternal" db:"internal"`
}

type list = []any

type Encoder interface {
	fmt.Stringer
	Appender
	Expr
}

/*
Checks the inline renderings of an expression: via `fmt.Stringer`, via
`Appender`, and through a zero `Bui`.
*/
func testEncoder(t testing.TB, exp string, val Encoder) {
	t.Helper()
	eq(t, exp, val.String())
	eq(t, exp, string(val.Append(nil)))

	var bui Bui
	bui.Expr(val)
	eq(t, exp, bui.String())
}

// Checks the parameter-mode rendering of the given expressions.
func testExprs(t testing.TB, exp R, vals ...Expr) {
	t.Helper()
	eq(t, exp, reify(vals...))
}

func reify(vals ...Expr) R {
	text, args := Reify(vals...)
	return R{text, args}.Norm()
}

// Short for "reified".
func rei(text string, args ...any) R { return R{text, args}.Norm() }

// Short for "reified". Test-only expectation holder that doubles as a trivial
// expression appending its text and args verbatim.
type R struct {
	Text string
	Args list
}

func (self R) AppendExpr(bui *Bui) {
	bui.Text = append(bui.Text, self.Text...)
	bui.Args = append(bui.Args, self.Args...)
}

/*
Without this equivalence, tests break due to slice prealloc/growth in various
`AppendExpr` implementations, violating some equality tests. We don't really
care about the difference between nil and zero-length arg lists.
*/
func (self R) Norm() R {
	if self.Args == nil {
		self.Args = list{}
	}
	return self
}

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func notEq(t testing.TB, exp, act any) {
	t.Helper()
	if r.DeepEqual(exp, act) {
		t.Fatalf(`
unexpected equality (detailed):
	%#[1]v
unexpected equality (simple):
	%[1]v
`, exp, act)
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }
