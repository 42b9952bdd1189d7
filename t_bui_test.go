package pqb

import "testing"

func Test_Bui_Str(t *testing.T) {
	var bui Bui
	bui.Str(`one`)
	bui.Str(`two`)
	eq(t, `one two`, bui.String())

	// Openers attach to the following text, closers and commas to the
	// preceding text.
	bui.Str(`(`)
	bui.Str(`three`)
	bui.Str(`,`)
	bui.Str(`four`)
	bui.Str(`)`)
	eq(t, `one two (three, four)`, bui.String())
}

func Test_Bui_Raw(t *testing.T) {
	var bui Bui
	bui.Str(`count`)
	bui.Raw(`(`)
	bui.Str(`*`)
	bui.Str(`)`)
	eq(t, `count(*)`, bui.String())
}

func Test_Bui_Ident(t *testing.T) {
	var bui Bui
	bui.Str(`SELECT`)
	bui.Ident(`id`)
	eq(t, `SELECT "id"`, bui.String())
}

func Test_Bui_SubExpr(t *testing.T) {
	var bui Bui
	bui.Str(`WHERE`)
	bui.SubExpr(Col(`one`))
	eq(t, `WHERE ("one")`, bui.String())

	bui.SubExpr(nil)
	eq(t, `WHERE ("one")`, bui.String())
}

func Test_Bui_Arg(t *testing.T) {
	bui := Bui{Params: true}
	bui.Arg(10)
	bui.Arg(20)
	eq(t, `$1 $2`, bui.String())
	eq(t, list{10, 20}, bui.Args)
}

func Test_Bui_Value_modes(t *testing.T) {
	var inline Bui
	inline.Value(Text(`one`))
	eq(t, `'one'`, inline.String())
	eq(t, 0, len(inline.Args))

	params := Bui{Params: true}
	params.Value(Text(`one`))
	eq(t, `$1`, params.String())
	eq(t, list{`one`}, params.Args)
}

func Test_Bui_Grow(t *testing.T) {
	var bui Bui
	bui.Grow(128, 8)
	eq(t, 0, len(bui.Text))
	eq(t, 0, len(bui.Args))

	if cap(bui.Text) < 128 {
		t.Fatalf(`expected text capacity >= 128, got %v`, cap(bui.Text))
	}
	if cap(bui.Args) < 8 {
		t.Fatalf(`expected args capacity >= 8, got %v`, cap(bui.Args))
	}
}

func Test_OrdinalParam(t *testing.T) {
	testEncoder(t, `$1`, OrdinalParam(1))
	testEncoder(t, `$12`, OrdinalParam(12))
	eq(t, 0, OrdinalParam(1).Index())
	eq(t, OrdinalParam(1), OrdinalParam(0).FromIndex())
}
