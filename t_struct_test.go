package pqb

import "testing"

type Filter struct {
	Name      string  `db:"name"`
	Age       int64   `db:"age"`
	DeletedAt *string `db:"deleted_at"`
}

func Test_Cols(t *testing.T) {
	eq(t, `"id", "name"`, Cols(Internal{}))
	eq(t, `"id", "name"`, Cols(&Internal{}))
	eq(t, `"id", "name"`, Cols([]Internal(nil)))
	eq(t, `"id", "name"`, Cols(&[]Internal{}))

	eq(
		t,
		`"id", "name", ("internal")."id" as "internal.id", ("internal")."name" as "internal.name"`,
		Cols(External{}),
	)

	panics(t, `expected struct`, func() { Cols(10) })
	panics(t, `expected struct`, func() { Cols(`str`) })
}

func Test_StructMap(t *testing.T) {
	eq(t, map[string]any{}, StructMap((*Internal)(nil)))

	eq(
		t,
		map[string]any{`id`: `one`, `name`: `two`},
		StructMap(Internal{Id: `one`, Name: `two`}),
	)

	panics(t, `expected struct`, func() { StructMap(10) })
}

func Test_StructNamedArgs(t *testing.T) {
	eq(t, NamedArgs(nil), StructNamedArgs((*Internal)(nil)))

	eq(
		t,
		NamedArgs{Named(`id`, `one`), Named(`name`, `two`)},
		StructNamedArgs(Internal{Id: `one`, Name: `two`}),
	)
}

func Test_NamedArgs_Names(t *testing.T) {
	args := StructNamedArgs(Internal{Id: `one`, Name: `two`})
	eq(t, `"id", "name"`, args.Names().String())
}

func Test_NamedArgs_Values(t *testing.T) {
	args := StructNamedArgs(Internal{Id: `one`, Name: `two`})
	query := args.Values()
	eq(t, `$1, $2`, query.String())
	eq(t, list{`one`, `two`}, query.Args)
}

func Test_NamedArgs_NamesAndValues(t *testing.T) {
	eq(t, `default values`, NamedArgs(nil).NamesAndValues().String())

	args := StructNamedArgs(Internal{Id: `one`, Name: `two`})
	query := args.NamesAndValues()
	eq(t, `("id", "name") values ($1, $2)`, query.String())
	eq(t, list{`one`, `two`}, query.Args)
}

func Test_NamedArgs_Assignments(t *testing.T) {
	args := StructNamedArgs(Internal{Id: `one`, Name: `two`})
	query := args.Assignments()
	eq(t, `"id" = $1, "name" = $2`, query.String())
	eq(t, list{`one`, `two`}, query.Args)
}

func Test_NamedArgs_Conditions(t *testing.T) {
	eq(t, `true`, NamedArgs(nil).Conditions().String())

	args := StructNamedArgs(Filter{Name: `Mira`, Age: 30})
	query := args.Conditions()
	eq(t, `"name" = $1 and "age" = $2 and "deleted_at" is null`, query.String())
	eq(t, list{`Mira`, int64(30)}, query.Args)
}

func Test_NamedArg_IsNil(t *testing.T) {
	eq(t, true, NamedArg{}.IsNil())
	eq(t, true, Named(`one`, (*string)(nil)).IsNil())
	eq(t, false, Named(`one`, ``).IsNil())
	eq(t, false, Named(`one`, 10).IsNil())
}

func Test_NamedArgs_Some_Every(t *testing.T) {
	args := StructNamedArgs(Filter{Name: `Mira`, Age: 30})
	eq(t, true, args.Some(NamedArg.IsNil))
	eq(t, false, args.Every(NamedArg.IsNil))

	args = StructNamedArgs(Filter{})
	eq(t, true, args.Some(NamedArg.IsNil))
	eq(t, false, args.Every(NamedArg.IsNil))
}

func Test_StructCond(t *testing.T) {
	eq(t, []Expr(nil), StructCond((*Filter)(nil)))

	eq(
		t,
		`SELECT "id" FROM "users" WHERE "name" = 'Mira' AND "age" = 30 AND "deleted_at" IS NULL`,
		SelectFrom(`users`).
			Col(`id`).
			Where(StructCond(Filter{Name: `Mira`, Age: 30})...).
			ToSQL(),
	)

	text, args := SelectFrom(`users`).
		Col(`id`).
		Where(StructCond(Filter{Name: `Mira`, Age: 30})...).
		ToValues()

	eq(t, `SELECT "id" FROM "users" WHERE "name" = $1 AND "age" = $2 AND "deleted_at" IS NULL`, text)
	eq(t, list{`Mira`, int64(30)}, args)
}
