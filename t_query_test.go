package pqb

import "testing"

type Dict = map[string]any

func Test_Query_Append(t *testing.T) {
	t.Run(`renumeration`, func(t *testing.T) {
		var query Query
		query.Append(`one = $1 and two = $2`, 10, 20)
		query.Append(`and three = $1 and four = $1`, 30)
		query.Append(`and five = $1 and six = $2`, 40, 50)

		eq(t, `one = $1 and two = $2 and three = $3 and four = $3 and five = $4 and six = $5`, query.String())
		eq(t, list{10, 20, 30, 40, 50}, query.Args)
	})

	t.Run(`nested`, func(t *testing.T) {
		var sub0 Query
		sub0.Append(`two = $1 and three = $2`, 20, 30)

		var sub1 Query
		sub1.Append(`five = $1 and six = $2`, 50, 60)

		var query Query
		query.Append(`one = $1 and $2 and $2 and four = $3 and $4 and seven = $5`, 10, sub0, 40, sub1, 70)

		eq(
			t,
			`one = $1 and two = $4 and three = $5 and two = $6 and three = $7 and four = $2 and five = $8 and six = $9 and seven = $3`,
			query.String(),
		)
		eq(t, list{10, 40, 70, 20, 30, 20, 30, 50, 60}, query.Args)
	})

	t.Run(`ordinal out of bounds`, func(t *testing.T) {
		var query Query
		panics(t, `ordinal parameter`, func() { query.Append(`one = $2`, 10) })
	})

	t.Run(`named param rejected`, func(t *testing.T) {
		var query Query
		panics(t, `named param`, func() { query.Append(`one = :one`, 10) })
	})

	t.Run(`unused argument`, func(t *testing.T) {
		var query Query
		panics(t, `unused argument`, func() { query.Append(`one = $1`, 10, 20) })
	})
}

func Test_Query_AppendNamed(t *testing.T) {
	t.Run(`conversion to ordinals`, func(t *testing.T) {
		var query Query
		query.AppendNamed(`one = :one::text and two = :two`, Dict{"one": 10, "two": 20})
		query.AppendNamed(`and three = :three and four = :three`, Dict{"three": 30})

		eq(t, `one = $1::text and two = $2 and three = $3 and four = $3`, query.String())
		eq(t, list{10, 20, 30}, query.Args)
	})

	t.Run(`ordinal param rejected`, func(t *testing.T) {
		var query Query
		panics(t, `ordinal param`, func() { query.AppendNamed(`one = $1`, Dict{"one": 10}) })
	})

	t.Run(`missing argument`, func(t *testing.T) {
		var query Query
		panics(t, `missing named argument`, func() { query.AppendNamed(`one = :one`, Dict{}) })
	})

	t.Run(`unused argument`, func(t *testing.T) {
		var query Query
		panics(t, `unused named argument`, func() {
			query.AppendNamed(`one = :one`, Dict{"one": 10, "two": 20})
		})
	})
}

func Test_Query_AppendQuery(t *testing.T) {
	var sub Query
	sub.Append(`two = $1`, 20)

	var query Query
	query.Append(`one = $1`, 10)
	query.AppendQuery(sub)

	eq(t, `one = $1 two = $2`, query.String())
	eq(t, list{10, 20}, query.Args)
}

func Test_Query_Clear(t *testing.T) {
	var query Query
	query.Append(`one = $1`, 10)
	query.Clear()

	eq(t, ``, query.String())
	eq(t, list{}, query.Args)

	query.Append(`two = $1`, 20)
	eq(t, `two = $1`, query.String())
	eq(t, list{20}, query.Args)
}

func Test_Query_WrapSelect(t *testing.T) {
	var query Query
	query.Append(`select * from some_table`)
	query.WrapSelect(`one, two`)

	eq(t, `WITH _ AS (select * from some_table) SELECT one, two FROM _`, query.String())
}

func Test_Query_WrapSelectCols(t *testing.T) {
	var query Query
	query.Append(`select * from some_table`)
	query.WrapSelectCols(Internal{})

	eq(t, `WITH _ AS (select * from some_table) SELECT "id", "name" FROM _`, query.String())
}

func Test_Query_AppendExpr(t *testing.T) {
	var sub Query
	sub.Append(`"age" > $1 and "city" = $2`, 18, `Tokyo`)

	bui := Bui{Params: true}
	bui.Str(`SELECT * FROM "users" WHERE`)
	bui.Arg(`Mira`)
	bui.Str(`= "name" AND`)
	bui.Expr(sub)

	text, args := bui.Reify()
	eq(t, `SELECT * FROM "users" WHERE $1 = "name" AND "age" > $2 and "city" = $3`, text)
	eq(t, list{`Mira`, 18, `Tokyo`}, args)
}

func Test_Select_Query(t *testing.T) {
	query := SelectFrom(`users`).
		Col(`id`).
		Where(Eq(Col(`active`), Bool(true))).
		Query()

	query.Append(`and "age" > $1`, 18)

	eq(t, `SELECT "id" FROM "users" WHERE "active" = $1 and "age" > $2`, query.String())
	eq(t, list{true, 18}, query.Args)
}
