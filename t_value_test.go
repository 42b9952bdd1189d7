package pqb

import (
	"database/sql"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func Test_Null(t *testing.T) {
	testEncoder(t, `NULL`, Null())
	testEncoder(t, `NULL`, Value{})
	eq(t, true, Null().IsNull())
	eq(t, false, Bool(false).IsNull())
	testExprs(t, rei(`$1`, nil), Null())
}

func Test_Bool(t *testing.T) {
	testEncoder(t, `TRUE`, Bool(true))
	testEncoder(t, `FALSE`, Bool(false))
	testExprs(t, rei(`$1`, true), Bool(true))
	testExprs(t, rei(`$1`, false), Bool(false))
}

func Test_Int(t *testing.T) {
	testEncoder(t, `0`, Int(0))
	testEncoder(t, `1`, Int(1))
	testEncoder(t, `-1`, Int(-1))
	testEncoder(t, `9223372036854775807`, Int(math.MaxInt64))
	testEncoder(t, `-9223372036854775808`, Int(math.MinInt64))
	testExprs(t, rei(`$1`, int64(12)), Int(12))
}

func Test_Float(t *testing.T) {
	testEncoder(t, `0`, Float(0))
	testEncoder(t, `1.5`, Float(1.5))
	testEncoder(t, `-1.5`, Float(-1.5))
	testEncoder(t, `1e+21`, Float(1e21))
	testEncoder(t, `'NaN'`, Float(math.NaN()))
	testEncoder(t, `'Infinity'`, Float(math.Inf(1)))
	testEncoder(t, `'-Infinity'`, Float(math.Inf(-1)))
	testExprs(t, rei(`$1`, 1.5), Float(1.5))
}

func Test_Text(t *testing.T) {
	testEncoder(t, `''`, Text(``))
	testEncoder(t, `'one'`, Text(`one`))
	testEncoder(t, `'one two'`, Text(`one two`))

	// Quotes and backslashes switch to the escape form.
	testEncoder(t, `E'O\'Neil'`, Text(`O'Neil`))
	testEncoder(t, `E'one\\two'`, Text(`one\two`))

	// Control characters likewise.
	testEncoder(t, `E'one\ntwo'`, Text("one\ntwo"))
	testEncoder(t, `E'one\ttwo'`, Text("one\ttwo"))
	testEncoder(t, `E'one\r\ntwo'`, Text("one\r\ntwo"))
	testEncoder(t, `E'\b\f'`, Text("\b\f"))
	testEncoder(t, `E'\000'`, Text("\x00"))
	testEncoder(t, `E'\033'`, Text("\x1b"))

	// A digit after a control byte must not extend the octal escape.
	testEncoder(t, `E'\0007'`, Text("\x007"))

	// Multi-byte text passes through unchanged.
	testEncoder(t, `'дима'`, Text(`дима`))

	testExprs(t, rei(`$1`, `O'Neil`), Text(`O'Neil`))
}

func Test_Bytes(t *testing.T) {
	testEncoder(t, `'\x'`, Bytes(nil))
	testEncoder(t, `'\x0102ff'`, Bytes([]byte{1, 2, 0xff}))
	testExprs(t, rei(`$1`, []byte{1, 2}), Bytes([]byte{1, 2}))
}

func Test_UUID(t *testing.T) {
	val := uuid.MustParse(`d170bd61-0cf6-47f8-ae11-7da035ce7f5c`)
	testEncoder(t, `'d170bd61-0cf6-47f8-ae11-7da035ce7f5c'`, UUID(val))
	testExprs(t, rei(`$1`, val), UUID(val))
}

func Test_JSON(t *testing.T) {
	testEncoder(t, `'{"one": 10}'`, JSON(json.RawMessage(`{"one": 10}`)))
	testEncoder(t, `E'{"one": "two\'s"}'`, JSON(json.RawMessage(`{"one": "two's"}`)))
	testExprs(t, rei(`$1`, `[10, 20]`), JSON(json.RawMessage(`[10, 20]`)))
}

func Test_Array(t *testing.T) {
	testEncoder(t, `'{}'`, Array())
	testEncoder(t, `ARRAY[10]`, Array(Int(10)))
	testEncoder(t, `ARRAY[10, 20, 30]`, Array(Int(10), Int(20), Int(30)))
	testEncoder(t, `ARRAY['one', NULL, TRUE]`, Array(Text(`one`), Null(), Bool(true)))
	testEncoder(t, `ARRAY[ARRAY[10], ARRAY[20]]`, Array(Array(Int(10)), Array(Int(20))))

	testExprs(t, rei(`$1`, list{int64(10), int64(20)}), Array(Int(10), Int(20)))
}

func Test_ValueOf(t *testing.T) {
	test := func(exp Value, src any) {
		t.Helper()
		eq(t, exp, ValueOf(src))
	}

	test(Null(), nil)
	test(Bool(true), true)
	test(Int(10), 10)
	test(Int(10), int8(10))
	test(Int(10), int16(10))
	test(Int(10), int32(10))
	test(Int(10), int64(10))
	test(Int(10), uint(10))
	test(Int(10), uint16(10))
	test(Int(10), uint32(10))
	test(Int(10), uint64(10))
	test(Float(1.5), float32(1.5))
	test(Float(1.5), 1.5)
	test(Text(`one`), `one`)
	test(Bytes([]byte(`one`)), []byte(`one`))
	test(JSON(json.RawMessage(`[]`)), json.RawMessage(`[]`))

	uid := uuid.MustParse(`d170bd61-0cf6-47f8-ae11-7da035ce7f5c`)
	test(UUID(uid), uid)

	inst := time.Date(2021, 2, 3, 4, 5, 6, 0, time.UTC)
	test(Text(`2021-02-03T04:05:06Z`), inst)

	t.Run(`identity`, func(t *testing.T) {
		test(Int(10), Int(10))
		test(Null(), Value{})
	})

	t.Run(`pointers`, func(t *testing.T) {
		test(Null(), (*string)(nil))
		str := `one`
		test(Text(`one`), &str)
	})

	t.Run(`slices`, func(t *testing.T) {
		test(Null(), []int64(nil))
		test(Array(Int(10), Int(20)), []int64{10, 20})
		test(Array(Text(`one`)), []string{`one`})
	})

	t.Run(`valuer`, func(t *testing.T) {
		test(Text(`one`), sql.NullString{String: `one`, Valid: true})
		test(Null(), sql.NullString{})
	})

	t.Run(`invalid`, func(t *testing.T) {
		panics(t, `unsupported type`, func() { ValueOf(struct{}{}) })
		panics(t, `unsupported type`, func() { ValueOf(map[string]int{}) })
	})
}

func Test_Value_Arg(t *testing.T) {
	eq(t, nil, Null().Arg())
	eq(t, true, Bool(true).Arg())
	eq(t, int64(10), Int(10).Arg())
	eq(t, 1.5, Float(1.5).Arg())
	eq(t, `one`, Text(`one`).Arg())
	eq(t, []byte{1, 2}, Bytes([]byte{1, 2}).Arg())
	eq(t, list{int64(10), `one`}, Array(Int(10), Text(`one`)).Arg())
}
