package pqb

import (
	"errors"
	"fmt"
	"testing"
)

func Test_Err_Error(t *testing.T) {
	eq(t, ``, Err{}.Error())

	eq(
		t,
		`[pqb] InvalidInput while doing stuff: reason`,
		Err{
			Code:  ErrCodeInvalidInput,
			While: `doing stuff`,
			Cause: errors.New(`reason`),
		}.Error(),
	)

	eq(
		t,
		`[pqb] while doing stuff: reason`,
		Err{While: `doing stuff`, Cause: errors.New(`reason`)}.Error(),
	)
}

func Test_Err_Is(t *testing.T) {
	err := error(Err{
		Code:  ErrCodeUnusedArgument,
		While: `appending to query`,
		Cause: errors.New(`reason`),
	})

	eq(t, true, errors.Is(err, ErrUnusedArgument))
	eq(t, false, errors.Is(err, ErrMissingArgument))
	eq(t, false, errors.Is(err, ErrInvalidInput))
}

func Test_Err_Unwrap(t *testing.T) {
	cause := errors.New(`reason`)
	err := Err{Code: ErrCodeInternal, Cause: cause}

	eq(t, cause, errors.Unwrap(error(err)))
	eq(t, true, errors.Is(error(err), cause))
}

func Test_Err_wrapped(t *testing.T) {
	inner := Err{Code: ErrCodeInvalidInput, Cause: errors.New(`reason`)}
	outer := fmt.Errorf(`outer context: %w`, error(inner))

	eq(t, true, errors.Is(outer, ErrInvalidInput))
}

func Test_CatchExprs(t *testing.T) {
	var bui Bui
	eq(t, nil, bui.CatchExprs(Col(`one`)))
	eq(t, `"one"`, bui.String())

	err := new(Bui).CatchExprs(panicExpr{})
	eq(t, true, errors.Is(err, ErrInvalidInput))
}

type panicExpr struct{}

func (panicExpr) AppendExpr(*Bui) {
	panic(error(ErrInvalidInput.while(`rendering test expression`)))
}

func Test_ValueOf_panic_code(t *testing.T) {
	defer func() {
		val := recover()
		err, _ := val.(error)
		if err == nil {
			t.Fatalf(`expected a panic carrying an error`)
		}
		eq(t, true, errors.Is(err, ErrInvalidInput))
	}()
	ValueOf(struct{}{})
}
