package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/weft/eval"
	"github.com/simon-lentz/weft/expr"
	"github.com/simon-lentz/weft/immutable"
)

func evalExpr(t *testing.T, e expr.Expression, scope eval.Scope) immutable.Value {
	t.Helper()
	v, err := eval.NewEvaluator().Evaluate(e, scope)
	require.NoError(t, err)
	return v
}

func lit(v any) expr.Expression { return expr.NewLiteral(v) }

func TestEvaluatorLiterals(t *testing.T) {
	scope := eval.NewRootScope(nil)

	v := evalExpr(t, lit(42.0), scope)
	n, _ := v.Num()
	assert.Equal(t, 42.0, n)

	v = evalExpr(t, lit("hi"), scope)
	s, _ := v.Str()
	assert.Equal(t, "hi", s)

	v = evalExpr(t, lit(nil), scope)
	assert.True(t, v.IsNull())
}

func TestEvaluatorArithmetic(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("+"), lit(1.0), lit(2.0)}, scope)
	n, _ := v.Num()
	assert.Equal(t, 3.0, n)

	v = evalExpr(t, expr.SExpr{expr.Op("*"), lit(3.0), lit(4.0)}, scope)
	n, _ = v.Num()
	assert.Equal(t, 12.0, n)

	v = evalExpr(t, expr.SExpr{expr.Op("-x"), lit(5.0)}, scope)
	n, _ = v.Num()
	assert.Equal(t, -5.0, n)
}

func TestEvaluatorAddConcatenatesStrings(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("+"), lit("a"), lit("b")}, scope)
	s, _ := v.Str()
	assert.Equal(t, "ab", s)
}

func TestEvaluatorComparisons(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("=="), lit(1.0), lit(1.0)}, scope)
	b, _ := v.Bool()
	assert.True(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op("<"), lit(1.0), lit(2.0)}, scope)
	b, _ = v.Bool()
	assert.True(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op(">="), lit(2.0), lit(2.0)}, scope)
	b, _ = v.Bool()
	assert.True(t, b)
}

func TestEvaluatorLogicalShortCircuit(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("&&"), lit(true), lit(false)}, scope)
	b, _ := v.Bool()
	assert.False(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op("||"), lit(false), lit(true)}, scope)
	b, _ = v.Bool()
	assert.True(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op("!"), lit(false)}, scope)
	b, _ = v.Bool()
	assert.True(t, b)
}

func TestEvaluatorTernary(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("?"), lit(true), lit("yes"), lit("no")}, scope)
	s, _ := v.Str()
	assert.Equal(t, "yes", s)
}

func TestEvaluatorVariable(t *testing.T) {
	scope := eval.NewRootScope(map[string]immutable.Value{"x": immutable.NewNum(10)})
	v := evalExpr(t, expr.SExpr{expr.Op("$"), lit("x")}, scope)
	n, _ := v.Num()
	assert.Equal(t, 10.0, n)
}

func TestEvaluatorUndefinedVariableErrors(t *testing.T) {
	scope := eval.NewRootScope(nil)
	_, err := eval.NewEvaluator().Evaluate(expr.SExpr{expr.Op("$"), lit("missing")}, scope)
	require.Error(t, err)
}

func TestEvaluatorMemberAccess(t *testing.T) {
	scope := eval.NewRootScope(nil)
	obj := expr.SExpr{expr.Op("{}"), expr.SExpr{expr.Op("field"), lit("name"), lit("Ada"), lit("normal")}}
	v := evalExpr(t, expr.SExpr{expr.Op("."), obj, lit("name")}, scope)
	s, _ := v.Str()
	assert.Equal(t, "Ada", s)
}

func TestEvaluatorMemberAccessMissingIsNull(t *testing.T) {
	scope := eval.NewRootScope(nil)
	obj := expr.SExpr{expr.Op("{}")}
	v := evalExpr(t, expr.SExpr{expr.Op("."), obj, lit("missing")}, scope)
	assert.True(t, v.IsNull())
}

func TestEvaluatorIndexAccess(t *testing.T) {
	scope := eval.NewRootScope(nil)
	arr := expr.SExpr{expr.Op("[]"), lit(10.0), lit(20.0), lit(30.0)}
	v := evalExpr(t, expr.SExpr{expr.Op("@"), arr, lit(1.0)}, scope)
	n, _ := v.Num()
	assert.Equal(t, 20.0, n)
}

func TestEvaluatorIndexOutOfRangeErrors(t *testing.T) {
	scope := eval.NewRootScope(nil)
	arr := expr.SExpr{expr.Op("[]"), lit(10.0)}
	_, err := eval.NewEvaluator().Evaluate(expr.SExpr{expr.Op("@"), arr, lit(5.0)}, scope)
	require.Error(t, err)
}

func TestEvaluatorLambdaAndApply(t *testing.T) {
	scope := eval.NewRootScope(nil)
	params := expr.NewLiteral([]string{"x"})
	body := expr.SExpr{expr.Op("*"), expr.SExpr{expr.Op("$"), lit("x")}, lit(2.0)}
	fn := expr.SExpr{expr.Op("fn"), params, body}

	v := evalExpr(t, expr.SExpr{expr.Op("apply"), fn, lit(21.0)}, scope)
	n, _ := v.Num()
	assert.Equal(t, 42.0, n)
}

func TestEvaluatorCallBuiltin(t *testing.T) {
	scope := eval.NewRootScope(nil)
	call := expr.SExpr{expr.Op("call"), lit("strings.upper"), lit("abc")}
	v := evalExpr(t, call, scope)
	s, _ := v.Str()
	assert.Equal(t, "ABC", s)
}

func TestEvaluatorMethodSugar(t *testing.T) {
	scope := eval.NewRootScope(nil)
	method := expr.SExpr{expr.Op("method"), lit("strings.upper"), lit("abc")}
	v := evalExpr(t, method, scope)
	s, _ := v.Str()
	assert.Equal(t, "ABC", s)
}

func TestEvaluatorInOperator(t *testing.T) {
	scope := eval.NewRootScope(nil)
	arr := expr.SExpr{expr.Op("[]"), lit(1.0), lit(2.0), lit(3.0)}
	v := evalExpr(t, expr.SExpr{expr.Op("in"), lit(2.0), arr}, scope)
	b, _ := v.Bool()
	assert.True(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op("in"), lit(9.0), arr}, scope)
	b, _ = v.Bool()
	assert.False(t, b)
}

func TestEvaluatorRegexMatchOperators(t *testing.T) {
	scope := eval.NewRootScope(nil)
	v := evalExpr(t, expr.SExpr{expr.Op("=~"), lit("hello123"), lit(`^[a-z]+\d+$`)}, scope)
	b, _ := v.Bool()
	assert.True(t, b)

	v = evalExpr(t, expr.SExpr{expr.Op("!~"), lit("hello123"), lit(`^[a-z]+\d+$`)}, scope)
	b, _ = v.Bool()
	assert.False(t, b)
}

func TestEvaluatorArrayLiteralIsLazy(t *testing.T) {
	scope := eval.NewRootScope(nil)
	arr := expr.SExpr{expr.Op("[]"), lit(1.0), lit(2.0)}
	v := evalExpr(t, arr, scope)
	a, _ := v.Arr()
	assert.Equal(t, 2, a.Len())
}
