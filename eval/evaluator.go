package eval

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/simon-lentz/weft/expr"
	"github.com/simon-lentz/weft/immutable"
	"github.com/simon-lentz/weft/internal/trace"
	"github.com/simon-lentz/weft/internal/value"
)

// Evaluator walks a compiled [expr.Expression] tree and produces
// [immutable.Value] results. Evaluator is stateless and safe for
// concurrent use; all mutable state lives in the Scope passed to each
// call, per spec.md §5's single-threaded-per-evaluation model.
//
// The AST contract an upstream compiler must produce (the parser itself
// is out of scope, per spec.md §1):
//
//	(lit <value>)                              literal
//	($ <name>)                                  variable reference
//	(. <objExpr> <name>)                        member access
//	(@ <arrExpr> <indexExpr>)                   index access
//	([] <elemExpr>...)                          array literal
//	({} (field <keyExpr> <valExpr> <vis>)...)   object literal
//	(fn <params []string> <body>)               lambda
//	(call <name> <argExpr>...)                  registry builtin call
//	(apply <calleeExpr> <argExpr>...)            call an arbitrary Func value
//	(method <name> <receiverExpr> <argExpr>...) sugar for (call "ns.name" receiver args...)
//	(&& <l> <r>) (|| <l> <r>) (! <x>)           logical, short-circuiting
//	(? <cond> <then> <else>)                     ternary
//	(== != < <= > >=) (+ - * / % -x)            comparison / arithmetic
//	(=~ !~) (in)                                 regex match / membership
type Evaluator struct {
	cfg      *config
	registry *Registry
}

// NewEvaluator constructs an Evaluator backed by a full standard-library
// Registry.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := applyOptions(opts)
	return &Evaluator{cfg: cfg, registry: NewRegistry(cfg)}
}

// Registry exposes the evaluator's standard-library registry, e.g. for a
// codec or CLI front end that wants to invoke ds.read/ds.write directly.
func (e *Evaluator) Registry() *Registry { return e.registry }

// Evaluate evaluates expression in scope and returns the resulting value.
func (e *Evaluator) Evaluate(expression expr.Expression, scope Scope) (immutable.Value, error) {
	if expression == nil {
		return immutable.Null, nil
	}
	op := trace.Begin(context.Background(), e.cfg.logger, "weft.eval.expr")
	defer func() { op.End(nil) }()
	return e.eval(expression, scope)
}

func (e *Evaluator) eval(expression expr.Expression, scope Scope) (immutable.Value, error) {
	switch ex := expression.(type) {
	case *expr.Literal:
		return e.literalValue(ex.Val)
	case expr.Op:
		return immutable.NewStr(string(ex)), nil
	case expr.DatatypeLiteral:
		return immutable.NewStr(string(ex)), nil
	case expr.SExpr:
		return e.evalSExpr(ex, scope)
	default:
		return immutable.Value{}, fmt.Errorf("eval: unknown expression type %T", expression)
	}
}

func (e *Evaluator) literalValue(val any) (immutable.Value, error) {
	switch v := val.(type) {
	case nil:
		return immutable.Null, nil
	case bool:
		return immutable.NewBool(v), nil
	case float64:
		return immutable.NewNum(v), nil
	case string:
		return immutable.NewStr(v), nil
	default:
		return immutable.Value{}, fmt.Errorf("eval: unsupported literal value %T", val)
	}
}

func (e *Evaluator) evalSExpr(sexpr expr.SExpr, scope Scope) (immutable.Value, error) {
	op := sexpr.Op()
	children := sexpr.Children()

	trace.Debug(context.Background(), e.cfg.logger, "evaluating s-expression", slog.String("op", op))

	switch op {
	case "&&":
		return e.evalAnd(children, scope)
	case "||":
		return e.evalOr(children, scope)
	case "!":
		return e.evalNot(children, scope)
	case "?":
		return e.evalTernary(children, scope)
	case "$":
		return e.evalVar(children, scope)
	case ".":
		return e.evalMember(children, scope)
	case "@":
		return e.evalIndex(children, scope)
	case "[]":
		return e.evalArrayLiteral(children, scope)
	case "{}":
		return e.evalObjectLiteral(children, scope)
	case "fn":
		return e.evalLambda(children, scope)
	case "call":
		return e.evalCall(children, scope)
	case "apply":
		return e.evalApply(children, scope)
	case "method":
		return e.evalMethod(children, scope)
	case "in":
		return e.evalIn(children, scope)
	case "=~":
		return e.evalRegexMatch(children, scope, true)
	case "!~":
		return e.evalRegexMatch(children, scope, false)
	}

	args := make([]immutable.Value, len(children))
	for i, child := range children {
		v, err := e.eval(child, scope)
		if err != nil {
			return immutable.Value{}, err
		}
		args[i] = v
	}

	switch op {
	case "+":
		return e.add(args)
	case "-":
		return e.sub(args)
	case "*":
		return e.mul(args)
	case "/":
		return e.div(args)
	case "%":
		return e.rem(args)
	case "-x":
		return e.negate(args)
	case "==":
		return e.cmpEqual(args, true)
	case "!=":
		return e.cmpEqual(args, false)
	case "<", "<=", ">", ">=":
		return e.cmpOrder(op, args)
	}
	return immutable.Value{}, fmt.Errorf("eval: unknown operator %q", op)
}

func (e *Evaluator) evalAnd(children []expr.Expression, scope Scope) (immutable.Value, error) {
	for _, c := range children {
		v, err := e.eval(c, scope)
		if err != nil {
			return immutable.Value{}, err
		}
		b, ok := v.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", v.PrettyName())
		}
		if !b {
			return immutable.NewBool(false), nil
		}
	}
	return immutable.NewBool(true), nil
}

func (e *Evaluator) evalOr(children []expr.Expression, scope Scope) (immutable.Value, error) {
	for _, c := range children {
		v, err := e.eval(c, scope)
		if err != nil {
			return immutable.Value{}, err
		}
		b, ok := v.Bool()
		if !ok {
			return immutable.Value{}, TypeMismatch("Boolean", v.PrettyName())
		}
		if b {
			return immutable.NewBool(true), nil
		}
	}
	return immutable.NewBool(false), nil
}

func (e *Evaluator) evalNot(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 1 {
		return immutable.Value{}, DomainError("! requires exactly one operand")
	}
	v, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	b, ok := v.Bool()
	if !ok {
		return immutable.Value{}, TypeMismatch("Boolean", v.PrettyName())
	}
	return immutable.NewBool(!b), nil
}

func (e *Evaluator) evalTernary(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 3 {
		return immutable.Value{}, DomainError("ternary requires exactly three operands")
	}
	cond, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	b, ok := cond.Bool()
	if !ok {
		return immutable.Value{}, TypeMismatch("Boolean", cond.PrettyName())
	}
	if b {
		return e.eval(children[1], scope)
	}
	return e.eval(children[2], scope)
}

func (e *Evaluator) evalVar(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 1 {
		return immutable.Value{}, DomainError("$ requires exactly one name operand")
	}
	name, ok := expr.StringLiteral(children[0])
	if !ok {
		return immutable.Value{}, DomainError("$ operand must be a string literal")
	}
	v, ok := scope.Lookup(name)
	if !ok {
		return immutable.Value{}, NewFault(KindDomainError, "undefined variable: %s", name)
	}
	return v, nil
}

func (e *Evaluator) evalMember(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 2 {
		return immutable.Value{}, DomainError(". requires exactly two operands")
	}
	objVal, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	name, ok := expr.StringLiteral(children[1])
	if !ok {
		return immutable.Value{}, DomainError(". operand 2 must be a string literal member name")
	}
	obj, ok := objVal.Obj()
	if !ok {
		return immutable.Value{}, TypeMismatch("Object", objVal.PrettyName())
	}
	v, ok, err := obj.GetVisible(name)
	if err != nil {
		return immutable.Value{}, err
	}
	if !ok {
		return immutable.Null, nil
	}
	return v, nil
}

func (e *Evaluator) evalIndex(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 2 {
		return immutable.Value{}, DomainError("@ requires exactly two operands")
	}
	arrVal, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	idxVal, err := e.eval(children[1], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	arr, ok := arrVal.Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", arrVal.PrettyName())
	}
	idxF, ok := idxVal.Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", idxVal.PrettyName())
	}
	idx := int(idxF)
	v, err, ok := arr.GetOK(idx)
	if err != nil {
		return immutable.Value{}, err
	}
	if !ok {
		return immutable.Value{}, DomainError("index %d out of range for array of length %d", idx, arr.Len())
	}
	return v, nil
}

func (e *Evaluator) evalArrayLiteral(children []expr.Expression, scope Scope) (immutable.Value, error) {
	cells := make([]immutable.Cell, len(children))
	for i, c := range children {
		child := c
		cells[i] = immutable.NewThunk(func() (immutable.Value, error) { return e.eval(child, scope) })
	}
	return immutable.NewArr(immutable.NewLazyArray(cells)), nil
}

// evalObjectLiteral evaluates ({} (field keyExpr valExpr visExpr)...).
func (e *Evaluator) evalObjectLiteral(children []expr.Expression, scope Scope) (immutable.Value, error) {
	b := immutable.NewObjectBuilder()
	for _, c := range children {
		field, ok := c.(expr.SExpr)
		if !ok || field.Op() != "field" || len(field) != 4 {
			return immutable.Value{}, DomainError("malformed object field")
		}
		keyVal, err := e.eval(field[1], scope)
		if err != nil {
			return immutable.Value{}, err
		}
		key, ok := keyVal.Str()
		if !ok {
			return immutable.Value{}, TypeMismatch("String", keyVal.PrettyName())
		}
		visName, _ := expr.StringLiteral(field[3])
		vis := immutable.VisNormal
		switch visName {
		case "hidden":
			vis = immutable.VisHidden
		case "unconditional":
			vis = immutable.VisUnconditional
		}
		valExpr := field[2]
		b.Set(key, immutable.NewLazyMember(vis, func() (immutable.Value, error) { return e.eval(valExpr, scope) }))
	}
	return immutable.NewObj(b.Build()), nil
}

func (e *Evaluator) evalLambda(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 2 {
		return immutable.Value{}, DomainError("fn requires exactly two operands")
	}
	params, ok := expr.ParamsLiteral(children[0])
	if !ok {
		return immutable.Value{}, DomainError("fn operand 1 must be a parameter name list")
	}
	body := children[1]
	f := immutable.Func{
		Params: params,
		Call: func(args []immutable.Value) (immutable.Value, error) {
			if len(args) != len(params) {
				return immutable.Value{}, ArityMismatch(fmt.Sprintf("%d", len(params)), len(args))
			}
			callScope := scope
			for i, p := range params {
				callScope = callScope.WithVar(p, args[i])
			}
			return e.eval(body, callScope)
		},
	}
	return immutable.NewFunc(f), nil
}

func (e *Evaluator) evalCall(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) < 1 {
		return immutable.Value{}, DomainError("call requires a function name")
	}
	name, ok := expr.StringLiteral(children[0])
	if !ok {
		return immutable.Value{}, DomainError("call operand 1 must be a function name")
	}
	args, err := e.evalAll(children[1:], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	return e.registry.Call(name, args)
}

func (e *Evaluator) evalApply(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) < 1 {
		return immutable.Value{}, DomainError("apply requires a callee")
	}
	calleeVal, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	f, ok := calleeVal.Func()
	if !ok {
		return immutable.Value{}, TypeMismatch("Function", calleeVal.PrettyName())
	}
	args, err := e.evalAll(children[1:], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	return f.Invoke(args)
}

func (e *Evaluator) evalMethod(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) < 2 {
		return immutable.Value{}, DomainError("method requires a name and a receiver")
	}
	name, ok := expr.StringLiteral(children[0])
	if !ok {
		return immutable.Value{}, DomainError("method operand 1 must be a method name")
	}
	receiver, err := e.eval(children[1], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	rest, err := e.evalAll(children[2:], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	args := append([]immutable.Value{receiver}, rest...)
	return e.registry.Call(name, args)
}

func (e *Evaluator) evalIn(children []expr.Expression, scope Scope) (immutable.Value, error) {
	if len(children) != 2 {
		return immutable.Value{}, DomainError("in requires exactly two operands")
	}
	needle, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	haystack, err := e.eval(children[1], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	arr, ok := haystack.Arr()
	if !ok {
		return immutable.Value{}, TypeMismatch("Array", haystack.PrettyName())
	}
	vals, err := arr.Values()
	if err != nil {
		return immutable.Value{}, err
	}
	for _, v := range vals {
		eq, err := immutable.Equal(needle, v)
		if err != nil {
			return immutable.Value{}, err
		}
		if eq {
			return immutable.NewBool(true), nil
		}
	}
	return immutable.NewBool(false), nil
}

func (e *Evaluator) evalRegexMatch(children []expr.Expression, scope Scope, want bool) (immutable.Value, error) {
	if len(children) != 2 {
		return immutable.Value{}, DomainError("regex match requires exactly two operands")
	}
	strVal, err := e.eval(children[0], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	s, ok := strVal.Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", strVal.PrettyName())
	}
	patVal, err := e.eval(children[1], scope)
	if err != nil {
		return immutable.Value{}, err
	}
	pattern, ok := patVal.Str()
	if !ok {
		return immutable.Value{}, TypeMismatch("String", patVal.PrettyName())
	}
	matched, err := regexMatches(pattern, s)
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewBool(matched == want), nil
}

func (e *Evaluator) evalAll(children []expr.Expression, scope Scope) ([]immutable.Value, error) {
	out := make([]immutable.Value, len(children))
	for i, c := range children {
		v, err := e.eval(c, scope)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Evaluator) add(args []immutable.Value) (immutable.Value, error) {
	if len(args) != 2 {
		return immutable.Value{}, DomainError("+ requires exactly two operands")
	}
	if args[0].Kind() == immutable.KindStr || args[1].Kind() == immutable.KindStr {
		return combine(args[0], args[1])
	}
	l, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	r, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	return immutable.NewNum(l + r), nil
}

func (e *Evaluator) arith(args []immutable.Value, op func(a, b float64) float64) (immutable.Value, error) {
	if len(args) != 2 {
		return immutable.Value{}, DomainError("arithmetic operator requires exactly two operands")
	}
	l, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	r, ok := args[1].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[1].PrettyName())
	}
	return immutable.NewNum(op(l, r)), nil
}

func (e *Evaluator) sub(args []immutable.Value) (immutable.Value, error) {
	return e.arith(args, func(a, b float64) float64 { return a - b })
}

func (e *Evaluator) mul(args []immutable.Value) (immutable.Value, error) {
	return e.arith(args, func(a, b float64) float64 { return a * b })
}

func (e *Evaluator) div(args []immutable.Value) (immutable.Value, error) {
	return e.arith(args, func(a, b float64) float64 { return a / b })
}

func (e *Evaluator) rem(args []immutable.Value) (immutable.Value, error) {
	return e.arith(args, math.Mod)
}

func (e *Evaluator) negate(args []immutable.Value) (immutable.Value, error) {
	if len(args) != 1 {
		return immutable.Value{}, DomainError("-x requires exactly one operand")
	}
	n, ok := args[0].Num()
	if !ok {
		return immutable.Value{}, TypeMismatch("Number", args[0].PrettyName())
	}
	return immutable.NewNum(-n), nil
}

func (e *Evaluator) cmpEqual(args []immutable.Value, want bool) (immutable.Value, error) {
	if len(args) != 2 {
		return immutable.Value{}, DomainError("comparison requires exactly two operands")
	}
	eq, err := immutable.Equal(args[0], args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	return immutable.NewBool(eq == want), nil
}

func (e *Evaluator) cmpOrder(op string, args []immutable.Value) (immutable.Value, error) {
	if len(args) != 2 {
		return immutable.Value{}, DomainError("comparison requires exactly two operands")
	}
	cmp, err := value.ValueOrder(args[0], args[1])
	if err != nil {
		return immutable.Value{}, err
	}
	switch op {
	case "<":
		return immutable.NewBool(cmp < 0), nil
	case "<=":
		return immutable.NewBool(cmp <= 0), nil
	case ">":
		return immutable.NewBool(cmp > 0), nil
	case ">=":
		return immutable.NewBool(cmp >= 0), nil
	}
	return immutable.Value{}, fmt.Errorf("eval: unknown comparison operator %q", op)
}
