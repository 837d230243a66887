// Package rangeexpr parses range expressions such as "range(2020, 2030, 5)"
// into the integer sequences they denote.
//
// The text is parsed with the HCL expression grammar and then restricted to a
// single call of the form range(start, end) or range(start, end, step). No
// variables and no other functions are available, so an expression can only
// ever produce integers or an error.
package rangeexpr

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/zclconf/go-cty/cty"
)

// MaxValues caps how many integers a single expression may produce.
const MaxValues = 1_000_000

// ErrTooManyValues is returned when an expression would produce more than
// MaxValues integers.
var ErrTooManyValues = fmt.Errorf("range produces more than %d values", MaxValues)

// Expr is a parsed range expression. It denotes the half-open arithmetic
// progression Start, Start+Step, ... that stops before End.
type Expr struct {
	Start int
	End   int
	Step  int
}

// Parse evaluates text as a range expression. The item names the
// configuration entry the expression belongs to and is only used in the
// error message. On failure the returned data is empty and exactly one error
// diagnostic describes the problem.
func Parse(text, item string) ([]int, hcl.Diagnostics) {
	expr, err := ParseExpr(text)
	if err != nil {
		return nil, errorDiags(err, item)
	}
	values, err := expr.Values()
	if err != nil {
		return nil, errorDiags(err, item)
	}
	return values, nil
}

func errorDiags(err error, item string) hcl.Diagnostics {
	return hcl.Diagnostics{
		issue.Errorf(issue.RangeExpression, item, "%s in 'range' for '%s'.", err, item),
	}
}

// ParseExpr parses text into an Expr without expanding it.
func ParseExpr(text string) (Expr, error) {
	src := []byte(strings.TrimSpace(text))
	syntax, diags := hclsyntax.ParseExpression(src, "range", hcl.InitialPos)
	if diags.HasErrors() {
		return Expr{}, fmt.Errorf("invalid range expression '%s'", text)
	}

	call, ok := syntax.(*hclsyntax.FunctionCallExpr)
	if !ok || call.Name != "range" || call.ExpandFinal {
		return Expr{}, fmt.Errorf("invalid range expression '%s'", text)
	}
	if n := len(call.Args); n < 2 || n > 3 {
		return Expr{}, fmt.Errorf("range expected 2 or 3 arguments, got %d", n)
	}

	args := [3]int{0, 0, 1}
	for i, arg := range call.Args {
		n, err := argInt(arg, src)
		if err != nil {
			return Expr{}, err
		}
		args[i] = n
	}

	if args[2] == 0 {
		return Expr{}, errors.New("range() arg 3 must not be zero")
	}
	return Expr{Start: args[0], End: args[1], Step: args[2]}, nil
}

// argInt evaluates one call argument. Only literal arithmetic can be
// evaluated because no evaluation context is supplied.
func argInt(arg hclsyntax.Expression, src []byte) (int, error) {
	val, diags := arg.Value(nil)
	if diags.HasErrors() {
		if trav, ok := arg.(*hclsyntax.ScopeTraversalExpr); ok {
			return 0, fmt.Errorf("name '%s' is not defined", trav.Traversal.RootName())
		}
		return 0, fmt.Errorf("invalid range argument '%s'", strings.TrimSpace(string(arg.Range().SliceBytes(src))))
	}

	if val.IsNull() {
		return 0, notInteger("NoneType")
	}

	ty := val.Type()
	switch {
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if !bf.IsInt() || FloatExpr(arg, src) {
			return 0, notInteger("float")
		}
		i, acc := bf.Int64()
		if acc != big.Exact || i < math.MinInt || i > math.MaxInt {
			return 0, fmt.Errorf("range argument %s is out of bounds", bf.Text('f', 0))
		}
		return int(i), nil
	case ty == cty.String:
		return 0, notInteger("str")
	case ty == cty.Bool:
		return 0, notInteger("bool")
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		return 0, notInteger("list")
	default:
		return 0, notInteger("dict")
	}
}

func notInteger(typeName string) error {
	return fmt.Errorf("'%s' object cannot be interpreted as an integer", typeName)
}

// FloatExpr reports whether expr produces a float no matter its value: any
// float literal such as 2.0 or 1e3 anywhere inside it, or a division.
func FloatExpr(expr hclsyntax.Expression, src []byte) bool {
	found := false
	hclsyntax.VisitAll(expr, func(node hclsyntax.Node) hcl.Diagnostics {
		switch e := node.(type) {
		case *hclsyntax.LiteralValueExpr:
			if e.Val.Type() == cty.Number && strings.ContainsAny(string(e.SrcRange.SliceBytes(src)), ".eE") {
				found = true
			}
		case *hclsyntax.BinaryOpExpr:
			if e.Op == hclsyntax.OpDivide {
				found = true
			}
		}
		return nil
	})
	return found
}

// Len returns how many integers the expression produces.
func (e Expr) Len() *big.Int {
	span := new(big.Int).Sub(big.NewInt(int64(e.End)), big.NewInt(int64(e.Start)))
	step := big.NewInt(int64(e.Step))
	if e.Step < 0 {
		span.Neg(span)
		step.Neg(step)
	}
	if span.Sign() <= 0 {
		return new(big.Int)
	}
	span.Add(span, step)
	span.Sub(span, big.NewInt(1))
	return span.Quo(span, step)
}

// Values expands the expression. It fails with ErrTooManyValues rather than
// allocating unbounded memory.
func (e Expr) Values() ([]int, error) {
	if e.Step == 0 {
		return nil, errors.New("range() arg 3 must not be zero")
	}
	n := e.Len()
	if n.Cmp(big.NewInt(MaxValues)) > 0 {
		return nil, ErrTooManyValues
	}

	count := int(n.Int64())
	values := make([]int, 0, count)
	v := e.Start
	for i := 0; i < count; i++ {
		values = append(values, v)
		v += e.Step
	}
	return values, nil
}

func (e Expr) String() string {
	return fmt.Sprintf("range(%d, %d, %d)", e.Start, e.End, e.Step)
}
