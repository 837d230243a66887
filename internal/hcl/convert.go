package hcl

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/horizon/internal/rangeexpr"
	"github.com/specialistvlad/horizon/internal/raw"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// exprToValue converts an attribute expression. Tuple and object
// constructors are walked so that object keys keep source order; a call to
// range is kept verbatim as a range expression string. Everything else is
// evaluated without variables or functions.
func exprToValue(expr hclsyntax.Expression, src []byte) (raw.Value, error) {
	switch e := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		items := make([]raw.Value, 0, len(e.Exprs))
		for _, item := range e.Exprs {
			v, err := exprToValue(item, src)
			if err != nil {
				return raw.Null, err
			}
			items = append(items, v)
		}
		return raw.List(items...), nil

	case *hclsyntax.ObjectConsExpr:
		fields := make([]raw.Field, 0, len(e.Items))
		for _, item := range e.Items {
			key, err := objectKey(item.KeyExpr)
			if err != nil {
				return raw.Null, err
			}
			v, err := exprToValue(item.ValueExpr, src)
			if err != nil {
				return raw.Null, err
			}
			fields = append(fields, raw.KV(key, v))
		}
		return raw.Map(fields...), nil

	case *hclsyntax.FunctionCallExpr:
		if e.Name == "range" {
			return raw.String(string(e.Range().SliceBytes(src))), nil
		}
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return raw.Null, fmt.Errorf("%s: %w", expr.Range(), diags)
	}
	if val.Type() == cty.Number && !val.IsNull() && rangeexpr.FloatExpr(expr, src) {
		f, _ := val.AsBigFloat().Float64()
		return raw.Float(f), nil
	}
	return ctyToValue(val)
}

func objectKey(expr hclsyntax.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %w", expr.Range(), diags)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil || str.IsNull() || !str.IsKnown() {
		return "", fmt.Errorf("%s: object key must be a string", expr.Range())
	}
	return str.AsString(), nil
}

// ctyToValue converts an evaluated value. Whole numbers that fit an int
// become integers. Object and map keys come out sorted because cty does not
// keep their order.
func ctyToValue(v cty.Value) (raw.Value, error) {
	if v.IsNull() {
		return raw.Null, nil
	}
	if !v.IsWhollyKnown() {
		return raw.Null, fmt.Errorf("value is not known statically")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return raw.String(v.AsString()), nil
	case ty == cty.Bool:
		return raw.Bool(v.True()), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact && int64(int(i)) == i {
				return raw.Int(int(i)), nil
			}
		}
		f, _ := bf.Float64()
		return raw.Float(f), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		items := make([]raw.Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := ctyToValue(ev)
			if err != nil {
				return raw.Null, err
			}
			items = append(items, item)
		}
		return raw.List(items...), nil
	case ty.IsObjectType() || ty.IsMapType():
		fields := make([]raw.Field, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := ctyToValue(ev)
			if err != nil {
				return raw.Null, err
			}
			fields = append(fields, raw.KV(k.AsString(), item))
		}
		return raw.Map(fields...), nil
	default:
		return raw.Null, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
