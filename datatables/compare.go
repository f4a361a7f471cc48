package datatables

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/inf.v0"
)

// Ranks used to order values of different kinds, lowest first.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankTime
	rankString
)

// compare orders two column values. Absent and nil values sort first, numbers
// compare numerically whatever their Go type and other values by their string form.
func compare(a, b interface{}) int {
	a, b = indirect(a), indirect(b)
	rankA, rankB := rank(a), rank(b)
	if rankA != rankB {
		if rankA < rankB {
			return -1
		}
		return 1
	}

	switch rankA {
	case rankNil:
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankNumber:
		x, okX := toRat(a)
		y, okY := toRat(b)
		if !okX || !okY {
			// NaN
			return boolCompare(okX, okY)
		}
		return x.Cmp(y)
	case rankTime:
		x, y := a.(time.Time), b.(time.Time)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	}

	if x, ok := a.(foldedString); ok {
		if y, ok := b.(foldedString); ok {
			if c := strings.Compare(x.folded, y.folded); c != 0 {
				return c
			}
			return strings.Compare(x.raw, y.raw)
		}
	}

	x, _ := toString(a)
	y, _ := toString(b)
	return strings.Compare(x, y)
}

// foldedString is a sort key for case insensitive ordering.
type foldedString struct {
	folded string
	raw    string
}

func (f foldedString) String() string {
	return f.raw
}

func boolCompare(x, y bool) int {
	if x == y {
		return 0
	}
	if !x {
		return -1
	}
	return 1
}

func indirect(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	switch value.(type) {
	case *inf.Dec, *big.Int, *Row:
		return value
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func rank(value interface{}) int {
	switch v := value.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return rankNumber
	case *inf.Dec:
		if v == nil {
			return rankNil
		}
		return rankNumber
	case *big.Int:
		if v == nil {
			return rankNil
		}
		return rankNumber
	case time.Time:
		return rankTime
	}
	return rankString
}

func toRat(value interface{}) (*big.Rat, bool) {
	r := new(big.Rat)
	switch v := value.(type) {
	case int:
		return r.SetInt64(int64(v)), true
	case int8:
		return r.SetInt64(int64(v)), true
	case int16:
		return r.SetInt64(int64(v)), true
	case int32:
		return r.SetInt64(int64(v)), true
	case int64:
		return r.SetInt64(v), true
	case uint:
		return r.SetUint64(uint64(v)), true
	case uint8:
		return r.SetUint64(uint64(v)), true
	case uint16:
		return r.SetUint64(uint64(v)), true
	case uint32:
		return r.SetUint64(uint64(v)), true
	case uint64:
		return r.SetUint64(v), true
	case float32:
		return setFloat(r, float64(v))
	case float64:
		return setFloat(r, v)
	case json.Number:
		return r.SetString(v.String())
	case *inf.Dec:
		// unscaled * 10^-scale
		r.SetInt(v.UnscaledBig())
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(int(v.Scale())))), nil)
		if v.Scale() >= 0 {
			return r.Quo(r, new(big.Rat).SetInt(scale)), true
		}
		return r.Mul(r, new(big.Rat).SetInt(scale)), true
	case *big.Int:
		return r.SetInt(v), true
	}
	return nil, false
}

func setFloat(r *big.Rat, f float64) (*big.Rat, bool) {
	if res := r.SetFloat64(f); res != nil {
		return res, true
	}
	return nil, false
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// toString renders a scalar value for substring matching. Nested collections
// and nil values have no string form.
func toString(value interface{}) (string, bool) {
	value = indirect(value)
	if rank(value) == rankNil {
		return "", false
	}
	switch v := value.(type) {
	case *Row:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case time.Time:
		return v.Format(time.RFC3339), true
	case fmt.Stringer:
		return v.String(), true
	case int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return "", false
	}
	return fmt.Sprint(value), true
}
