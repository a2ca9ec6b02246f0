package table

import (
	"cmp"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// missing is rendered in place of malformed values.
const missing = "--"

// scalar is a literal value resolved for comparison. A zero scalar (ok ==
// false) is malformed: it sorts lowest and sums as zero.
type scalar struct {
	ok   bool
	kind Kind
	num  float64
	str  string
	at   time.Time
	b    bool
	raw  any
}

// resolve calls the literal accessor, recovering from panics.
func resolve[T any](v Value[T], row T) (s scalar) {
	defer func() {
		if recover() != nil {
			s = scalar{}
		}
	}()
	if v.Literal == nil {
		return scalar{}
	}
	return classify(v.Literal(row))
}

var timeType = reflect.TypeOf(time.Time{})

func classify(raw any) scalar {
	if raw == nil {
		return scalar{}
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return scalar{}
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		t := rv.Interface().(time.Time)
		return scalar{ok: true, kind: KindTime, at: t, raw: t}
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{ok: true, kind: KindNumber, num: float64(rv.Int()), raw: rv.Interface()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar{ok: true, kind: KindNumber, num: float64(rv.Uint()), raw: rv.Interface()}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return scalar{}
		}
		return scalar{ok: true, kind: KindNumber, num: f, raw: rv.Interface()}
	case reflect.String:
		return scalar{ok: true, kind: KindString, str: rv.String(), raw: rv.Interface()}
	case reflect.Bool:
		return scalar{ok: true, kind: KindBool, b: rv.Bool(), raw: rv.Interface()}
	default:
		return scalar{}
	}
}

// compare orders scalars: malformed first, then by kind, then naturally.
func compare(a, b scalar) int {
	switch {
	case !a.ok && !b.ok:
		return 0
	case !a.ok:
		return -1
	case !b.ok:
		return 1
	case a.kind != b.kind:
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case KindNumber:
		return cmp.Compare(a.num, b.num)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindTime:
		return a.at.Compare(b.at)
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	}
	return 0
}

// summand is the scalar's contribution to a column total.
func (s scalar) summand() float64 {
	if !s.ok || s.kind != KindNumber {
		return 0
	}
	return s.num
}

func (s scalar) format(percentage bool) string {
	if !s.ok {
		return missing
	}
	switch s.kind {
	case KindNumber:
		if percentage {
			return FormatPercent(s.num)
		}
		return FormatNumber(s.num)
	case KindString:
		return s.str
	case KindTime:
		return s.at.Format(time.DateOnly)
	case KindBool:
		return strconv.FormatBool(s.b)
	}
	return missing
}

// FormatNumber renders integral values without decimals and others with at
// most two.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// FormatPercent renders a fraction of 1 as a percentage with at most one
// decimal: 0.625 -> "62.5%".
func FormatPercent(f float64) string {
	p := math.Round(f*1000) / 10
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
