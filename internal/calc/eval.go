package calc

import (
	"math"

	"fortio.org/safecast"

	"glot/diag"
)

// itName holds the value of the last interactive expression. It cannot
// be redefined with let.
const itName = "it"

// Env is an immutable association list of integer bindings. The zero
// value is the empty environment. bind shares the tail with the old
// list, so older Env values stay valid.
type Env struct {
	head *entry
}

type entry struct {
	name  string
	value int64
	next  *entry
}

func (e Env) bind(name string, value int64) Env {
	return Env{head: &entry{name: name, value: value, next: e.head}}
}

func (e Env) lookup(name string) (int64, bool) {
	for b := e.head; b != nil; b = b.next {
		if b.name == name {
			return b.value, true
		}
	}
	return 0, false
}

// entries lists the visible bindings, most recent first, shadowed ones
// removed.
func (e Env) entries() []entry {
	var out []entry
	seen := make(map[string]bool)
	for b := e.head; b != nil; b = b.next {
		if seen[b.name] {
			continue
		}
		seen[b.name] = true
		out = append(out, *b)
	}
	return out
}

type evaluator struct {
	env    Env
	trace  bool
	report *diag.Printer
}

func (ev *evaluator) eval(e Expr) (int64, error) {
	switch e := e.(type) {
	case *Number:
		return e.Value, nil
	case *Var:
		v, ok := ev.env.lookup(e.Name)
		if !ok {
			return 0, diag.RuntimeErrorf(e.Span(), "unknown variable %s", e.Name)
		}
		return v, nil
	case *Unary:
		x, err := ev.eval(e.X)
		if err != nil {
			return 0, err
		}
		return ev.traced(e, -x), nil
	case *Binary:
		l, err := ev.eval(e.L)
		if err != nil {
			return 0, err
		}
		r, err := ev.eval(e.R)
		if err != nil {
			return 0, err
		}
		v, err := ev.apply(e, l, r)
		if err != nil {
			return 0, err
		}
		return ev.traced(e, v), nil
	}
	return 0, diag.RuntimeErrorf(e.Span(), "cannot evaluate this expression")
}

// traced reports one finished reduction when tracing is on.
func (ev *evaluator) traced(e Expr, v int64) int64 {
	if ev.trace && ev.report != nil {
		ev.report.Infof("%s = %d", ExprString(e), v)
	}
	return v
}

func (ev *evaluator) apply(e *Binary, l, r int64) (int64, error) {
	switch e.Op {
	case OpAdd:
		v := l + r
		return ev.checked(e, v, (l >= 0) == (r >= 0) && (v >= 0) != (l >= 0)), nil
	case OpSub:
		v := l - r
		return ev.checked(e, v, (l >= 0) != (r >= 0) && (v >= 0) != (l >= 0)), nil
	case OpMul:
		v, over := mulWrap(l, r, false)
		return ev.checked(e, v, over), nil
	case OpDiv:
		if r == 0 {
			return 0, diag.RuntimeErrorf(e.Span(), "division by zero")
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, diag.RuntimeErrorf(e.Span(), "division by zero")
		}
		return l % r, nil
	case OpPow:
		return ev.pow(e, l, r)
	}
	return 0, diag.RuntimeErrorf(e.Span(), "bad operator %s", e.Op)
}

// checked passes the result through; a wrapped one also gets a warning.
func (ev *evaluator) checked(e *Binary, v int64, overflow bool) int64 {
	if overflow && ev.report != nil {
		ev.report.Warningf(e.Span(), "arithmetic overflow")
	}
	return v
}

// pow raises l to the r-th power by squaring. The exponent conversion
// rejects negative values.
func (ev *evaluator) pow(e *Binary, l, r int64) (int64, error) {
	exp, err := safecast.Conv[uint64](r)
	if err != nil {
		return 0, diag.RuntimeErrorf(e.Span(), "negative exponent")
	}
	v, base, over := int64(1), l, false
	for exp > 0 {
		if exp&1 == 1 {
			v, over = mulWrap(v, base, over)
		}
		exp >>= 1
		if exp > 0 {
			base, over = mulWrap(base, base, over)
		}
	}
	return ev.checked(e, v, over), nil
}

func mulWrap(l, r int64, over bool) (int64, bool) {
	v := l * r
	if l != 0 && (v/l != r || (l == -1 && r == math.MinInt64)) {
		over = true
	}
	return v, over
}
