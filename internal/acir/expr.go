package acir

import (
	"sort"

	"circuitforge/internal/field"
)

// MulTerm is one quadratic term coeff*lhs*rhs of an affine expression.
type MulTerm struct {
	Coeff field.Element
	LHS   Witness
	RHS   Witness
}

// LinearTerm is one linear term coeff*w of an affine expression.
type LinearTerm struct {
	Coeff field.Element
	W     Witness
}

// Expr is a sum of at most a handful of quadratic terms plus a linear
// combination of witnesses plus a constant: the shape of a single
// polynomial-identity opcode. It is always kept normalized: like terms
// merged, zero-coefficient terms dropped, terms ordered by witness index so
// two structurally equal expressions compare equal field by field.
type Expr struct {
	MulTerms    []MulTerm
	LinearTerms []LinearTerm
	Constant    field.Element
}

func ExprFromConst(c field.Element) Expr {
	return Expr{Constant: c}
}

func ExprFromWitness(w Witness) Expr {
	return Expr{LinearTerms: []LinearTerm{{Coeff: field.One(), W: w}}}
}

// IsConstant reports whether e has no witnesses at all.
func (e Expr) IsConstant() bool {
	return len(e.MulTerms) == 0 && len(e.LinearTerms) == 0
}

// IsZero reports whether e is the constant expression 0.
func (e Expr) IsZero() bool {
	return e.IsConstant() && e.Constant.IsZero()
}

// IsLinear reports whether e has no quadratic terms.
func (e Expr) IsLinear() bool {
	return len(e.MulTerms) == 0
}

// IsDegreeOneUnivariate reports whether e has the shape a*w + b for a
// single witness w, the shape var_to_witness can materialize without
// allocating a fresh witness or emitting a binding opcode.
func (e Expr) IsDegreeOneUnivariate() (coeff field.Element, w Witness, ok bool) {
	if len(e.MulTerms) == 0 && len(e.LinearTerms) == 1 {
		return e.LinearTerms[0].Coeff, e.LinearTerms[0].W, true
	}
	return field.Zero(), 0, false
}

// ToWitness returns the witness e denotes when e is exactly 1*w+0, i.e.
// already a bare witness reference.
func (e Expr) ToWitness() (Witness, bool) {
	coeff, w, ok := e.IsDegreeOneUnivariate()
	if !ok || !coeff.IsOne() || !e.Constant.IsZero() {
		return 0, false
	}
	return w, true
}

// Width reports the number of distinct multiplicative terms in e, the
// quantity a width budget bounds.
func (e Expr) Width() int {
	return len(e.MulTerms)
}

// Normalize merges like terms, drops zero-coefficient terms, and orders
// the result deterministically. Exported so callers that assemble an Expr
// by hand (rather than through Add/Sub/Scale) can canonicalize it.
func (e Expr) Normalize() Expr {
	return e.normalize()
}

func (e Expr) Neg() Expr {
	return e.Scale(field.FromInt64(-1))
}

func (e Expr) Scale(c field.Element) Expr {
	out := Expr{Constant: e.Constant.Mul(c)}
	if !c.IsZero() {
		out.MulTerms = make([]MulTerm, len(e.MulTerms))
		for i, t := range e.MulTerms {
			out.MulTerms[i] = MulTerm{Coeff: t.Coeff.Mul(c), LHS: t.LHS, RHS: t.RHS}
		}
		out.LinearTerms = make([]LinearTerm, len(e.LinearTerms))
		for i, t := range e.LinearTerms {
			out.LinearTerms[i] = LinearTerm{Coeff: t.Coeff.Mul(c), W: t.W}
		}
	}
	return out.normalize()
}

func (e Expr) Add(o Expr) Expr {
	out := Expr{Constant: e.Constant.Add(o.Constant)}
	out.MulTerms = append(append([]MulTerm{}, e.MulTerms...), o.MulTerms...)
	out.LinearTerms = append(append([]LinearTerm{}, e.LinearTerms...), o.LinearTerms...)
	return out.normalize()
}

func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// AddScaled returns e + c*o, a convenience used throughout the value table
// to fold a scaled witness into an accumulating affine expression.
func (e Expr) AddScaled(c field.Element, o Expr) Expr {
	return e.Add(o.Scale(c))
}

// normalize merges like terms, drops zero-coefficient terms, and sorts the
// remaining terms by witness index so structurally equal expressions
// compare byte-for-byte equal.
func (e Expr) normalize() Expr {
	mulByKey := map[[2]Witness]field.Element{}
	mulOrder := [][2]Witness{}
	for _, t := range e.MulTerms {
		key := [2]Witness{t.LHS, t.RHS}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if cur, ok := mulByKey[key]; ok {
			mulByKey[key] = cur.Add(t.Coeff)
		} else {
			mulByKey[key] = t.Coeff
			mulOrder = append(mulOrder, key)
		}
	}
	sort.Slice(mulOrder, func(i, j int) bool {
		if mulOrder[i][0] != mulOrder[j][0] {
			return mulOrder[i][0] < mulOrder[j][0]
		}
		return mulOrder[i][1] < mulOrder[j][1]
	})
	var mulTerms []MulTerm
	for _, key := range mulOrder {
		c := mulByKey[key]
		if !c.IsZero() {
			mulTerms = append(mulTerms, MulTerm{Coeff: c, LHS: key[0], RHS: key[1]})
		}
	}

	linByKey := map[Witness]field.Element{}
	var linOrder []Witness
	for _, t := range e.LinearTerms {
		if cur, ok := linByKey[t.W]; ok {
			linByKey[t.W] = cur.Add(t.Coeff)
		} else {
			linByKey[t.W] = t.Coeff
			linOrder = append(linOrder, t.W)
		}
	}
	sort.Slice(linOrder, func(i, j int) bool { return linOrder[i] < linOrder[j] })
	var linTerms []LinearTerm
	for _, w := range linOrder {
		c := linByKey[w]
		if !c.IsZero() {
			linTerms = append(linTerms, LinearTerm{Coeff: c, W: w})
		}
	}

	return Expr{MulTerms: mulTerms, LinearTerms: linTerms, Constant: e.Constant}
}
