package bulletproof

import (
	secp256k1 "github.com/xrplf/mpt-zkp"
)

// powers returns [x^0, x^1, ..., x^(n-1)].
func powers(x *secp256k1.Scalar, n int) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, n)
	cur := secp256k1.NewScalar().One()
	for i := 0; i < n; i++ {
		out[i] = secp256k1.NewScalarFrom(cur)
		cur = secp256k1.NewScalar().Multiply(cur, x)
	}
	return out
}

// innerProduct returns <a, b> = sum_i a_i*b_i mod q.
func innerProduct(a, b []*secp256k1.Scalar) *secp256k1.Scalar {
	sum := secp256k1.NewScalar().Zero()
	for i := range a {
		term := secp256k1.NewScalar().Multiply(a[i], b[i])
		sum = secp256k1.NewScalar().Add(sum, term)
	}
	return sum
}

// vecAdd returns a + b elementwise.
func vecAdd(a, b []*secp256k1.Scalar) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, len(a))
	for i := range a {
		out[i] = secp256k1.NewScalar().Add(a[i], b[i])
	}
	return out
}

// vecSub returns a - b elementwise.
func vecSub(a, b []*secp256k1.Scalar) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, len(a))
	for i := range a {
		out[i] = secp256k1.NewScalar().Subtract(a[i], b[i])
	}
	return out
}

// vecHadamard returns a * b elementwise.
func vecHadamard(a, b []*secp256k1.Scalar) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, len(a))
	for i := range a {
		out[i] = secp256k1.NewScalar().Multiply(a[i], b[i])
	}
	return out
}

// vecScale returns a scaled by s.
func vecScale(a []*secp256k1.Scalar, s *secp256k1.Scalar) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, len(a))
	for i := range a {
		out[i] = secp256k1.NewScalar().Multiply(a[i], s)
	}
	return out
}

// vecInvert returns the elementwise inverse of a.
func vecInvert(a []*secp256k1.Scalar) []*secp256k1.Scalar {
	out := make([]*secp256k1.Scalar, len(a))
	for i := range a {
		out[i] = secp256k1.NewScalar().Inverse(a[i])
	}
	return out
}

// scalarMultOrNil returns s*p, or nil if s is zero: the "no infinity on
// the wire" policy requires every zero-scalar term to be omitted from a
// sum rather than materialized and then subtracted out.
func scalarMultOrNil(s *secp256k1.Scalar, p *secp256k1.Point) (*secp256k1.Point, error) {
	if s.IsZero() == 1 {
		return nil, nil
	}
	return secp256k1.TweakMul(p, s)
}

// combineNonNil sums the non-nil points in terms, skipping nils (which
// represent omitted zero-scalar terms). Returns secp256k1.ErrIdentity if
// every term was nil or no terms were given.
func combineNonNil(terms ...*secp256k1.Point) (*secp256k1.Point, error) {
	filtered := make([]*secp256k1.Point, 0, len(terms))
	for _, p := range terms {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil, secp256k1.ErrIdentity
	}
	return secp256k1.Combine(filtered...)
}

// weightedSum computes sum_i scalars[i]*points[i], omitting any i where
// scalars[i] is zero.
func weightedSum(scalars []*secp256k1.Scalar, points []*secp256k1.Point) (*secp256k1.Point, error) {
	terms := make([]*secp256k1.Point, 0, len(scalars))
	for i := range scalars {
		t, err := scalarMultOrNil(scalars[i], points[i])
		if err != nil {
			return nil, err
		}
		if t != nil {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil, secp256k1.ErrIdentity
	}
	return secp256k1.Combine(terms...)
}
