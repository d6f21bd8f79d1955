// Exact tail probability that one methylation level exceeds another,
// computed in log space from the observed read counts

package main

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// logBinom is the natural log of the binomial coefficient (n choose k),
// computed from log-gamma so large counts stay in range. Real-valued
// arguments are accepted, which lets a fractional pseudocount flow
// through unchanged. Out-of-range arguments yield NaN so anomalies stay
// visible rather than aborting the run
func logBinom(n, k float64) float64 {
	if k < 0 || n < k {
		return math.NaN()
	}
	return combin.LogGeneralizedBinomial(n, k)
}

// logAccum sums probabilities held in log space. The zero value is an
// empty accumulator; emptiness is tracked explicitly so a genuine log(1)
// term is never mistaken for "no terms yet"
type logAccum struct {
	sum      float64
	hasTerms bool
}

// add folds one log-space term into the running total using the pairwise
// log-sum-exp identity, which avoids underflow when many tiny
// probabilities are combined
func (a *logAccum) add(q float64) {
	if !a.hasTerms {
		a.sum = q
		a.hasTerms = true
		return
	}
	p := a.sum
	if q > p {
		p, q = q, p
	}
	a.sum = p + math.Log1p(math.Exp(q-p))
}

// probGreater returns the exact probability that the true methylation
// level underlying the second count pair (meth2, unmeth2) is strictly
// greater than the level underlying the first pair, given independent
// binomial-style observations at each. Counts are taken after
// pseudocount addition, so all four arguments should be positive.
//
// The summation runs over the admissible excess counts
// k = max(0, meth2-unmeth1) .. meth2-1 of a hypergeometric-type
// distribution; each term is assembled from log-binomial coefficients
// and the terms are combined with log-sum-exp before a single final
// exponentiation.
//
// An empty summation range leaves the accumulator at its identity,
// which exponentiates to 1. With a pseudocount of at least 1 the range
// is never empty; the case is kept reachable for zero pseudocounts on
// zero-coverage sites.
//
// probGreater is a pure function of its arguments. Complementary calls
// satisfy probGreater(m1,u1,m2,u2) == 1 - probGreater(m2,u2,m1,u1): the
// distribution carries no point mass at equality
func probGreater(meth1, unmeth1, meth2, unmeth2 float64) float64 {
	nTrialsA := meth1 + unmeth1
	nTrialsB := meth2 + unmeth2
	nMeth := meth1 + meth2

	var acc logAccum

	for k := math.Max(0, meth2-unmeth1); k < meth2; k++ {
		acc.add(logBinom(nTrialsB-1, k) +
			logBinom(nTrialsA-1, nMeth-1-k) -
			logBinom(nTrialsA+nTrialsB-2, nMeth-1))
	}

	if !acc.hasTerms {
		return 1
	}

	return math.Exp(acc.sum)
}
