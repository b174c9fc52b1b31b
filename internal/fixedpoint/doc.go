// Package fixedpoint locates scales where the dimension flow β_D vanishes
// and assembles the full coupling state at each such point.
//
// Root finding is bracket-first: β_D is sampled for sign changes over a
// dimension window, then each bracket is refined by a safeguarded Newton
// iteration bounded by a tolerance and an iteration count.
package fixedpoint
