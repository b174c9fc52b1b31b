// Package viz renders cosmological observables in the terminal.
//
// Curves are sampled concurrently with [Sample] and drawn as ASCII charts
// with asciigraph. Styles and themes shared with the explorer TUI live
// here as well.
//
//   - [HubbleCurve]: H(z) in km/s/Mpc
//   - [DistanceCurve]: distance modulus mu(z)
//   - [DimensionCurve]: fractal dimension D along the flow
//   - [SpectrumCurve]: CMB temperature spectrum l(l+1)C_l/2pi
package viz
