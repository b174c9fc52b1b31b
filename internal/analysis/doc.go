// Package analysis turns model outputs into testable statements.
//
// The package includes tools for confronting the model with data and for
// characterizing its flow:
//
//   - [Predict]: assembles every testable prediction of one parameter set
//   - [CompareH0], [CompareSpectralIndex], [CompareS8]: σ-distance to a
//     measurement with a 3σ compatibility flag
//   - [Detectability]: forecast significance against an experiment's
//     sensitivity
//   - [FalsificationCriteria]: the bounds that would rule the model out
//   - [StabilityExponent]: growth rate of a perturbation along the flow
//
// # Example
//
//	pred, err := analysis.Predict(solver)
//	cmp := analysis.CompareH0("SH0ES 2022", pred.H0Late, analysis.SH0ES2022())
//	if !cmp.Compatible {
//	    // more than 3σ away
//	}
package analysis
