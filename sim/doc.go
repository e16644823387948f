// Package sim provides the core epidemic simulation engine for epidemic-sim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - city.go: City/District generation and the vulnerability ordering
//   - simulator.go: The day-by-day compartmental state machine (S→E→I→H/R/D)
//   - optimizer.go: Candidate policy evaluation and ranking
//
// # Architecture
//
// The engine is a pure computation: a City is generated once from a seeded
// RNG, then RunOutbreak advances per-district disease compartments day by
// day under fixed virus and intervention parameters. PolicyCatalog converts
// categorical policy decisions into numeric intervention parameters,
// ImpactScorer turns a finished run into health/economic/social/equity
// scores, and PolicyOptimizer evaluates candidate decisions in parallel and
// ranks them by overall score.
//
// Boundary types (request.go, report.go) mirror the JSON shapes consumed
// and produced by the surrounding service layer; the engine itself performs
// no I/O and holds no global state.
//
// # Key Interfaces
//
//   - CandidateStrategy: produce the list of policy decisions to evaluate
//
// Randomness is confined to city generation and default virus parameters
// and always flows through an explicitly passed RNG (see rng.go), so two
// runs with identical inputs and seeds are identical.
package sim
