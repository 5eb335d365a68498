// Package qroute finds cheap simple paths through cost graphs by encoding
// routing as a QUBO (quadratic unconstrained binary optimization) problem.
//
// 🚀 What is qroute?
//
//	A routing toolkit that turns "cheapest simple path from S to T" into
//	minimizing xᵀQx + offset over binary vectors, then solves and decodes it:
//		• Encoding: one variable per arc direction, degree-balance penalties
//		• Energy: full evaluation and O(n) single-flip deltas
//		• Local search: steepest and randomized 1-opt descent
//		• Simulated annealing: parallel restarts, deterministic per seed
//		• Exhaustive search: Gray-code enumeration of small encodings
//		• Decoding: walk, validate and clean up selected arcs
//
// Packages:
//
//	core/        undirected cost graph and its JSON document format
//	matrix/      dense float64 matrices for the QUBO coefficients
//	qubo/        variable index, constraint builder, encoder and energy
//	localsearch/ greedy descent and multi-start descent
//	anneal/      simulated annealing
//	exhaustive/  exact minimization for up to 62 variables
//	route/       decoder, validator and cleanup
//	dijkstra/    classical cheapest route, the reference for every run
//	gridgraph/   cost grids turned into routing graphs
//	pipeline/    encode, solve, refine and pick in one run
//	config/      koanf-backed configuration for the command
//	logging/     zap logger construction
//	metrics/     Prometheus collectors for runs and candidates
//	cmd/qroute/  the command-line front end
//
// Quick example, the built-in demo network:
//
//	A─B 2   A─C 3   B─D 3   C─D 5   D─F 2   C─F 9   C─E 1
//
//	the cheapest route A → B → D → F costs 7:
//
//	go run ./cmd/qroute -method exhaustive -penalty 30
package qroute
