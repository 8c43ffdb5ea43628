// SPDX-License-Identifier: MIT

// Package problemfile reads problem descriptions and solver configuration
// from files.
//
// A problem file is YAML (or JSON) naming its dimensions, so constraints
// read the way they are written on paper:
//
//	kind: pip
//	dimensions: [i, j, n, m]
//	parameters: [n, m]
//	constraints:
//	  - {coefficients: {i: 1, n: -1}, relation: "<="}
//	  - {coefficients: {j: 1, m: -1}, constant: 0, relation: "<="}
//
// Scalars follow YAML 1.2, so names such as y, n or off are plain names.
// Coefficients are arbitrary-precision integers, quoted or not. A Config carries the solver knobs and is read
// through viper, so it may come from a file, EXACTLP_* environment
// variables or command-line flags.
package problemfile
