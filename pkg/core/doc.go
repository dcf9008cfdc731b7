// Package core defines the shared language of the solver.
//
// This package contains:
//   - The result type returned by every solving strategy (SolveResult)
//   - The failure taxonomy (ErrorKind, Error)
//
// pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
