package orbital

import "fmt"

// invariant panics with a formatted message when cond is false. It stands
// in for the source's assertions on handle-API preconditions: null handle
// dereference, parity mismatches, mutating the root's position, shrinking
// a sphere of influence directly. These are programmer errors, not
// runtime-recoverable conditions (core spec §7).
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
