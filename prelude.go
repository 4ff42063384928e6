package main

import "strings"

// The prelude extends the builtin vocabulary with words written in the
// console language itself; VMs built WithPrelude run it ahead of their own
// source, in the same dictionary.
var prelude = preludeSource(
	// stack shuffling
	`: nip swap drop ;`,
	`: tuck swap over ;`,
	`: dup2 over over ;`,
	`: drop2 drop drop ;`,

	// arithmetic
	`: negate 0 swap - ;`,
	`: square dup mul ;`,
	`: inc 1 + ;`,
	`: dec 1 - ;`,

	// output
	`: cr 10 emit ;`,
	`: space 32 emit ;`,
	`: .. print ;`,
)

func preludeSource(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
