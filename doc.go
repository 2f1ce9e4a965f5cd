// Package cmdtree maps pre-tokenized command lines onto a tree of named
// command groups and invocable commands.
//
// Callers build the tree once during setup (AddGroup, AddCommand, AddPath),
// then hand token sequences to Dispatch, which walks the tree by name,
// checks the leftover token count against the command's declared arity and
// runs the bound handler with the remaining tokens. Render produces an
// indented listing of everything registered.
//
// The package owns no I/O and no flag syntax: tokenizing the input line,
// printing output and coercing argument strings into typed values are all
// the caller's concern.
//
// The tree is not internally synchronized. Register everything during a
// single setup phase; after that, Dispatch and Render only read the tree
// and may be called from multiple goroutines.
package cmdtree
