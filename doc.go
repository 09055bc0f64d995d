// Package rollcall collects pytest-convention test suites from Python
// source using tree-sitter, without a Python runtime, and assembles them
// into module→class→function trees annotated with docstrings and source
// snippets.
//
// # Pipeline
//
// A collection pass has three stages:
//
//  1. Discover: walk the target path, parse each candidate file (test_*.py
//     or *_test.py) with the tree-sitter python grammar, and classify the
//     collectible definitions — Test* classes without __init__, test_*
//     functions and methods — into tagged items linked to their parents.
//
//  2. Assemble: build each test function's ancestor chain up to its module
//     and merge the overlapping chains into one deduplicated tree per
//     module, preserving discovery order.
//
//  3. Annotate: walk each tree producing [ModuleTree] records with the
//     docstring of every node and the source text of every test function,
//     both reindented to strip their common leading indent.
//
// # Usage
//
// Collect a directory of tests:
//
//	trees, err := rollcall.Collect(ctx, "path/to/tests")
//	if err != nil { ... }
//	for _, tree := range trees {
//		fmt.Println(tree.Title, tree.CountTests())
//	}
//
// A failed pass returns a [*CollectError] carrying the pytest-style exit
// code: usage error for a missing path, interrupted for unreadable or
// unparsable files, no-tests-collected for an empty target. There is never
// a partial result.
//
// # Catalog
//
// Completed runs can optionally be saved to a SQLite catalog and reloaded
// later:
//
//	s, err := rollcall.OpenCatalog("rollcall.db")
//	id, err := rollcall.SaveRun(s, "path/to/tests", trees)
//	trees, err = rollcall.LoadRun(s, id)
//
// The catalog is an output sink only; every Collect call is a fresh, full
// discovery pass.
package rollcall
