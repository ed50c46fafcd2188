/*
Package cola implements a single-file, mmap-backed ordered-key index
built on a Cache-Oblivious Lookahead Array (COLA): a stack of sorted
runs whose sizes double at each level, merged on insertion by a
k-way merge rather than rewritten wholesale.

A cola database holds unique 64-bit keys and supports insertion,
membership query, and a diagnostic dump/verify pair. It stores no
values and has no notion of deletion, transactions, or multi-process
concurrency.

# Usage

	db, err := cola.Create("index.cola", cola.DefaultOptions())
	if err != nil {
		...
	}
	defer db.Close()

	if err := db.Insert(42); err != nil {
		...
	}
	found, err := db.Query(42)

# Concurrency

A DB is not safe for concurrent use: it holds a single file descriptor
and a single shared mapping, and every operation mutates or reads that
state without locking. Callers needing concurrent access must
serialize their own calls.

# On-disk format

See the package-level format documentation in internal/format. The
header and element layouts are stable; no format version other than 1
is accepted.

Reference: original cola (giannitedesco/cola), coladb.c / cola.c.
*/
package cola
