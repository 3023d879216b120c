// Package core implements the lexweb operations over a Repository.
//
// Every mutator reads the injected clock exactly once and hands the single
// timestamp to the repository, which commits the parent stamp and the child
// change in one transaction. The core holds no locks; uniqueness and
// referential integrity are enforced by the repository's constraints and
// reported back as model errors.
package core
