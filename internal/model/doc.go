// Package model defines the Lexicon/Web data model for lexweb.
//
// This package contains types and pure functions only. It performs no I/O;
// persistence lives in internal/store and the mutation operations live in
// internal/core.
//
// Two projections are kept distinct on every entity:
//   - Identity: the storage ID (Ref), used for membership and foreign keys
//   - Value: the natural key (Key, Equal, Hash), used for equality
//
// Lexeme value equality is by text alone and Relation value equality is by
// (name, source, sink) text alone, independent of the owning collection.
package model
