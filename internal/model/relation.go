package model

import (
	"strings"
	"time"
)

// Relation is a labeled edge between two Lexemes inside a Web.
// Symmetric relations are undirected; the stored source/sink assignment is
// kept but traversal treats the edge as bidirectional.
type Relation struct {
	Item
	ID        string `json:"id"`
	WebID     string `json:"web_id"`
	Name      Lexeme `json:"name"`
	Source    Lexeme `json:"source"`
	Sink      Lexeme `json:"sink"`
	Symmetric bool   `json:"symmetric"`
}

// RelationKey is the natural key of a Relation.
type RelationKey struct {
	Name   string
	Source string
	Sink   string
}

func (k RelationKey) String() string {
	return k.Source + " ─{ " + k.Name + " }→ " + k.Sink
}

// NewRelation returns a Relation added to webID at the given time.
func NewRelation(id, webID string, name, source, sink Lexeme, symmetric bool, at time.Time) Relation {
	return Relation{
		Item:      Item{DateAdded: at},
		ID:        id,
		WebID:     webID,
		Name:      name,
		Source:    source,
		Sink:      sink,
		Symmetric: symmetric,
	}
}

// Ref returns the storage identity of the relation.
func (r Relation) Ref() string { return r.ID }

// Key returns the value projection: the label and endpoint texts.
func (r Relation) Key() RelationKey {
	return RelationKey{Name: r.Name.Text, Source: r.Source.Text, Sink: r.Sink.Text}
}

// Equal compares relations by label and endpoint text. The owning web, the
// backing lexeme instances and the symmetric flag are ignored.
func (r Relation) Equal(other Relation) bool {
	return r.Key() == other.Key()
}

// Hash is consistent with Equal.
func (r Relation) Hash() string {
	return hashWithDomain(DomainRelation, r.Name.Text, r.Source.Text, r.Sink.Text)
}

// String renders the relation as "source ─{ name }→ sink", or
// "source ←{ name }→ sink" when symmetric.
func (r Relation) String() string {
	if r.Symmetric {
		return r.Source.Text + " ←{ " + r.Name.Text + " }→ " + r.Sink.Text
	}
	return r.Source.Text + " ─{ " + r.Name.Text + " }→ " + r.Sink.Text
}

// CompareRelations orders relations by name text, then date added, then
// source text.
func CompareRelations(a, b Relation) int {
	if c := strings.Compare(a.Name.Text, b.Name.Text); c != 0 {
		return c
	}
	if c := CompareItems(a, b); c != 0 {
		return c
	}
	return strings.Compare(a.Source.Text, b.Source.Text)
}
