package model

import (
	"cmp"
	"strings"
	"time"
)

// MaxNameLength bounds a collection name, counted in runes.
const MaxNameLength = 80

// Owner is an opaque identity used to scope collection names.
type Owner string

// Timestamped is implemented by anything carrying a creation and
// last-modification time that must obey the causality invariant.
type Timestamped interface {
	Created() time.Time
	Modified() time.Time
}

// CheckCausality returns a CausalityViolation error when the creation time
// is after the last-modification time.
func CheckCausality(t Timestamped) error {
	if t.Created().After(t.Modified()) {
		return NewCausalityError(t.Created(), t.Modified())
	}
	return nil
}

// Collection holds the fields shared by Lexicon and Web.
type Collection struct {
	ID           string    `json:"id"`
	Owner        Owner     `json:"owner"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	LastModified time.Time `json:"last_modified"`
}

// Created implements Timestamped.
func (c Collection) Created() time.Time { return c.DateCreated }

// Modified implements Timestamped.
func (c Collection) Modified() time.Time { return c.LastModified }

// Equal reports whether both collections have the same owner and name.
// Storage identity and timestamps are ignored.
func (c Collection) Equal(other Collection) bool {
	return c.Owner == other.Owner && c.Name == other.Name
}

func (c Collection) String() string {
	return c.Name
}

// touch advances LastModified. Callers are expected to pass the single
// timestamp read for the operation.
func (c *Collection) touch(at time.Time) {
	c.LastModified = at
}

// NormalizeName returns the stored form of a collection name: surrounding
// whitespace removed, then NFC. MaxNameLength applies to this form.
func NormalizeName(name string) string {
	return NormalizeText(strings.TrimSpace(name))
}

// Lexicon is a named, owned set of unique Lexemes.
type Lexicon struct {
	Collection
}

// NewLexicon returns a Lexicon stamped with created == modified == at.
func NewLexicon(id string, owner Owner, name string, at time.Time) Lexicon {
	return Lexicon{Collection: Collection{
		ID:           id,
		Owner:        owner,
		Name:         NormalizeName(name),
		DateCreated:  at,
		LastModified: at,
	}}
}

// Touch records a modification of the lexicon's contents at the given time.
func (l *Lexicon) Touch(at time.Time) { l.touch(at) }

// Web is a named, owned container of Relations.
type Web struct {
	Collection
}

// NewWeb returns a Web stamped with created == modified == at.
func NewWeb(id string, owner Owner, name string, at time.Time) Web {
	return Web{Collection: Collection{
		ID:           id,
		Owner:        owner,
		Name:         NormalizeName(name),
		DateCreated:  at,
		LastModified: at,
	}}
}

// Touch records a modification of the web's contents at the given time.
func (w *Web) Touch(at time.Time) { w.touch(at) }

// CompareCollections orders collections by creation time, oldest first.
// Ties fall back to the ID so the order is total.
func CompareCollections(a, b Collection) int {
	if c := a.DateCreated.Compare(b.DateCreated); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
