package model

import (
	"strings"
	"time"
)

// Lexeme is a text term owned by a Lexicon. It is also a graph node and may
// serve as a Relation label.
type Lexeme struct {
	Item
	ID        string `json:"id"`
	LexiconID string `json:"lexicon_id"`
	Text      string `json:"text"`
}

// LexemeKey is the natural key of a Lexeme. It is comparable and can be
// used directly as a map key.
type LexemeKey struct {
	Text string
}

// NewLexeme returns a Lexeme added to lexiconID at the given time.
func NewLexeme(id, lexiconID, text string, at time.Time) Lexeme {
	return Lexeme{
		Item:      Item{DateAdded: at},
		ID:        id,
		LexiconID: lexiconID,
		Text:      NormalizeText(text),
	}
}

// Ref returns the storage identity of the lexeme.
func (l Lexeme) Ref() string { return l.ID }

// Key returns the value projection of the lexeme.
func (l Lexeme) Key() LexemeKey { return LexemeKey{Text: l.Text} }

// Equal compares lexemes by text only; the owning lexicon is ignored.
func (l Lexeme) Equal(other Lexeme) bool { return l.Text == other.Text }

// Hash is consistent with Equal.
func (l Lexeme) Hash() string { return hashWithDomain(DomainLexeme, l.Text) }

func (l Lexeme) String() string { return l.Text }

// CompareLexemes orders lexemes lexicographically by text.
func CompareLexemes(a, b Lexeme) int {
	return strings.Compare(a.Text, b.Text)
}
