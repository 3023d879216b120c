package model

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Dated is implemented by collection members carrying an added-at time.
type Dated interface {
	Added() time.Time
}

// Item holds the fields shared by Lexeme and Relation.
type Item struct {
	DateAdded time.Time `json:"date_added"`
}

// Added implements Dated.
func (i Item) Added() time.Time { return i.DateAdded }

// CompareItems orders items by the time they were added, oldest first.
func CompareItems(a, b Dated) int {
	return a.Added().Compare(b.Added())
}

// NormalizeText returns s in Unicode NFC so canonically equivalent input
// maps to one natural key.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
