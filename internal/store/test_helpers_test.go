package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/lexweb/internal/model"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// at returns t0 shifted by n seconds.
func at(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Second)
}

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustLexicon inserts a lexicon created at t0.
func mustLexicon(t *testing.T, s *Store, id string, owner model.Owner, name string) model.Lexicon {
	t.Helper()
	l := model.NewLexicon(id, owner, name, t0)
	if err := s.InsertLexicon(context.Background(), l); err != nil {
		t.Fatalf("InsertLexicon(%s) failed: %v", name, err)
	}
	return l
}

// mustWeb inserts a web created at t0.
func mustWeb(t *testing.T, s *Store, id string, owner model.Owner, name string) model.Web {
	t.Helper()
	w := model.NewWeb(id, owner, name, t0)
	if err := s.InsertWeb(context.Background(), w); err != nil {
		t.Fatalf("InsertWeb(%s) failed: %v", name, err)
	}
	return w
}

// mustLexeme inserts a lexeme whose ID equals lexiconID + ":" + text.
func mustLexeme(t *testing.T, s *Store, lexiconID, text string, when time.Time) model.Lexeme {
	t.Helper()
	lx := model.NewLexeme(lexiconID+":"+text, lexiconID, text, when)
	if err := s.InsertLexeme(context.Background(), lx); err != nil {
		t.Fatalf("InsertLexeme(%s) failed: %v", text, err)
	}
	return lx
}

// mustRelation inserts a directed relation.
func mustRelation(t *testing.T, s *Store, id, webID string, name, source, sink model.Lexeme, when time.Time) model.Relation {
	t.Helper()
	r := model.NewRelation(id, webID, name, source, sink, false, when)
	if err := s.InsertRelation(context.Background(), r); err != nil {
		t.Fatalf("InsertRelation(%s) failed: %v", r, err)
	}
	return r
}

// rawRelation writes a relation row without stamping its web.
func rawRelation(t *testing.T, s *Store, id, webID string, name, source, sink model.Lexeme, when time.Time) {
	t.Helper()
	_, err := s.db.Exec(`
		INSERT INTO relations (id, web_id, name_id, source_id, sink_id, symmetric, date_added)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, id, webID, name.ID, source.ID, sink.ID, toNanos(when))
	if err != nil {
		t.Fatalf("insert relation %s: %v", id, err)
	}
}
