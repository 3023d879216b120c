package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lexweb/internal/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const collectionColumns = `id, owner, name, date_created, last_modified`

// GetLexicon retrieves a lexicon by ID.
// Returns NOT_FOUND if absent.
func (s *Store) GetLexicon(ctx context.Context, id string) (model.Lexicon, error) {
	c, err := s.getCollection(ctx, lexiconTable, id, `WHERE id = ?`, id)
	return model.Lexicon{Collection: c}, err
}

// FindLexicon retrieves a lexicon by its natural key (owner, name).
// Returns NOT_FOUND if absent.
func (s *Store) FindLexicon(ctx context.Context, owner model.Owner, name string) (model.Lexicon, error) {
	c, err := s.getCollection(ctx, lexiconTable, name, `WHERE owner = ? AND name = ?`, string(owner), name)
	return model.Lexicon{Collection: c}, err
}

// ListLexicons returns the owner's lexicons, oldest first.
// Returns an empty slice (not nil) when the owner has none.
func (s *Store) ListLexicons(ctx context.Context, owner model.Owner) ([]model.Lexicon, error) {
	cols, err := s.listCollections(ctx, lexiconTable, owner)
	if err != nil {
		return nil, err
	}
	lexicons := make([]model.Lexicon, len(cols))
	for i, c := range cols {
		lexicons[i] = model.Lexicon{Collection: c}
	}
	return lexicons, nil
}

// GetWeb retrieves a web by ID.
// Returns NOT_FOUND if absent.
func (s *Store) GetWeb(ctx context.Context, id string) (model.Web, error) {
	c, err := s.getCollection(ctx, webTable, id, `WHERE id = ?`, id)
	return model.Web{Collection: c}, err
}

// FindWeb retrieves a web by its natural key (owner, name).
// Returns NOT_FOUND if absent.
func (s *Store) FindWeb(ctx context.Context, owner model.Owner, name string) (model.Web, error) {
	c, err := s.getCollection(ctx, webTable, name, `WHERE owner = ? AND name = ?`, string(owner), name)
	return model.Web{Collection: c}, err
}

// ListWebs returns the owner's webs, oldest first.
func (s *Store) ListWebs(ctx context.Context, owner model.Owner) ([]model.Web, error) {
	cols, err := s.listCollections(ctx, webTable, owner)
	if err != nil {
		return nil, err
	}
	webs := make([]model.Web, len(cols))
	for i, c := range cols {
		webs[i] = model.Web{Collection: c}
	}
	return webs, nil
}

func (s *Store) getCollection(ctx context.Context, t collectionTable, key, where string, args ...any) (model.Collection, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+collectionColumns+` FROM `+t.table+` `+where, args...)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Collection{}, model.NewNotFoundError(t.kind, key)
	}
	if err != nil {
		return model.Collection{}, fmt.Errorf("get %s: %w", t.kind, err)
	}
	return c, nil
}

func (s *Store) listCollections(ctx context.Context, t collectionTable, owner model.Owner) ([]model.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+collectionColumns+` FROM `+t.table+`
		WHERE owner = ?
		ORDER BY date_created ASC, id COLLATE BINARY ASC
	`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.table, err)
	}
	defer rows.Close()

	cols := []model.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.kind, err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.table, err)
	}
	return cols, nil
}

func scanCollection(row rowScanner) (model.Collection, error) {
	var c model.Collection
	var owner string
	var created, modified int64
	if err := row.Scan(&c.ID, &owner, &c.Name, &created, &modified); err != nil {
		return model.Collection{}, err
	}
	c.Owner = model.Owner(owner)
	c.DateCreated = fromNanos(created)
	c.LastModified = fromNanos(modified)
	return c, nil
}

const lexemeColumns = `id, lexicon_id, text, date_added`

// GetLexeme retrieves a lexeme by ID.
// Returns NOT_FOUND if absent.
func (s *Store) GetLexeme(ctx context.Context, id string) (model.Lexeme, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lexemeColumns+` FROM lexemes WHERE id = ?`, id)
	return lexemeResult(row, id)
}

// FindLexeme retrieves a lexeme by its natural key within a lexicon.
// Returns NOT_FOUND if absent.
func (s *Store) FindLexeme(ctx context.Context, lexiconID, text string) (model.Lexeme, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+lexemeColumns+` FROM lexemes
		WHERE lexicon_id = ? AND text = ?
	`, lexiconID, text)
	return lexemeResult(row, text)
}

// ListLexemes returns a lexicon's lexemes ordered by text (byte order, which
// matches Go string comparison).
func (s *Store) ListLexemes(ctx context.Context, lexiconID string) ([]model.Lexeme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+lexemeColumns+` FROM lexemes
		WHERE lexicon_id = ?
		ORDER BY text COLLATE BINARY ASC
	`, lexiconID)
	if err != nil {
		return nil, fmt.Errorf("query lexemes: %w", err)
	}
	defer rows.Close()

	lexemes := []model.Lexeme{}
	for rows.Next() {
		lx, err := scanLexeme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lexeme: %w", err)
		}
		lexemes = append(lexemes, lx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lexemes: %w", err)
	}
	return lexemes, nil
}

func lexemeResult(row *sql.Row, key string) (model.Lexeme, error) {
	lx, err := scanLexeme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lexeme{}, model.NewNotFoundError(model.KindLexeme, key)
	}
	if err != nil {
		return model.Lexeme{}, fmt.Errorf("get lexeme: %w", err)
	}
	return lx, nil
}

func scanLexeme(row rowScanner) (model.Lexeme, error) {
	var lx model.Lexeme
	var added int64
	if err := row.Scan(&lx.ID, &lx.LexiconID, &lx.Text, &added); err != nil {
		return model.Lexeme{}, err
	}
	lx.DateAdded = fromNanos(added)
	return lx, nil
}

// relationSelect joins each relation to its three lexemes.
const relationSelect = `
	SELECT r.id, r.web_id, r.symmetric, r.date_added,
		n.id, n.lexicon_id, n.text, n.date_added,
		s.id, s.lexicon_id, s.text, s.date_added,
		k.id, k.lexicon_id, k.text, k.date_added
	FROM relations r
	JOIN lexemes n ON n.id = r.name_id
	JOIN lexemes s ON s.id = r.source_id
	JOIN lexemes k ON k.id = r.sink_id
`

// GetRelation retrieves a relation by ID.
// Returns NOT_FOUND if absent.
func (s *Store) GetRelation(ctx context.Context, id string) (model.Relation, error) {
	row := s.db.QueryRowContext(ctx, relationSelect+` WHERE r.id = ?`, id)
	return relationResult(row, id)
}

// FindRelation retrieves a relation by its stored natural key
// (web, name, source, sink).
// Returns NOT_FOUND if absent.
func (s *Store) FindRelation(ctx context.Context, webID, nameID, sourceID, sinkID string) (model.Relation, error) {
	row := s.db.QueryRowContext(ctx, relationSelect+`
		WHERE r.web_id = ? AND r.name_id = ? AND r.source_id = ? AND r.sink_id = ?
	`, webID, nameID, sourceID, sinkID)
	return relationResult(row, nameID+"/"+sourceID+"/"+sinkID)
}

// ListRelations returns a web's relations ordered by name text, then date
// added, then source text.
func (s *Store) ListRelations(ctx context.Context, webID string) ([]model.Relation, error) {
	rows, err := s.db.QueryContext(ctx, relationSelect+`
		WHERE r.web_id = ?
		ORDER BY n.text COLLATE BINARY ASC, r.date_added ASC, s.text COLLATE BINARY ASC, r.id COLLATE BINARY ASC
	`, webID)
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	defer rows.Close()

	relations := []model.Relation{}
	for rows.Next() {
		r, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		relations = append(relations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}
	return relations, nil
}

// countReferencing returns how many relations, in any web, use the lexeme
// as name, source or sink.
func countReferencing(ctx context.Context, tx *sql.Tx, lexemeID string) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM relations
		WHERE name_id = ? OR source_id = ? OR sink_id = ?
	`, lexemeID, lexemeID, lexemeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count relations: %w", err)
	}
	return n, nil
}

func relationResult(row *sql.Row, key string) (model.Relation, error) {
	r, err := scanRelation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Relation{}, model.NewNotFoundError(model.KindRelation, key)
	}
	if err != nil {
		return model.Relation{}, fmt.Errorf("get relation: %w", err)
	}
	return r, nil
}

func scanRelation(row rowScanner) (model.Relation, error) {
	var r model.Relation
	var symmetric int
	var added, nameAdded, sourceAdded, sinkAdded int64
	if err := row.Scan(
		&r.ID, &r.WebID, &symmetric, &added,
		&r.Name.ID, &r.Name.LexiconID, &r.Name.Text, &nameAdded,
		&r.Source.ID, &r.Source.LexiconID, &r.Source.Text, &sourceAdded,
		&r.Sink.ID, &r.Sink.LexiconID, &r.Sink.Text, &sinkAdded,
	); err != nil {
		return model.Relation{}, err
	}
	r.Symmetric = symmetric != 0
	r.DateAdded = fromNanos(added)
	r.Name.DateAdded = fromNanos(nameAdded)
	r.Source.DateAdded = fromNanos(sourceAdded)
	r.Sink.DateAdded = fromNanos(sinkAdded)
	return r, nil
}
