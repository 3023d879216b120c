package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/lexweb/internal/model"
)

// collectionTable binds a collection kind to its table.
type collectionTable struct {
	kind  model.Kind
	table string
}

var (
	lexiconTable = collectionTable{kind: model.KindLexicon, table: "lexicons"}
	webTable     = collectionTable{kind: model.KindWeb, table: "webs"}
)

// InsertLexicon persists a new lexicon.
// Returns DUPLICATE_NAME if the owner already has a lexicon with this name.
func (s *Store) InsertLexicon(ctx context.Context, l model.Lexicon) error {
	return s.insertCollection(ctx, lexiconTable, l.Collection)
}

// InsertWeb persists a new web.
// Returns DUPLICATE_NAME if the owner already has a web with this name.
func (s *Store) InsertWeb(ctx context.Context, w model.Web) error {
	return s.insertCollection(ctx, webTable, w.Collection)
}

func (s *Store) insertCollection(ctx context.Context, t collectionTable, c model.Collection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+t.table+`
		(id, owner, name, date_created, last_modified)
		VALUES (?, ?, ?, ?, ?)
	`,
		c.ID,
		string(c.Owner),
		c.Name,
		toNanos(c.DateCreated),
		toNanos(c.LastModified),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return model.NewDuplicateNameError(t.kind, c.Owner, c.Name, err)
	case isCausalityViolation(err):
		return &model.Error{Code: model.ErrCodeCausalityViolation, Kind: t.kind,
			Message: "date created is after last modified", Key: c.Name, Err: err}
	default:
		return fmt.Errorf("insert %s: %w", t.kind, err)
	}
}

// RenameLexicon changes a lexicon's name without touching last_modified.
func (s *Store) RenameLexicon(ctx context.Context, l model.Lexicon, newName string) error {
	return s.renameCollection(ctx, lexiconTable, l.Collection, newName)
}

// RenameWeb changes a web's name without touching last_modified.
func (s *Store) RenameWeb(ctx context.Context, w model.Web, newName string) error {
	return s.renameCollection(ctx, webTable, w.Collection, newName)
}

func (s *Store) renameCollection(ctx context.Context, t collectionTable, c model.Collection, newName string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE `+t.table+` SET name = ? WHERE id = ?
	`, newName, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateNameError(t.kind, c.Owner, newName, err)
		}
		return fmt.Errorf("rename %s: %w", t.kind, err)
	}
	return requireAffected(result, t.kind, c.ID)
}

// DeleteLexicon deletes a lexicon. Its lexemes, and every relation in any
// web that references one of them, are removed by cascade.
func (s *Store) DeleteLexicon(ctx context.Context, id string) error {
	return s.deleteCollection(ctx, lexiconTable, id)
}

// DeleteWeb deletes a web and, by cascade, its relations.
func (s *Store) DeleteWeb(ctx context.Context, id string) error {
	return s.deleteCollection(ctx, webTable, id)
}

func (s *Store) deleteCollection(ctx context.Context, t collectionTable, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+t.table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.kind, err)
	}
	return requireAffected(result, t.kind, id)
}

// InsertLexeme atomically inserts the lexeme and stamps the owning
// lexicon's last_modified with its date_added.
//
// Returns NOT_FOUND if the lexicon does not exist, DUPLICATE_TEXT if the
// text is already present, CAUSALITY_VIOLATION unless date_added is after
// the lexicon's current last_modified. Nothing is committed on error.
func (s *Store) InsertLexeme(ctx context.Context, lx model.Lexeme) error {
	return s.withTx(ctx, "insert lexeme", func(tx *sql.Tx) error {
		prev, err := lastModified(ctx, tx, lexiconTable, lx.LexiconID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO lexemes (id, lexicon_id, text, date_added)
			VALUES (?, ?, ?, ?)
		`, lx.ID, lx.LexiconID, lx.Text, toNanos(lx.DateAdded))
		if err != nil {
			if isUniqueViolation(err) {
				return model.NewDuplicateTextError(lx.Text, err)
			}
			return fmt.Errorf("insert lexeme: %w", err)
		}
		return stamp(ctx, tx, lexiconTable, lx.LexiconID, prev, lx.DateAdded)
	})
}

// DeleteLexeme atomically deletes the lexeme, cascading every relation
// that references it, and stamps the lexicon's last_modified. It returns
// the number of relations removed by the cascade.
//
// Returns NOT_FOUND if the lexeme is not a member of the lexicon and
// CAUSALITY_VIOLATION unless at is after the lexicon's last_modified.
func (s *Store) DeleteLexeme(ctx context.Context, lexiconID, lexemeID string, at time.Time) (int, error) {
	var cascaded int
	err := s.withTx(ctx, "delete lexeme", func(tx *sql.Tx) error {
		prev, err := lastModified(ctx, tx, lexiconTable, lexiconID)
		if err != nil {
			return err
		}
		if cascaded, err = countReferencing(ctx, tx, lexemeID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			DELETE FROM lexemes WHERE id = ? AND lexicon_id = ?
		`, lexemeID, lexiconID)
		if err != nil {
			return fmt.Errorf("delete lexeme: %w", err)
		}
		if err := requireAffected(result, model.KindLexeme, lexemeID); err != nil {
			return err
		}
		return stamp(ctx, tx, lexiconTable, lexiconID, prev, at)
	})
	if err != nil {
		return 0, err
	}
	return cascaded, nil
}

// InsertRelation atomically inserts the relation and stamps the owning
// web's last_modified with its date_added.
//
// Returns NOT_FOUND if the web or a referenced lexeme does not exist,
// DUPLICATE_RELATION if (web, name, source, sink) is already present and
// CAUSALITY_VIOLATION unless date_added is after the web's last_modified.
func (s *Store) InsertRelation(ctx context.Context, r model.Relation) error {
	return s.withTx(ctx, "insert relation", func(tx *sql.Tx) error {
		prev, err := lastModified(ctx, tx, webTable, r.WebID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO relations
			(id, web_id, name_id, source_id, sink_id, symmetric, date_added)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID,
			r.WebID,
			r.Name.ID,
			r.Source.ID,
			r.Sink.ID,
			boolToInt(r.Symmetric),
			toNanos(r.DateAdded),
		)
		switch {
		case err == nil:
			return stamp(ctx, tx, webTable, r.WebID, prev, r.DateAdded)
		case isUniqueViolation(err):
			return model.NewDuplicateRelationError(r.Key(), err)
		case isForeignKeyViolation(err):
			nf := model.NewNotFoundError(model.KindLexeme, r.Key().String())
			nf.Message = "relation references a lexeme that does not exist"
			nf.Err = err
			return nf
		default:
			return fmt.Errorf("insert relation: %w", err)
		}
	})
}

// DeleteRelation atomically deletes the relation and stamps the web's
// last_modified.
//
// Returns NOT_FOUND if the relation is not a member of the web and
// CAUSALITY_VIOLATION unless at is after the web's last_modified.
func (s *Store) DeleteRelation(ctx context.Context, webID, relationID string, at time.Time) error {
	return s.withTx(ctx, "delete relation", func(tx *sql.Tx) error {
		prev, err := lastModified(ctx, tx, webTable, webID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			DELETE FROM relations WHERE id = ? AND web_id = ?
		`, relationID, webID)
		if err != nil {
			return fmt.Errorf("delete relation: %w", err)
		}
		if err := requireAffected(result, model.KindRelation, relationID); err != nil {
			return err
		}
		return stamp(ctx, tx, webTable, webID, prev, at)
	})
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

// lastModified reads a collection's last_modified inside tx.
// Returns NOT_FOUND if the collection does not exist.
func lastModified(ctx context.Context, tx *sql.Tx, t collectionTable, id string) (time.Time, error) {
	var nanos int64
	err := tx.QueryRowContext(ctx, `SELECT last_modified FROM `+t.table+` WHERE id = ?`, id).Scan(&nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, model.NewNotFoundError(t.kind, id)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read %s last modified: %w", t.kind, err)
	}
	return fromNanos(nanos), nil
}

// stamp moves a collection's last_modified from prev to at inside tx.
// last_modified only moves forward: at must be strictly after prev.
func stamp(ctx context.Context, tx *sql.Tx, t collectionTable, id string, prev, at time.Time) error {
	if !at.After(prev) {
		return &model.Error{Code: model.ErrCodeCausalityViolation, Kind: t.kind,
			Message: fmt.Sprintf("clock reading %s is not after last modified %s",
				at.UTC().Format(time.RFC3339Nano), prev.UTC().Format(time.RFC3339Nano)),
			Key: id}
	}
	result, err := tx.ExecContext(ctx, `
		UPDATE `+t.table+` SET last_modified = ? WHERE id = ? AND last_modified = ?
	`, toNanos(at), id, toNanos(prev))
	if err != nil {
		if isCausalityViolation(err) {
			return &model.Error{Code: model.ErrCodeCausalityViolation, Kind: t.kind,
				Message: "last modified would precede date created", Key: id, Err: err}
		}
		return fmt.Errorf("stamp %s: %w", t.kind, err)
	}
	return requireAffected(result, t.kind, id)
}

// requireAffected returns NOT_FOUND when a statement touched no rows.
func requireAffected(result sql.Result, kind model.Kind, key string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.NewNotFoundError(kind, key)
	}
	return nil
}
