package core

import (
	"context"

	"github.com/roach88/lexweb/internal/model"
)

// AddLexeme adds text to l.
//
// One timestamp is read and used both as the lexeme's date_added and as
// l's new last_modified; the repository commits both together. l is updated
// in place only on success.
//
// Returns DUPLICATE_TEXT if l already contains text.
func (s *Service) AddLexeme(ctx context.Context, l *model.Lexicon, text string) (model.Lexeme, error) {
	if err := validateText(text); err != nil {
		s.done(ctx, "add lexeme", err, "lexicon", l.Name, "text", text)
		return model.Lexeme{}, err
	}

	now := s.clock.Now()
	lx := model.NewLexeme(s.ids.Generate(), l.ID, text, now)
	if err := s.repo.InsertLexeme(ctx, lx); err != nil {
		s.done(ctx, "add lexeme", err, "lexicon", l.Name, "text", lx.Text)
		return model.Lexeme{}, err
	}

	l.Touch(now)
	s.done(ctx, "add lexeme", nil, "lexicon", l.Name, "text", lx.Text, "id", lx.ID)
	return lx, nil
}

// RemoveLexeme removes lx from l, stamping l's last_modified.
//
// Every relation in any web that uses lx as name, source or sink is removed
// with it; the count is logged as "cascaded". Returns NOT_FOUND if lx is not
// currently a member of l.
func (s *Service) RemoveLexeme(ctx context.Context, l *model.Lexicon, lx model.Lexeme) error {
	if lx.LexiconID != l.ID {
		err := model.NewNotFoundError(model.KindLexeme, lx.Text)
		s.done(ctx, "remove lexeme", err, "lexicon", l.Name, "text", lx.Text)
		return err
	}

	now := s.clock.Now()
	cascaded, err := s.repo.DeleteLexeme(ctx, l.ID, lx.ID, now)
	if err != nil {
		s.done(ctx, "remove lexeme", err, "lexicon", l.Name, "text", lx.Text)
		return err
	}

	l.Touch(now)
	s.done(ctx, "remove lexeme", nil, "lexicon", l.Name, "text", lx.Text, "id", lx.ID, "cascaded", cascaded)
	return nil
}

// Lexemes returns the lexicon's lexemes ordered by text.
func (s *Service) Lexemes(ctx context.Context, lexiconID string) ([]model.Lexeme, error) {
	list, err := s.repo.ListLexemes(ctx, lexiconID)
	s.logger.DebugContext(ctx, "list lexemes", "lexicon", lexiconID, "count", len(list), "error", err)
	return list, err
}

// LookupLexeme returns the lexeme with the given text in a lexicon.
func (s *Service) LookupLexeme(ctx context.Context, lexiconID, text string) (model.Lexeme, error) {
	return s.repo.FindLexeme(ctx, lexiconID, model.NormalizeText(text))
}

// GetLexeme returns a lexeme by storage ID.
func (s *Service) GetLexeme(ctx context.Context, id string) (model.Lexeme, error) {
	return s.repo.GetLexeme(ctx, id)
}

// ResolveLexeme finds a lexeme of owner by text. When lexiconName is set
// only that lexicon is searched; otherwise the owner's lexicons are searched
// oldest first and the first match wins.
func (s *Service) ResolveLexeme(ctx context.Context, owner model.Owner, lexiconName, text string) (model.Lexeme, error) {
	if lexiconName != "" {
		l, err := s.FindLexicon(ctx, owner, lexiconName)
		if err != nil {
			return model.Lexeme{}, err
		}
		return s.LookupLexeme(ctx, l.ID, text)
	}

	lexicons, err := s.repo.ListLexicons(ctx, owner)
	if err != nil {
		return model.Lexeme{}, err
	}
	for _, l := range lexicons {
		lx, err := s.LookupLexeme(ctx, l.ID, text)
		if err == nil {
			return lx, nil
		}
		if !model.IsNotFound(err) {
			return model.Lexeme{}, err
		}
	}
	return model.Lexeme{}, model.NewNotFoundError(model.KindLexeme, model.NormalizeText(text))
}
