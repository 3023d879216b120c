package core

import (
	"context"

	"github.com/roach88/lexweb/internal/model"
)

// CreateLexicon creates and persists a new lexicon with
// date_created == last_modified == now.
//
// Returns DUPLICATE_NAME if the owner already has a lexicon with this name
// and INVALID_ARGUMENT for an empty owner or an empty or over-long name.
func (s *Service) CreateLexicon(ctx context.Context, owner model.Owner, name string) (model.Lexicon, error) {
	name = model.NormalizeName(name)
	if err := validateCollection(model.KindLexicon, owner, name); err != nil {
		s.done(ctx, "create lexicon", err, "owner", owner, "name", name)
		return model.Lexicon{}, err
	}

	l := model.NewLexicon(s.ids.Generate(), owner, name, s.clock.Now())
	if err := s.repo.InsertLexicon(ctx, l); err != nil {
		s.done(ctx, "create lexicon", err, "owner", owner, "name", l.Name)
		return model.Lexicon{}, err
	}

	s.done(ctx, "create lexicon", nil, "owner", owner, "name", l.Name, "id", l.ID)
	return l, nil
}

// CreateWeb creates and persists a new web with
// date_created == last_modified == now.
//
// Returns DUPLICATE_NAME if the owner already has a web with this name.
func (s *Service) CreateWeb(ctx context.Context, owner model.Owner, name string) (model.Web, error) {
	name = model.NormalizeName(name)
	if err := validateCollection(model.KindWeb, owner, name); err != nil {
		s.done(ctx, "create web", err, "owner", owner, "name", name)
		return model.Web{}, err
	}

	w := model.NewWeb(s.ids.Generate(), owner, name, s.clock.Now())
	if err := s.repo.InsertWeb(ctx, w); err != nil {
		s.done(ctx, "create web", err, "owner", owner, "name", w.Name)
		return model.Web{}, err
	}

	s.done(ctx, "create web", nil, "owner", owner, "name", w.Name, "id", w.ID)
	return w, nil
}

// RenameLexicon renames l and updates it in place.
//
// Renaming is not a content modification: last_modified is left unchanged.
// Returns DUPLICATE_NAME if another lexicon of the owner already has the name.
func (s *Service) RenameLexicon(ctx context.Context, l *model.Lexicon, newName string) error {
	newName = model.NormalizeName(newName)
	if err := validateCollection(model.KindLexicon, l.Owner, newName); err != nil {
		s.done(ctx, "rename lexicon", err, "id", l.ID, "name", newName)
		return err
	}
	if newName == l.Name {
		return nil
	}

	err := s.repo.RenameLexicon(ctx, *l, newName)
	s.done(ctx, "rename lexicon", err, "id", l.ID, "from", l.Name, "to", newName)
	if err != nil {
		return err
	}
	l.Name = newName
	return nil
}

// RenameWeb renames w and updates it in place. last_modified is unchanged.
func (s *Service) RenameWeb(ctx context.Context, w *model.Web, newName string) error {
	newName = model.NormalizeName(newName)
	if err := validateCollection(model.KindWeb, w.Owner, newName); err != nil {
		s.done(ctx, "rename web", err, "id", w.ID, "name", newName)
		return err
	}
	if newName == w.Name {
		return nil
	}

	err := s.repo.RenameWeb(ctx, *w, newName)
	s.done(ctx, "rename web", err, "id", w.ID, "from", w.Name, "to", newName)
	if err != nil {
		return err
	}
	w.Name = newName
	return nil
}

// DeleteLexicon deletes a lexicon, its lexemes, and every relation (in any
// web) that references one of those lexemes.
func (s *Service) DeleteLexicon(ctx context.Context, id string) error {
	err := s.repo.DeleteLexicon(ctx, id)
	s.done(ctx, "delete lexicon", err, "id", id)
	return err
}

// DeleteWeb deletes a web and its relations.
func (s *Service) DeleteWeb(ctx context.Context, id string) error {
	err := s.repo.DeleteWeb(ctx, id)
	s.done(ctx, "delete web", err, "id", id)
	return err
}

// GetLexicon returns a lexicon by storage ID.
func (s *Service) GetLexicon(ctx context.Context, id string) (model.Lexicon, error) {
	return s.repo.GetLexicon(ctx, id)
}

// FindLexicon returns the owner's lexicon with the given name.
func (s *Service) FindLexicon(ctx context.Context, owner model.Owner, name string) (model.Lexicon, error) {
	return s.repo.FindLexicon(ctx, owner, model.NormalizeName(name))
}

// ListLexicons returns the owner's lexicons, oldest first.
func (s *Service) ListLexicons(ctx context.Context, owner model.Owner) ([]model.Lexicon, error) {
	list, err := s.repo.ListLexicons(ctx, owner)
	s.logger.DebugContext(ctx, "list lexicons", "owner", owner, "count", len(list), "error", err)
	return list, err
}

// GetWeb returns a web by storage ID.
func (s *Service) GetWeb(ctx context.Context, id string) (model.Web, error) {
	return s.repo.GetWeb(ctx, id)
}

// FindWeb returns the owner's web with the given name.
func (s *Service) FindWeb(ctx context.Context, owner model.Owner, name string) (model.Web, error) {
	return s.repo.FindWeb(ctx, owner, model.NormalizeName(name))
}

// ListWebs returns the owner's webs, oldest first.
func (s *Service) ListWebs(ctx context.Context, owner model.Owner) ([]model.Web, error) {
	list, err := s.repo.ListWebs(ctx, owner)
	s.logger.DebugContext(ctx, "list webs", "owner", owner, "count", len(list), "error", err)
	return list, err
}
