package core

import (
	"context"

	"github.com/roach88/lexweb/internal/model"
)

// AddRelation adds the edge name(source, sink) to w. The three lexemes may
// come from any lexicons.
//
// One timestamp is read and used both as the relation's date_added and as
// w's new last_modified. Returns DUPLICATE_RELATION if w already holds
// (name, source, sink), and NOT_FOUND if a referenced lexeme was deleted.
func (s *Service) AddRelation(ctx context.Context, w *model.Web, name, source, sink model.Lexeme, symmetric bool) (model.Relation, error) {
	now := s.clock.Now()
	r := model.NewRelation(s.ids.Generate(), w.ID, name, source, sink, symmetric, now)
	if err := s.repo.InsertRelation(ctx, r); err != nil {
		s.done(ctx, "add relation", err, "web", w.Name, "relation", r.String())
		return model.Relation{}, err
	}

	w.Touch(now)
	s.done(ctx, "add relation", nil, "web", w.Name, "relation", r.String(), "id", r.ID)
	return r, nil
}

// RemoveRelation removes r from w. The stamp and the delete are committed
// together. Returns NOT_FOUND if r does not belong to w.
func (s *Service) RemoveRelation(ctx context.Context, w *model.Web, r model.Relation) error {
	if r.WebID != w.ID {
		err := model.NewNotFoundError(model.KindRelation, r.Key().String())
		s.done(ctx, "remove relation", err, "web", w.Name, "relation", r.String())
		return err
	}

	now := s.clock.Now()
	if err := s.repo.DeleteRelation(ctx, w.ID, r.ID, now); err != nil {
		s.done(ctx, "remove relation", err, "web", w.Name, "relation", r.String())
		return err
	}

	w.Touch(now)
	s.done(ctx, "remove relation", nil, "web", w.Name, "relation", r.String(), "id", r.ID)
	return nil
}

// Relations returns the web's relations ordered by name, date added, source.
func (s *Service) Relations(ctx context.Context, webID string) ([]model.Relation, error) {
	list, err := s.repo.ListRelations(ctx, webID)
	s.logger.DebugContext(ctx, "list relations", "web", webID, "count", len(list), "error", err)
	return list, err
}

// LookupRelation returns the relation of w stored under (name, source, sink).
func (s *Service) LookupRelation(ctx context.Context, webID string, name, source, sink model.Lexeme) (model.Relation, error) {
	return s.repo.FindRelation(ctx, webID, name.ID, source.ID, sink.ID)
}

// GetRelation returns a relation by storage ID.
func (s *Service) GetRelation(ctx context.Context, id string) (model.Relation, error) {
	return s.repo.GetRelation(ctx, id)
}
