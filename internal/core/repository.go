package core

import (
	"context"
	"time"

	"github.com/roach88/lexweb/internal/model"
)

// Repository is the storage collaborator consumed by Service.
// *store.Store implements it.
type Repository interface {
	InsertLexicon(ctx context.Context, l model.Lexicon) error
	RenameLexicon(ctx context.Context, l model.Lexicon, newName string) error
	DeleteLexicon(ctx context.Context, id string) error
	GetLexicon(ctx context.Context, id string) (model.Lexicon, error)
	FindLexicon(ctx context.Context, owner model.Owner, name string) (model.Lexicon, error)
	ListLexicons(ctx context.Context, owner model.Owner) ([]model.Lexicon, error)

	InsertWeb(ctx context.Context, w model.Web) error
	RenameWeb(ctx context.Context, w model.Web, newName string) error
	DeleteWeb(ctx context.Context, id string) error
	GetWeb(ctx context.Context, id string) (model.Web, error)
	FindWeb(ctx context.Context, owner model.Owner, name string) (model.Web, error)
	ListWebs(ctx context.Context, owner model.Owner) ([]model.Web, error)

	InsertLexeme(ctx context.Context, lx model.Lexeme) error
	DeleteLexeme(ctx context.Context, lexiconID, lexemeID string, at time.Time) (int, error)
	GetLexeme(ctx context.Context, id string) (model.Lexeme, error)
	FindLexeme(ctx context.Context, lexiconID, text string) (model.Lexeme, error)
	ListLexemes(ctx context.Context, lexiconID string) ([]model.Lexeme, error)

	InsertRelation(ctx context.Context, r model.Relation) error
	DeleteRelation(ctx context.Context, webID, relationID string, at time.Time) error
	GetRelation(ctx context.Context, id string) (model.Relation, error)
	FindRelation(ctx context.Context, webID, nameID, sourceID, sinkID string) (model.Relation, error)
	ListRelations(ctx context.Context, webID string) ([]model.Relation, error)
}
