package fixture

import (
	"context"
	"fmt"

	"github.com/roach88/lexweb/internal/core"
	"github.com/roach88/lexweb/internal/model"
)

// Summary counts what Import created.
type Summary struct {
	Lexicons  int `json:"lexicons"`
	Lexemes   int `json:"lexemes"`
	Webs      int `json:"webs"`
	Relations int `json:"relations"`
}

// Import creates every lexicon, then every web, in document order. It stops
// at the first error; entities created before the failure remain.
func Import(ctx context.Context, svc *core.Service, doc *Document) (Summary, error) {
	var sum Summary
	owner := model.Owner(doc.Owner)

	for _, dl := range doc.Lexicons {
		l, err := svc.CreateLexicon(ctx, owner, dl.Name)
		if err != nil {
			return sum, fmt.Errorf("lexicon %q: %w", dl.Name, err)
		}
		sum.Lexicons++
		for _, text := range dl.Lexemes {
			if _, err := svc.AddLexeme(ctx, &l, text); err != nil {
				return sum, fmt.Errorf("lexicon %q: %w", dl.Name, err)
			}
			sum.Lexemes++
		}
	}

	for _, dw := range doc.Webs {
		w, err := svc.CreateWeb(ctx, owner, dw.Name)
		if err != nil {
			return sum, fmt.Errorf("web %q: %w", dw.Name, err)
		}
		sum.Webs++
		for i, dr := range dw.Relations {
			resolve := func(endpoint, text, lexicon, lexiconOwner string) (model.Lexeme, error) {
				o, l := dr.scope(doc.Owner, lexicon, lexiconOwner)
				lx, err := svc.ResolveLexeme(ctx, o, l, text)
				if err != nil {
					return model.Lexeme{}, fmt.Errorf("web %q relation %d %s: %w", dw.Name, i, endpoint, err)
				}
				return lx, nil
			}
			name, err := resolve("name", dr.Name, dr.NameLexicon, dr.NameLexiconOwner)
			if err != nil {
				return sum, err
			}
			source, err := resolve("source", dr.Source, dr.SourceLexicon, dr.SourceLexiconOwner)
			if err != nil {
				return sum, err
			}
			sink, err := resolve("sink", dr.Sink, dr.SinkLexicon, dr.SinkLexiconOwner)
			if err != nil {
				return sum, err
			}
			if _, err := svc.AddRelation(ctx, &w, name, source, sink, dr.Symmetric); err != nil {
				return sum, fmt.Errorf("web %q: %w", dw.Name, err)
			}
			sum.Relations++
		}
	}
	return sum, nil
}
