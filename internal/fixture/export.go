package fixture

import (
	"context"

	"github.com/roach88/lexweb/internal/core"
	"github.com/roach88/lexweb/internal/model"
)

// Export builds the document for everything owner has, in default order:
// collections by creation, lexemes by text, relations by name, date added
// and source.
func Export(ctx context.Context, svc *core.Service, owner model.Owner) (*Document, error) {
	doc := &Document{Owner: string(owner)}

	lexicons, err := svc.ListLexicons(ctx, owner)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]lexiconRef, len(lexicons))
	for _, l := range lexicons {
		refs[l.ID] = lexiconRef{owner: l.Owner, name: l.Name}
		lexemes, err := svc.Lexemes(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		dl := Lexicon{Name: l.Name}
		for _, lx := range lexemes {
			dl.Lexemes = append(dl.Lexemes, lx.Text)
		}
		doc.Lexicons = append(doc.Lexicons, dl)
	}

	// Relations may point into lexicons of other owners.
	lookup := func(id string) (lexiconRef, error) {
		if ref, ok := refs[id]; ok {
			return ref, nil
		}
		l, err := svc.GetLexicon(ctx, id)
		if err != nil {
			return lexiconRef{}, err
		}
		refs[id] = lexiconRef{owner: l.Owner, name: l.Name}
		return refs[id], nil
	}

	webs, err := svc.ListWebs(ctx, owner)
	if err != nil {
		return nil, err
	}
	for _, w := range webs {
		relations, err := svc.Relations(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		dw := Web{Name: w.Name}
		for _, r := range relations {
			dr, err := exportRelation(owner, r, lookup)
			if err != nil {
				return nil, err
			}
			dw.Relations = append(dw.Relations, dr)
		}
		doc.Webs = append(doc.Webs, dw)
	}
	return doc, nil
}

// lexiconRef is how a document names a lexicon: by owner and name.
type lexiconRef struct {
	owner model.Owner
	name  string
}

// ownerField returns the *_owner value for ref: empty for the document
// owner, which is what Import assumes when the field is absent.
func (ref lexiconRef) ownerField(docOwner model.Owner) string {
	if ref.owner == docOwner {
		return ""
	}
	return string(ref.owner)
}

func exportRelation(docOwner model.Owner, r model.Relation, lookup func(string) (lexiconRef, error)) (Relation, error) {
	dr := Relation{
		Name:      r.Name.Text,
		Source:    r.Source.Text,
		Sink:      r.Sink.Text,
		Symmetric: r.Symmetric,
	}
	src, err := lookup(r.Source.LexiconID)
	if err != nil {
		return Relation{}, err
	}
	dr.Lexicon, dr.LexiconOwner = src.name, src.ownerField(docOwner)

	if r.Name.LexiconID != r.Source.LexiconID {
		ref, err := lookup(r.Name.LexiconID)
		if err != nil {
			return Relation{}, err
		}
		dr.NameLexicon, dr.NameLexiconOwner = ref.name, ref.ownerField(docOwner)
	}
	if r.Sink.LexiconID != r.Source.LexiconID {
		ref, err := lookup(r.Sink.LexiconID)
		if err != nil {
			return Relation{}, err
		}
		dr.SinkLexicon, dr.SinkLexiconOwner = ref.name, ref.ownerField(docOwner)
	}
	return dr, nil
}
