// Package fixture reads and writes lexicons and webs as YAML documents.
//
// A document names one owner and lists that owner's lexicons (with their
// lexemes) and webs (with their relations). Documents are checked against
// an embedded CUE schema before anything touches the store; Import then
// replays them through core.Service so every model invariant applies.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/lexweb/internal/model"
)

//go:embed schema.cue
var schemaSource string

// Document is one owner's lexicons and webs.
type Document struct {
	Owner    string    `yaml:"owner" json:"owner"`
	Lexicons []Lexicon `yaml:"lexicons,omitempty" json:"lexicons,omitempty"`
	Webs     []Web     `yaml:"webs,omitempty" json:"webs,omitempty"`
}

// Lexicon is a named list of lexeme texts.
type Lexicon struct {
	Name    string   `yaml:"name" json:"name"`
	Lexemes []string `yaml:"lexemes,omitempty" json:"lexemes,omitempty"`
}

// Web is a named list of relations.
type Web struct {
	Name      string     `yaml:"name" json:"name"`
	Relations []Relation `yaml:"relations,omitempty" json:"relations,omitempty"`
}

// Relation names its three lexemes by text. Lexicon scopes the lookup of
// all three; the per-endpoint fields override it for one endpoint.
//
// A lexicon is looked up among the document owner's lexicons unless its
// *_owner field names another owner. An endpoint without its own lexicon
// inherits both Lexicon and LexiconOwner.
type Relation struct {
	Name      string `yaml:"name" json:"name"`
	Source    string `yaml:"source" json:"source"`
	Sink      string `yaml:"sink" json:"sink"`
	Symmetric bool   `yaml:"symmetric" json:"symmetric"`

	Lexicon            string `yaml:"lexicon,omitempty" json:"lexicon,omitempty"`
	LexiconOwner       string `yaml:"lexicon_owner,omitempty" json:"lexicon_owner,omitempty"`
	NameLexicon        string `yaml:"name_lexicon,omitempty" json:"name_lexicon,omitempty"`
	NameLexiconOwner   string `yaml:"name_lexicon_owner,omitempty" json:"name_lexicon_owner,omitempty"`
	SourceLexicon      string `yaml:"source_lexicon,omitempty" json:"source_lexicon,omitempty"`
	SourceLexiconOwner string `yaml:"source_lexicon_owner,omitempty" json:"source_lexicon_owner,omitempty"`
	SinkLexicon        string `yaml:"sink_lexicon,omitempty" json:"sink_lexicon,omitempty"`
	SinkLexiconOwner   string `yaml:"sink_lexicon_owner,omitempty" json:"sink_lexicon_owner,omitempty"`
}

// scope returns the owner and lexicon name one endpoint resolves in, given
// the endpoint's own lexicon and owner fields.
func (r Relation) scope(docOwner, lexicon, owner string) (model.Owner, string) {
	if lexicon == "" {
		lexicon = r.Lexicon
		if owner == "" {
			owner = r.LexiconOwner
		}
	}
	if owner == "" {
		owner = docOwner
	}
	return model.Owner(owner), lexicon
}

// SchemaError lists every way a document fails the schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "fixture does not match schema: " + strings.Join(e.Problems, "; ")
}

func newSchemaError(err error) *SchemaError {
	se := &SchemaError{}
	for _, e := range cueerrors.Errors(err) {
		se.Problems = append(se.Problems, e.Error())
	}
	if len(se.Problems) == 0 {
		se.Problems = []string{err.Error()}
	}
	return se
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML document and validates it against the schema.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return nil, &SchemaError{Problems: []string{"document is empty"}}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile fixture schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Document")).Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, newSchemaError(err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &doc, nil
}

// Marshal renders doc as YAML with two-space indentation.
func Marshal(doc *Document) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode fixture: %w", err)
	}
	return []byte(b.String()), nil
}
