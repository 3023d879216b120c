package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/lexweb/internal/graph"
	"github.com/roach88/lexweb/internal/model"
)

// outcome pairs a one-line text message with the JSON payload for it.
type outcome struct {
	text string
	data any
}

func (o outcome) String() string { return o.text }

func (o outcome) MarshalJSON() ([]byte, error) { return json.Marshal(o.data) }

func stamp(t time.Time) string { return t.Format(time.RFC3339Nano) }

func collectionLine(c model.Collection) string {
	return fmt.Sprintf("%s\tcreated %s\tmodified %s", c.Name, stamp(c.DateCreated), stamp(c.LastModified))
}

type lexiconList []model.Lexicon

func (l lexiconList) String() string {
	if len(l) == 0 {
		return "(no lexicons)"
	}
	lines := make([]string, len(l))
	for i, lx := range l {
		lines[i] = collectionLine(lx.Collection)
	}
	return strings.Join(lines, "\n")
}

type webList []model.Web

func (l webList) String() string {
	if len(l) == 0 {
		return "(no webs)"
	}
	lines := make([]string, len(l))
	for i, w := range l {
		lines[i] = collectionLine(w.Collection)
	}
	return strings.Join(lines, "\n")
}

type lexiconDetail struct {
	Lexicon model.Lexicon  `json:"lexicon"`
	Lexemes []model.Lexeme `json:"lexemes"`
}

func (d lexiconDetail) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d lexemes)", d.Lexicon.Name, len(d.Lexemes))
	for _, lx := range d.Lexemes {
		b.WriteString("\n  ")
		b.WriteString(lx.Text)
	}
	return b.String()
}

type webDetail struct {
	Web       model.Web        `json:"web"`
	Relations []model.Relation `json:"relations"`
}

func (d webDetail) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d relations)", d.Web.Name, len(d.Relations))
	for _, r := range d.Relations {
		b.WriteString("\n  ")
		b.WriteString(r.String())
	}
	return b.String()
}

type neighborList struct {
	Node  string       `json:"node"`
	Edges []graph.Edge `json:"edges"`
}

func (n neighborList) String() string {
	if len(n.Edges) == 0 {
		return fmt.Sprintf("%s has no outgoing relations", n.Node)
	}
	lines := make([]string, len(n.Edges))
	for i, e := range n.Edges {
		arrow := "─"
		if e.Symmetric {
			arrow = "←"
		}
		lines[i] = fmt.Sprintf("%s %s{ %s }→ %s", n.Node, arrow, e.Label, e.To)
	}
	return strings.Join(lines, "\n")
}

type reachableList struct {
	Node      string   `json:"node"`
	Reachable []string `json:"reachable"`
}

func (r reachableList) String() string {
	if len(r.Reachable) == 0 {
		return fmt.Sprintf("nothing is reachable from %s", r.Node)
	}
	return strings.Join(r.Reachable, "\n")
}

type cycleList struct {
	Cycles [][]string `json:"cycles"`
}

func (c cycleList) String() string {
	if len(c.Cycles) == 0 {
		return "no cycles"
	}
	lines := make([]string, len(c.Cycles))
	for i, cyc := range c.Cycles {
		lines[i] = "cycle: " + strings.Join(cyc, ", ")
	}
	return strings.Join(lines, "\n")
}
