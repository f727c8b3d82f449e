/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dot.go
Description: Graphviz DOT rendering of an automaton. Accepting states are drawn as
double circles and parallel edges between the same pair of states are merged into a
single edge labelled with every symbol.
*/

package automaton

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ExportDOT generates Graphviz DOT source for the automaton
func (a *Automaton) ExportDOT() string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Automaton {
  rankdir=LR;
  node [shape=circle, fontsize=10];
  edge [fontsize=9];
  "" [shape=none, label=""];
`)

	for id, name := range a.names {
		shape := "circle"
		if a.accepting[id] {
			shape = "doublecircle"
		}
		buf.WriteString(fmt.Sprintf("  %s [shape=%s];\n", dotID(name), shape))
	}
	buf.WriteString(fmt.Sprintf("  \"\" -> %s;\n", dotID(a.names[a.initial])))

	type edge struct{ from, to StateID }
	labels := make(map[edge][]string)
	var order []edge
	for _, t := range a.Transitions() {
		e := edge{from: t.From, to: t.To}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], string(t.Symbol))
	}

	for _, e := range order {
		symbols := labels[e]
		sort.Strings(symbols)
		buf.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
			dotID(a.names[e.from]), dotID(a.names[e.to]), dotID(strings.Join(symbols, ","))))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotID quotes s as a DOT string. Only quotes and backslashes are escaped; every
// other character is passed through as is.
func dotID(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
