package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments/pkg/domain"
)

// FunctionLister reports the functions called by a rate expression.
type FunctionLister interface {
	Functions(expr string) ([]string, error)
}

// Describe renders a built model as a Markdown report.
// fns is optional; when set the report lists the functions the rates rely on.
func Describe(m *domain.BuiltModel, fns FunctionLister) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (`%s`)\n\n%s\n\n", m.Name, m.Key, m.Description)

	b.WriteString("## States\n\n| id | comment | tags |\n|---|---|---|\n")
	for _, s := range m.State {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.ID, s.Comment, strings.Join(s.Tag, ", "))
	}

	b.WriteString("\n## Parameters\n\n| id | comment |\n|---|---|\n")
	for _, p := range m.Parameter {
		fmt.Fprintf(&b, "| %s | %s |\n", p.ID, p.Comment)
	}

	b.WriteString("\n## Transitions\n\n| from | to | rate | comment |\n|---|---|---|---|\n")
	var functions []string
	seen := make(map[string]bool)
	for _, t := range m.Model {
		comment := t.Comment
		if t.Shape > 0 {
			comment = strings.TrimSpace(fmt.Sprintf("%s (Erlang %d, rescale %s)", comment, t.Shape, t.Rescale))
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n", t.From, t.To, t.Rate, comment)

		if fns == nil {
			continue
		}
		names, err := fns.Functions(t.Rate)
		if err != nil {
			continue
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				functions = append(functions, n)
			}
		}
	}

	if len(functions) > 0 {
		fmt.Fprintf(&b, "\nRates call: %s.\n", strings.Join(functions, ", "))
	}
	return b.String()
}
