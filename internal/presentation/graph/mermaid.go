package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments/pkg/domain"
)

// Options tunes the generated diagram.
type Options struct {
	// Rates labels every edge with its rate expression.
	Rates bool
	// Deaths draws the injected death transitions (hidden by default, they only add noise).
	Deaths bool
}

// GenerateMermaid produces a Mermaid flowchart of a built model's transitions.
// It applies semantic styling:
// - Reservoir U: ((Circle))
// - Infectious: [[Subroutine]]
// - Remainder: ([Stadium])
// - Default: [Rectangle]
// Transmission edges are thick, Erlang self-loops and deaths are dotted.
func GenerateMermaid(m *domain.BuiltModel, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	usesReservoir := false
	for _, t := range m.Model {
		if (t.From == domain.Reservoir || t.To == domain.Reservoir) && (opts.Deaths || t.Comment != domain.CommentDeath) {
			usesReservoir = true
			break
		}
	}
	if usesReservoir {
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", domain.Reservoir, domain.Reservoir)
	}

	for _, s := range m.State {
		safeID := sanitizeMermaidID(s.ID)
		opener, closer := "[", "]"
		switch {
		case s.HasTag(domain.TagInfectious):
			opener, closer = "[[", "]]"
		case s.HasTag(domain.TagRemainder):
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, s.ID, closer)
	}

	for _, t := range m.Model {
		isDeath := t.To == domain.Reservoir && t.Comment == domain.CommentDeath
		if isDeath && !opts.Deaths {
			continue
		}

		label := ""
		if opts.Rates {
			label = strings.ReplaceAll(t.Rate, "\"", "'")
		}
		if t.Shape > 0 {
			label = strings.TrimSpace(fmt.Sprintf("Erlang %d %s", t.Shape, label))
		}

		var arrow string
		switch {
		case t.From == t.To || isDeath:
			arrow = "-.->"
			if label != "" {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
		case t.HasTag(domain.TagTransmission):
			arrow = "==>"
			if label != "" {
				arrow = fmt.Sprintf("== \"%s\" ==>", label)
			}
		default:
			arrow = "-->"
			if label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(t.From), arrow, sanitizeMermaidID(t.To))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
