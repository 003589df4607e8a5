// Package rate extracts the identifiers referenced by an algebraic rate expression.
//
// Rate expressions such as "r0/N*v*(1.0 +e*sin(2.0*M_PI*t))*(I + iota)" are a subset of
// the HCL expression grammar (arithmetic, parentheses, numeric literals and function
// calls), so the HCL native syntax parser does the lexing. Identifiers are the root
// names of variable references; function names and literals are never reported.
//
// Two differences with C style rates are smoothed over before parsing: binary minus is
// spaced out and leading-dot literals (".5") get a zero. The HCL keywords null, true
// and false are rejected rather than silently read as literals.
package rate

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Analyzer parses rate expressions. The zero value is ready to use.
type Analyzer struct{}

// NewAnalyzer returns a rate analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Identifiers returns the identifiers referenced by expr in source order.
// Repeated references are reported each time they occur.
func (a *Analyzer) Identifiers(expr string) ([]string, error) {
	parsed, err := parse(expr)
	if err != nil {
		return nil, err
	}

	traversals := parsed.Variables()
	ids := make([]string, 0, len(traversals))
	for _, t := range traversals {
		ids = append(ids, t.RootName())
	}
	return ids, nil
}

// Functions returns the distinct function names called by expr, in source order.
func (a *Analyzer) Functions(expr string) ([]string, error) {
	parsed, err := parse(expr)
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	hclsyntax.VisitAll(parsed, func(n hclsyntax.Node) hcl.Diagnostics {
		if call, ok := n.(*hclsyntax.FunctionCallExpr); ok && !seen[call.Name] {
			seen[call.Name] = true
			names = append(names, call.Name)
		}
		return nil
	})
	return names, nil
}

func parse(expr string) (hclsyntax.Expression, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &domain.InvalidRateError{Rate: expr, Err: fmt.Errorf("empty expression")}
	}

	src := []byte(normalize(expr))
	parsed, diags := hclsyntax.ParseExpression(src, "rate", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, &domain.InvalidRateError{Rate: expr, Err: diags}
	}
	if word := reservedWord(parsed, src); word != "" {
		return nil, &domain.InvalidRateError{Rate: expr, Err: fmt.Errorf("%q is a reserved word", word)}
	}
	return parsed, nil
}

// reservedWord returns the first non-numeric literal of the expression (null, true or
// false), if any.
func reservedWord(parsed hclsyntax.Expression, src []byte) string {
	var word string
	hclsyntax.VisitAll(parsed, func(n hclsyntax.Node) hcl.Diagnostics {
		lit, ok := n.(*hclsyntax.LiteralValueExpr)
		if !ok || word != "" {
			return nil
		}
		if lit.Val.IsNull() || lit.Val.Type() != cty.Number {
			word = string(lit.SrcRange.SliceBytes(src))
		}
		return nil
	})
	return word
}

// normalize pads binary minus signs with spaces and prefixes leading-dot literals
// with a zero. HCL identifiers may contain dashes, so "mu_b-mu_d" would otherwise lex
// as a single name. Exponent signs ("1e-5") are kept.
func normalize(expr string) string {
	if !strings.ContainsAny(expr, "-.") {
		return expr
	}

	var b strings.Builder
	b.Grow(len(expr) + 8)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '-' && !isExponentSign(expr, i):
			b.WriteString(" - ")
			continue
		case c == '.' && isLeadingDot(expr, i):
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isLeadingDot reports whether the dot at i starts a literal such as ".5".
func isLeadingDot(expr string, i int) bool {
	if i+1 >= len(expr) || expr[i+1] < '0' || expr[i+1] > '9' {
		return false
	}
	return i == 0 || !isIdentByte(expr[i-1])
}

func isExponentSign(expr string, i int) bool {
	if i < 2 || (expr[i-1] != 'e' && expr[i-1] != 'E') {
		return false
	}
	// the mantissa must end right before the exponent marker
	j := i - 2
	if expr[j] < '0' || expr[j] > '9' {
		return false
	}
	for j >= 0 && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
		j--
	}
	return j < 0 || !isIdentByte(expr[j])
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
