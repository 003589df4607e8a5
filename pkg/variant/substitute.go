package variant

// Substitute replaces every block name that is a key of adapter with its replacement
// sequence, in place and in order. Names absent from adapter pass through unchanged.
// The input slice is never modified.
func Substitute(adapter map[string][]string, blocks []string) []string {
	out := make([]string, 0, len(blocks))
	for _, name := range blocks {
		if repl, ok := adapter[name]; ok {
			out = append(out, repl...)
			continue
		}
		out = append(out, name)
	}
	return out
}
