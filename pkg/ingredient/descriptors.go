package ingredient

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// descriptors are cooking-state adjectives that describe preparation rather than
// the ingredient itself.
var descriptors = map[string]bool{
	"chopped":    true,
	"diced":      true,
	"minced":     true,
	"sliced":     true,
	"grated":     true,
	"shredded":   true,
	"crushed":    true,
	"peeled":     true,
	"cubed":      true,
	"julienned":  true,
	"mashed":     true,
	"melted":     true,
	"softened":   true,
	"beaten":     true,
	"toasted":    true,
	"roasted":    true,
	"cooked":     true,
	"drained":    true,
	"rinsed":     true,
	"halved":     true,
	"quartered":  true,
	"trimmed":    true,
	"pitted":     true,
	"seeded":     true,
	"zested":     true,
	"crumbled":   true,
	"sifted":     true,
	"smashed":    true,
	"shelled":    true,
	"deveined":   true,
	"thawed":     true,
}

// modifiers may precede a descriptor ("finely chopped") but are not descriptors
// on their own.
var modifiers = map[string]bool{
	"finely":   true,
	"roughly":  true,
	"coarsely": true,
	"thinly":   true,
	"thickly":  true,
	"freshly":  true,
	"lightly":  true,
	"very":     true,
	"and":      true,
}

// ReorderDescriptors moves cooking-state adjectives to the front of name and
// capitalises the result: "tomatoes, diced" -> "Diced tomatoes",
// "chopped spinach" -> "Chopped spinach". Names without descriptors are
// returned unchanged.
func ReorderDescriptors(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}

	base := name
	var trailing []string

	// "tomatoes, diced" / "onion, peeled and finely chopped"
	if idx := strings.Index(base, ","); idx > 0 {
		tail := strings.Fields(strings.ToLower(base[idx+1:]))
		if isDescriptorRun(tail) {
			trailing = tail
			base = strings.TrimSpace(base[:idx])
		}
	}

	words := strings.Fields(base)

	// "tomatoes diced"
	end := len(words)
	for end > 1 && descriptors[strings.ToLower(words[end-1])] {
		end--
		for end > 1 && modifiers[strings.ToLower(words[end-1])] {
			end--
		}
	}
	if end < len(words) {
		trailing = append(lowerAll(words[end:]), trailing...)
		words = words[:end]
	}

	// "finely chopped onion"
	start := 0
	for start < len(words)-1 {
		w := strings.ToLower(words[start])
		if !descriptors[w] && !modifiers[w] {
			break
		}
		start++
	}
	// a run of modifiers alone is not a descriptor ("very ripe")
	if start > 0 && !isDescriptorRun(lowerAll(words[:start])) {
		start = 0
	}
	leading := lowerAll(words[:start])
	words = words[start:]

	if len(leading) == 0 && len(trailing) == 0 {
		return name
	}

	parts := append(leading, trailing...)
	parts = append(parts, words...)
	return capitalize(strings.Join(parts, " "))
}

// isDescriptorRun reports whether words consist only of descriptors and
// modifiers, with at least one descriptor.
func isDescriptorRun(words []string) bool {
	found := false
	for _, w := range words {
		w = strings.Trim(w, ",.;")
		switch {
		case descriptors[w]:
			found = true
		case modifiers[w]:
		default:
			return false
		}
	}
	return found
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.Trim(strings.ToLower(w), ",.;")
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
