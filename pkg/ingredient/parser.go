// Package ingredient turns free-text recipe ingredient lines into structured
// name/quantity/unit triples.
package ingredient

import (
	"regexp"
	"strings"

	"github.com/korjavin/matchmygrocery/pkg/models"
)

// quantityExpr matches mixed fractions, fractions, unicode vulgar fractions
// and decimals with either separator. Order matters: longest shapes first.
const quantityExpr = `\d+\s+\d+/\d+|\d+/\d+|\d*[¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]|\d+(?:[.,]\d+)?`

// unitExpr lists the units recognised in the leading "<qty> <unit> <name>" shape.
// Longer spellings come first so the alternation does not stop at a prefix.
const unitExpr = `tablespoons?|teaspoons?|fluid ounces?|milliliters?|millilitres?|kilograms?|packages?|gallons?|bottles?|bunches|bunch|ounces?|pounds?|pieces?|liters?|litres?|sprigs?|stalks?|slices?|cloves?|quarts?|pinch(?:es)?|pints?|dash(?:es)?|sticks?|heads?|grams?|boxes|box|cups?|cans?|jars?|bags?|handfuls?|tbsp|tbs|tsp|floz|fl oz|pkg|gal|qt|pt|oz|lbs?|ml|kg|ct|pcs?|g|l`

// pattern is one line shape. extract receives the submatches of re.
type pattern struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) models.ParsedIngredient
}

// Parser parses ingredient lines by trying its patterns in order.
type Parser struct {
	patterns           []pattern
	quantityOnly       *regexp.Regexp
	reorderDescriptors bool
}

// Option configures a Parser
type Option func(*Parser)

// WithDescriptorReordering moves cooking-state adjectives ("diced", "chopped")
// to the front of the parsed name: "tomatoes, diced" becomes "Diced tomatoes".
func WithDescriptorReordering() Option {
	return func(p *Parser) {
		p.reorderDescriptors = true
	}
}

// NewParser creates a new parser instance
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		patterns: []pattern{
			{
				// 2 cups spinach, 1.5 cups, diced tomatoes
				name: "quantity-unit-name",
				re:   regexp.MustCompile(`(?i)^(` + quantityExpr + `)\s*(` + unitExpr + `)\.?,?\s+(.+)$`),
				extract: func(m []string) models.ParsedIngredient {
					return models.ParsedIngredient{Quantity: m[1], Unit: m[2], Name: m[3]}
				},
			},
			{
				// Tomatoes - 3 lbs, Salt - 2 large pinches, Eggs - 12 large
				name: "name-dash-quantity-unit",
				re: regexp.MustCompile(`(?i)^(.*?\p{L}.*?)\s*[-–—]\s*(` + quantityExpr + `)` +
					`(?:\s*(` + unitExpr + `)|\s+(\p{L}+(?:\s+\p{L}+)*?)(?:\s+(` + unitExpr + `))?)?\.?$`),
				extract: func(m []string) models.ParsedIngredient {
					// words between the quantity and the unit ("large") describe the item
					name, unit := m[1], m[3]
					if m[4] != "" {
						name = m[4] + " " + name
						unit = m[5]
					}
					return models.ParsedIngredient{Name: name, Quantity: m[2], Unit: unit}
				},
			},
			{
				// 3 eggs
				name: "quantity-name",
				re:   regexp.MustCompile(`^(` + quantityExpr + `)\s+(.+)$`),
				extract: func(m []string) models.ParsedIngredient {
					return models.ParsedIngredient{Quantity: m[1], Name: m[2]}
				},
			},
		},
		quantityOnly: regexp.MustCompile(`^(` + quantityExpr + `)$`),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses a line with the default parser (no descriptor reordering)
func Parse(line string) models.ParsedIngredient {
	return defaultParser.Parse(line)
}

// Parse converts a single free-text ingredient line into a ParsedIngredient.
// It never fails: a line that matches no pattern is returned whole as the name.
func (p *Parser) Parse(line string) models.ParsedIngredient {
	parsed, _ := p.Explain(line)
	return parsed
}

// Explain parses line like Parse and also reports which shape matched:
// one of the pattern names, "quantity-only", "unparsed" or "empty".
func (p *Parser) Explain(line string) (models.ParsedIngredient, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.ParsedIngredient{}, "empty"
	}

	// A bare quantity has no name to match against; keep the number and leave
	// the name empty so callers can drop the line.
	if m := p.quantityOnly.FindStringSubmatch(line); m != nil {
		return models.ParsedIngredient{Quantity: cleanQuantity(m[1])}, "quantity-only"
	}

	for _, pat := range p.patterns {
		m := pat.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		parsed := pat.extract(m)
		parsed.Quantity = cleanQuantity(parsed.Quantity)
		parsed.Unit = strings.ToLower(strings.TrimSpace(parsed.Unit))
		parsed.Name = cleanName(parsed.Name)
		if parsed.Name == "" {
			continue
		}
		if p.reorderDescriptors {
			parsed.Name = ReorderDescriptors(parsed.Name)
		}
		return parsed, pat.name
	}

	name := line
	if p.reorderDescriptors {
		name = ReorderDescriptors(name)
	}
	return models.ParsedIngredient{Name: name}, "unparsed"
}

// String reassembles a parsed ingredient as "<quantity> <unit> <name>",
// skipping empty parts.
func String(p models.ParsedIngredient) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Quantity, p.Unit, p.Name} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

var spaceRun = regexp.MustCompile(`\s+`)

func cleanQuantity(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ",;: ")
	if len(s) > 3 && strings.EqualFold(s[:3], "of ") {
		s = s[3:]
	}
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
