// Package surface defines the physical surface categories shared by the intake
// parsers, the catalog index and the estimate calculator.
package surface

import "strings"

// Type is a surface category. The zero value means unknown.
type Type string

const (
	Unknown Type = ""
	Wall    Type = "wall"
	Ceiling Type = "ceiling"
	Floor   Type = "floor"
	Door    Type = "door"
	Window  Type = "window"
	Trim    Type = "trim"
)

var known = map[Type]struct{}{
	Wall: {}, Ceiling: {}, Floor: {}, Door: {}, Window: {}, Trim: {},
}

// aliases accepts both the canonical English names and Swedish catalog spellings.
var aliases = map[string]Type{
	"vägg":     Wall,
	"väggar":   Wall,
	"tak":      Ceiling,
	"golv":     Floor,
	"dörr":     Door,
	"dörrar":   Door,
	"fönster":  Window,
	"list":     Trim,
	"lister":   Trim,
	"snickeri": Trim,
}

// Parse converts a catalog or request value to a Type. Unknown values yield Unknown.
func Parse(value string) Type {
	v := strings.ToLower(strings.TrimSpace(value))
	if _, ok := known[Type(v)]; ok {
		return Type(v)
	}
	return aliases[v]
}

// IsKnown reports whether t is one of the defined categories.
func IsKnown(t Type) bool {
	_, ok := known[t]
	return ok
}

// trimSuffixes mark compound words that name trim even when they start with
// another surface, e.g. "taklist" or "dörrfoder".
var trimSuffixes = []string{"list", "lister", "listerna", "listen", "foder", "fodret", "sockel", "socklar", "socklarna", "karm", "karmar", "karmarna"}

// wordRules are evaluated in order against each word; the first rule whose
// prefix matches wins. Exact entries guard short stems like "tak".
var wordRules = []struct {
	prefix string
	exact  []string
	typ    Type
}{
	{prefix: "vägg", typ: Wall},
	{exact: []string{"tak", "taket", "taken", "innertak", "innertaket"}, typ: Ceiling},
	{prefix: "golv", typ: Floor},
	{prefix: "dörr", typ: Door},
	{prefix: "fönst", typ: Window},
	{prefix: "snickeri", typ: Trim},
}

// Detect returns the first surface mentioned in lowercase Swedish text.
func Detect(text string) Type {
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:")
		if t := classify(word); t != Unknown {
			return t
		}
	}
	return Unknown
}

func classify(word string) Type {
	for _, suffix := range trimSuffixes {
		if strings.HasSuffix(word, suffix) {
			return Trim
		}
	}
	for _, rule := range wordRules {
		for _, e := range rule.exact {
			if word == e {
				return rule.typ
			}
		}
		if rule.prefix != "" && strings.HasPrefix(word, rule.prefix) {
			return rule.typ
		}
	}
	return Unknown
}
