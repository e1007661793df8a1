package parser

import (
	"regexp"
	"strconv"
	"strings"

	"painting_estimator_backend/internal/shared/surface"
)

// TaskPhrase is one normalized task extracted from an utterance.
type TaskPhrase struct {
	Raw        string       `json:"raw"`
	Normalized string       `json:"normalized"`
	Layers     int          `json:"layers,omitempty"`
	Surface    surface.Type `json:"surface,omitempty"`
}

// taskAction describes a painting operation as spoken: active forms that
// precede the surface and passive forms that follow it ("väggarna ska målas").
type taskAction struct {
	canonical string
	active    string
	passive   string
}

var (
	actionPaint     = taskAction{"måla", `(?:färdig|om)?mål(?:a|ar|ning)|stryk(?:a|er)`, `(?:färdig|om)?målas|strykas`}
	actionPrime     = taskAction{"grundmåla", `grund(?:måla|målar|målning|a|ar|ning|era)`, `grund(?:målas|as)`}
	actionFill      = taskAction{"spackla", `(?:bred)?spackl(?:a|ar|ing|ning)`, `(?:bred)?spacklas`}
	actionSand      = taskAction{"slipa", `slip(?:a|ar|ning)`, `slipas`}
	actionLacquer   = taskAction{"lacka", `lack(?:a|ar|era|erar|ering|ning)`, `lack(?:as|eras)`}
	actionWash      = taskAction{"tvätta", `tvätt(?:a|ar|ning)`, `tvättas`}
	actionWallpaper = taskAction{"tapetsera", `tapetser(?:a|ar|ing)`, `tapetseras`}
)

var surfaceExprs = map[surface.Type]string{
	surface.Wall:    `vägg(?:en|ar|arna)?`,
	surface.Ceiling: `(?:inner)?tak(?:et|en)?`,
	surface.Floor:   `golv(?:et|en)?`,
	surface.Door:    `dörr(?:en|ar|arna)?`,
	surface.Window:  `fönst(?:er|ret|ren|erna)`,
	surface.Trim:    `\p{L}*(?:list(?:en|er|erna)?|sock(?:el|eln|lar|larna)|foder|fodret|snickeri(?:er|erna)?)`,
}

var surfaceNouns = map[surface.Type]string{
	surface.Wall:    "väggar",
	surface.Ceiling: "tak",
	surface.Floor:   "golv",
	surface.Door:    "dörrar",
	surface.Window:  "fönster",
	surface.Trim:    "lister",
}

// Word boundaries are spelled out because RE2's \b is ASCII-only and breaks on å, ä and ö.
const (
	wordStart = `(?:^|[^\p{L}])`
	wordEnd   = `(?:$|[^\p{L}])`
	// up to three words may separate action and surface ("måla 2 lager på väggarna")
	filler = `(?:\s+\S+){0,3}?\s+`
)

// taskPattern is one row of the phrase table: matchers and the canonical
// phrase they yield. Rows with a zero surface are generic fallbacks for their
// action. The active matcher runs per clause so that "spackla väggarna och
// måla taket" does not pair spackla with taket; passive forms follow the
// surface and are matched against the whole utterance.
type taskPattern struct {
	action    string
	surface   surface.Type
	canonical string
	active    *regexp.Regexp
	passive   *regexp.Regexp
}

func specific(a taskAction, s surface.Type) taskPattern {
	return taskPattern{
		action:    a.canonical,
		surface:   s,
		canonical: a.canonical + " " + surfaceNouns[s],
		active:    regexp.MustCompile(wordStart + `(?:` + a.active + `)` + filler + `(?:` + surfaceExprs[s] + `)` + wordEnd),
		passive:   regexp.MustCompile(wordStart + `(?:` + surfaceExprs[s] + `)` + filler + `(?:` + a.passive + `)` + wordEnd),
	}
}

func generic(a taskAction) taskPattern {
	return taskPattern{
		action:    a.canonical,
		canonical: a.canonical,
		active:    regexp.MustCompile(wordStart + `(?:` + a.active + `)` + wordEnd),
		passive:   regexp.MustCompile(wordStart + `(?:` + a.passive + `)` + wordEnd),
	}
}

func (p taskPattern) matches(whole string, clauses []string) bool {
	if p.passive.MatchString(whole) {
		return true
	}
	for _, c := range clauses {
		if p.active.MatchString(c) {
			return true
		}
	}
	return false
}

var taskActions = []taskAction{actionPaint, actionPrime, actionFill, actionSand, actionLacquer, actionWash, actionWallpaper}

var actionAlternation = func() string {
	alts := make([]string, 0, len(taskActions))
	for _, a := range taskActions {
		alts = append(alts, a.active)
	}
	return `(?:` + strings.Join(alts, "|") + `)`
}()

// actionStart finds where each active action begins; clauses run from one to the next.
var actionStart = regexp.MustCompile(wordStart + actionAlternation + wordEnd)

// bareAction is a clause ending in an action joined on by "och".
var bareAction = regexp.MustCompile(wordStart + actionAlternation + `\s+och$`)

// splitClauses cuts text at every active action. A bare "spackla och" borrows
// the surface of the clause after it, so "spackla och slipa väggarna" pairs
// both actions with väggarna.
func splitClauses(text string) []string {
	locs := actionStart.FindAllStringIndex(text, -1)
	if len(locs) < 2 {
		return []string{text}
	}
	out := make([]string, 0, len(locs))
	prev := 0
	for _, loc := range locs[1:] {
		out = append(out, text[prev:loc[0]])
		prev = loc[0]
	}
	out = append(out, text[prev:])

	for i := len(out) - 2; i >= 0; i-- {
		bare := strings.TrimSpace(out[i])
		if !bareAction.MatchString(bare) || surface.Detect(bare) != surface.Unknown {
			continue
		}
		next := out[i+1]
		if loc := actionStart.FindStringIndex(next); loc != nil {
			tail := strings.TrimSpace(next[loc[1]:])
			out[i] = bare + " " + strings.TrimPrefix(tail, "och ")
		}
	}
	return out
}

// taskPatterns is evaluated top to bottom. Every specific row for an action
// precedes that action's generic row, and a generic row only contributes
// when no specific row of the same action matched.
var taskPatterns = []taskPattern{
	specific(actionFill, surface.Wall),
	specific(actionFill, surface.Ceiling),
	specific(actionSand, surface.Wall),
	specific(actionSand, surface.Ceiling),
	specific(actionSand, surface.Floor),
	specific(actionSand, surface.Trim),
	specific(actionPrime, surface.Wall),
	specific(actionPrime, surface.Ceiling),
	specific(actionPrime, surface.Trim),
	specific(actionWash, surface.Wall),
	specific(actionWash, surface.Ceiling),
	specific(actionPaint, surface.Wall),
	specific(actionPaint, surface.Ceiling),
	specific(actionPaint, surface.Door),
	specific(actionPaint, surface.Window),
	specific(actionPaint, surface.Trim),
	specific(actionPaint, surface.Floor),
	specific(actionLacquer, surface.Floor),
	specific(actionLacquer, surface.Door),
	specific(actionLacquer, surface.Trim),
	specific(actionWallpaper, surface.Wall),
	generic(actionFill),
	generic(actionSand),
	generic(actionPrime),
	generic(actionWash),
	generic(actionPaint),
	generic(actionLacquer),
	generic(actionWallpaper),
}

var layerPattern = regexp.MustCompile(wordStart + `(\d+)\s+(?:lager|strykning(?:ar)?|gång(?:er)?|varv)` + wordEnd)

// ParseLayers returns the layer count spoken in already-resolved text, or 0.
func ParseLayers(resolved string) int {
	m := layerPattern.FindStringSubmatch(resolved)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// ParseTasks extracts normalized task phrases from an utterance. A spoken
// layer count applies to every phrase. An empty result means nothing in the
// table matched; callers keep the utterance as an opaque phrase then.
func ParseTasks(text string) []TaskPhrase {
	resolved := ResolveNumerals(text)
	layers := ParseLayers(resolved)

	clauses := splitClauses(resolved)

	var out []TaskPhrase
	specificHit := map[string]bool{}
	for _, p := range taskPatterns {
		if p.surface == surface.Unknown && specificHit[p.action] {
			continue
		}
		if !p.matches(resolved, clauses) {
			continue
		}
		if p.surface != surface.Unknown {
			specificHit[p.action] = true
		}
		out = append(out, TaskPhrase{
			Raw:        text,
			Normalized: p.canonical,
			Layers:     layers,
			Surface:    p.surface,
		})
	}
	return out
}
