// Package parser turns normalized Swedish utterances into numbers, room
// measurements and task phrases. Everything here is pure text processing.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// unitWords maps spoken units to their values. "en"/"ett" double as the
// indefinite article; converting them is harmless for measurement and layer parsing.
var unitWords = map[string]int{
	"noll": 0, "en": 1, "ett": 1, "två": 2, "tre": 3, "fyra": 4,
	"fem": 5, "sex": 6, "sju": 7, "åtta": 8, "nio": 9,
}

// teenWords maps ten through nineteen, including the older "aderton".
var teenWords = map[string]int{
	"tio": 10, "elva": 11, "tolv": 12, "tretton": 13, "fjorton": 14,
	"femton": 15, "sexton": 16, "sjutton": 17, "arton": 18, "aderton": 18, "nitton": 19,
}

// tensWords maps twenty through ninety. The colloquial forms are how speech
// services commonly transcribe casual pronunciation ("förti", "femti").
var tensWords = map[string]int{
	"tjugo": 20, "tjuge": 20,
	"trettio": 30, "tretti": 30,
	"fyrtio": 40, "fyrti": 40, "förti": 40, "förtio": 40,
	"femtio": 50, "femti": 50,
	"sextio": 60, "sexti": 60,
	"sjuttio": 70, "sjutti": 70,
	"åttio": 80, "åtti": 80,
	"nittio": 90, "nitti": 90,
}

// wordValue returns the value of a single numeral word, including joined
// tens+units forms such as "tjugofem" or "fyrtiotvå".
func wordValue(word string) (int, bool) {
	if v, ok := unitWords[word]; ok {
		return v, true
	}
	if v, ok := teenWords[word]; ok {
		return v, true
	}
	if v, ok := tensWords[word]; ok {
		return v, true
	}
	for tens, tv := range tensWords {
		rest, found := strings.CutPrefix(word, tens)
		if !found || rest == "" {
			continue
		}
		if uv, ok := unitWords[rest]; ok && uv > 0 {
			return tv + uv, true
		}
	}
	return 0, false
}

// numberValue reads a digit literal ("4", "2,5", "2.5") or a numeral word.
func numberValue(tok string) (float64, bool) {
	if v, ok := parseDecimal(tok); ok {
		return v, true
	}
	if v, ok := wordValue(tok); ok {
		return float64(v), true
	}
	return 0, false
}

// wholeValue is numberValue restricted to whole numbers.
func wholeValue(tok string) (int, bool) {
	v, ok := numberValue(tok)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

// parseDecimal accepts both decimal separators.
func parseDecimal(tok string) (float64, bool) {
	if tok == "" || !isDigitLiteral(tok) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigitLiteral(tok string) bool {
	seenSep := false
	for i, r := range tok {
		switch {
		case r >= '0' && r <= '9':
		case (r == '.' || r == ',') && !seenSep && i > 0 && i < len(tok)-1:
			seenSep = true
		default:
			return false
		}
	}
	return true
}

// centimetreValue reads the centimetre part of "N och TENS[ UNITS]" starting
// at toks[i]. It returns the value and the number of tokens consumed.
func centimetreValue(toks []string, i int) (int, int, bool) {
	if i >= len(toks) {
		return 0, 0, false
	}
	tok := toks[i]
	if tv, ok := tensWords[tok]; ok {
		if i+1 < len(toks) {
			if uv, ok := unitWords[toks[i+1]]; ok && uv > 0 {
				return tv + uv, 2, true
			}
		}
		return tv, 1, true
	}
	if v, ok := teenWords[tok]; ok {
		return v, 1, true
	}
	if v, ok := wordValue(tok); ok && v >= 20 {
		return v, 1, true
	}
	// "4 och 50" as transcribed with digits
	if isDigitLiteral(tok) && !strings.ContainsAny(tok, ".,") {
		if v, err := strconv.Atoi(tok); err == nil && v >= 10 && v <= 99 {
			return v, 1, true
		}
	}
	return 0, 0, false
}

// numeralRule rewrites one occurrence in the token list. It reports whether it
// changed anything.
type numeralRule struct {
	name  string
	apply func(toks []string) ([]string, bool)
}

// numeralRules is evaluated in order; after any rule fires, evaluation restarts
// from the top. Multi-word idioms therefore always win over single-word substitution.
var numeralRules = []numeralRule{
	{name: "metre_and_centimetres", apply: applyCentimetres},
	{name: "decimal_komma", apply: applyKomma},
	{name: "and_a_half", apply: applyAndAHalf},
	{name: "halvannan", apply: applyHalvannan},
	{name: "lone_half", apply: applyLoneHalf},
	{name: "numeral_word", apply: applyNumeralWord},
}

// applyCentimetres: "fyra och femtio" -> "4.50", "två och trettio fem" -> "2.35".
func applyCentimetres(toks []string) ([]string, bool) {
	for i := 0; i+2 < len(toks); i++ {
		if toks[i+1] != "och" {
			continue
		}
		metres, ok := wholeValue(toks[i])
		if !ok {
			continue
		}
		cm, used, ok := centimetreValue(toks, i+2)
		if !ok {
			continue
		}
		return splice(toks, i, 2+used, fmt.Sprintf("%d.%02d", metres, cm)), true
	}
	return toks, false
}

// applyKomma: "två komma fem" -> "2.5".
func applyKomma(toks []string) ([]string, bool) {
	for i := 0; i+2 < len(toks); i++ {
		if toks[i+1] != "komma" {
			continue
		}
		whole, ok := wholeValue(toks[i])
		if !ok {
			continue
		}
		frac := toks[i+2]
		if !isDigitLiteral(frac) || strings.ContainsAny(frac, ".,") {
			v, ok := wordValue(frac)
			if !ok {
				continue
			}
			frac = strconv.Itoa(v)
		}
		return splice(toks, i, 3, fmt.Sprintf("%d.%s", whole, frac)), true
	}
	return toks, false
}

// applyAndAHalf: "två och en halv", "2 och halv", "tre och ett halvt" -> N+0.5.
func applyAndAHalf(toks []string) ([]string, bool) {
	for i := 0; i+2 < len(toks); i++ {
		if toks[i+1] != "och" {
			continue
		}
		base, ok := numberValue(toks[i])
		if !ok {
			continue
		}
		used := 0
		switch {
		case isHalf(toks[i+2]):
			used = 3
		case (toks[i+2] == "en" || toks[i+2] == "ett") && i+3 < len(toks) && isHalf(toks[i+3]):
			used = 4
		default:
			continue
		}
		return splice(toks, i, used, formatNumber(base+0.5)), true
	}
	return toks, false
}

func applyHalvannan(toks []string) ([]string, bool) {
	for i, tok := range toks {
		switch tok {
		case "halvannan", "halvannat", "halvtannat":
			return splice(toks, i, 1, "1.5"), true
		}
	}
	return toks, false
}

// applyLoneHalf: "en halv" -> "0.5" when no whole number precedes it.
func applyLoneHalf(toks []string) ([]string, bool) {
	for i := 0; i+1 < len(toks); i++ {
		if (toks[i] == "en" || toks[i] == "ett") && isHalf(toks[i+1]) {
			return splice(toks, i, 2, "0.5"), true
		}
	}
	return toks, false
}

func applyNumeralWord(toks []string) ([]string, bool) {
	for i, tok := range toks {
		if v, ok := wordValue(tok); ok {
			return splice(toks, i, 1, strconv.Itoa(v)), true
		}
	}
	return toks, false
}

func isHalf(tok string) bool {
	return tok == "halv" || tok == "halvt" || tok == "halva"
}

// splice replaces n tokens at i with a single replacement token.
func splice(toks []string, i, n int, replacement string) []string {
	out := make([]string, 0, len(toks)-n+1)
	out = append(out, toks[:i]...)
	out = append(out, replacement)
	return append(out, toks[i+n:]...)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// tokenize splits on whitespace, detaches multiplication symbols and colons
// and strips trailing sentence punctuation. Decimal commas inside a number survive.
func tokenize(text string) []string {
	replacer := strings.NewReplacer("×", " × ", "*", " * ", ":", " : ")
	fields := strings.Fields(replacer.Replace(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".,!?;")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ResolveNumerals replaces Swedish numeral words and spoken decimal idioms in
// lowercase text with digit literals, e.g. "fyra gånger fem gånger två och en
// halv" -> "4 gånger 5 gånger 2.5".
func ResolveNumerals(text string) string {
	toks := tokenize(text)
	// Every rule application removes at least one token or converts a word to
	// digits, so this bound is never reached by well-behaved rules.
	limit := 2*len(toks) + 1
	for pass := 0; pass < limit; pass++ {
		changed := false
		for _, rule := range numeralRules {
			var fired bool
			toks, fired = rule.apply(toks)
			if fired {
				changed = true
				break
			}
		}
		if !changed {
			break
		}
	}
	return strings.Join(toks, " ")
}
