package parser

import (
	"regexp"
	"strings"

	"painting_estimator_backend/internal/intake/domain"
)

type field int

const (
	fieldNone field = iota
	fieldWidth
	fieldLength
	fieldHeight
	fieldDoors
	fieldWindows
)

// labelWords maps spoken field labels, including definite forms, to fields.
var labelWords = map[string]field{
	"bredd": fieldWidth, "bredden": fieldWidth,
	"längd": fieldLength, "längden": fieldLength,
	"höjd": fieldHeight, "höjden": fieldHeight, "takhöjd": fieldHeight, "takhöjden": fieldHeight,
	"dörr": fieldDoors, "dörrar": fieldDoors, "dörren": fieldDoors, "dörrarna": fieldDoors,
	"fönster": fieldWindows, "fönstret": fieldWindows, "fönstren": fieldWindows,
}

// labelLinks may sit between a label and its number ("bredden är 4", "höjd på 2,5").
var labelLinks = map[string]bool{":": true, "=": true, "är": true, "på": true}

var multiplyCues = map[string]bool{"gånger": true, "x": true, "×": true, "*": true, "på": true}

var compactDimensions = regexp.MustCompile(`^\d+(?:[.,]\d+)?(?:x\d+(?:[.,]\d+)?)+$`)

// measurementTokens tokenizes resolved text and splits compact forms like "4x5x2,5".
func measurementTokens(text string) []string {
	var out []string
	for _, tok := range tokenize(text) {
		if compactDimensions.MatchString(tok) {
			for i, part := range strings.Split(tok, "x") {
				if i > 0 {
					out = append(out, "x")
				}
				out = append(out, part)
			}
			continue
		}
		out = append(out, tok)
	}
	return out
}

// numberAt reads a number token at i, scaling it when a centimetre unit follows.
func numberAt(toks []string, i int) (float64, bool) {
	if i < 0 || i >= len(toks) {
		return 0, false
	}
	v, ok := parseDecimal(toks[i])
	if !ok {
		return 0, false
	}
	if i+1 < len(toks) && (toks[i+1] == "cm" || toks[i+1] == "centimeter") {
		v /= 100
	}
	return v, true
}

func isWhole(v float64) bool {
	return v >= 0 && v == float64(int(v))
}

// ParseMeasurements extracts room dimensions and opening counts from an
// utterance. Numerals are resolved first, so spoken and digit forms both work.
//
// Labels are bound first: each label takes the free number after it. An
// opening label takes a whole number directly before it instead ("två
// dörrar") when the number after it evidently belongs to the next phrase.
// When a multiplication cue is present, the first three remaining numbers are
// width, length and height; with only two, the second doubles as height. A
// fourth and fifth number become door and window counts. Labeled dimensions
// fill whatever the cue pattern left open. Door and window counts default to 1.
func ParseMeasurements(text string) domain.Measurements {
	toks := measurementTokens(ResolveNumerals(text))
	consumed := make([]bool, len(toks))
	labeled := map[field]float64{}

	for i, tok := range toks {
		f, ok := labelWords[tok]
		if !ok {
			continue
		}
		j := i + 1
		for j < len(toks) && labelLinks[toks[j]] {
			j++
		}
		after, hasAfter := numberAt(toks, j)
		hasAfter = hasAfter && !consumed[j]
		if f == fieldDoors || f == fieldWindows {
			if hasAfter && (j > i+1 || !startsNextPhrase(toks, j+1)) {
				labeled[f] = after
				consumed[j] = true
				continue
			}
			if v, ok := numberAt(toks, i-1); ok && !consumed[i-1] && isWhole(v) {
				labeled[f] = v
				consumed[i-1] = true
				continue
			}
		}
		if hasAfter {
			labeled[f] = after
			consumed[j] = true
		}
	}

	var m domain.Measurements
	if hasMultiplyCue(toks) {
		var free []float64
		for i := range toks {
			if consumed[i] {
				continue
			}
			if v, ok := numberAt(toks, i); ok {
				free = append(free, v)
			}
		}
		switch {
		case len(free) >= 3:
			m.Width, m.Length, m.Height = free[0], free[1], free[2]
		case len(free) == 2:
			m.Width, m.Length, m.Height = free[0], free[1], free[1]
		}
		if len(free) >= 4 && isWhole(free[3]) {
			if _, ok := labeled[fieldDoors]; !ok {
				labeled[fieldDoors] = free[3]
			}
		}
		if len(free) >= 5 && isWhole(free[4]) {
			if _, ok := labeled[fieldWindows]; !ok {
				labeled[fieldWindows] = free[4]
			}
		}
	}

	if m.Width <= 0 {
		m.Width = labeled[fieldWidth]
	}
	if m.Length <= 0 {
		m.Length = labeled[fieldLength]
	}
	if m.Height <= 0 {
		m.Height = labeled[fieldHeight]
	}
	m.Width = positiveOrZero(m.Width)
	m.Length = positiveOrZero(m.Length)
	m.Height = positiveOrZero(m.Height)

	m.Doors = countOrDefault(labeled, fieldDoors)
	m.Windows = countOrDefault(labeled, fieldWindows)
	return m
}

// startsNextPhrase reports whether the token at i shows that the number before
// it belongs elsewhere: it counts another opening ("2 dörrar 1 fönster") or
// starts a dimension product ("1 fönster 4 gånger 5").
func startsNextPhrase(toks []string, i int) bool {
	if i >= len(toks) {
		return false
	}
	if f := labelWords[toks[i]]; f == fieldDoors || f == fieldWindows {
		return true
	}
	return multiplyCues[toks[i]]
}

func hasMultiplyCue(toks []string) bool {
	for _, tok := range toks {
		if multiplyCues[tok] {
			return true
		}
	}
	return false
}

func positiveOrZero(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func countOrDefault(labeled map[field]float64, f field) int {
	v, ok := labeled[f]
	if !ok || !isWhole(v) {
		return 1
	}
	return int(v)
}
