package service

import "strings"

// donePhrases end task collection. An utterance counts as done only when
// nothing but these phrases and filler words remain, so "måla klart taket"
// is still a task.
var donePhrases = map[string]bool{
	"klar":         true,
	"klart":        true,
	"klara":        true,
	"färdig":       true,
	"färdigt":      true,
	"färdiga":      true,
	"slut":         true,
	"det allt":     true,
	"det var allt": true,
	"det var det":  true,
	"det räcker":   true,
	"inget mer":    true,
	"inga fler":    true,
	"inga mer":     true,
}

var doneFillers = map[string]bool{
	"ok":   true,
	"okej": true,
	"nej":  true,
	"då":   true,
	"tack": true,
	"så":   true,
	"ja":   true,
	"nu":   true,
	"jag":  true,
	"är":   true,
	"vi":   true,
}

var affirmativeWords = map[string]bool{
	"ja":        true,
	"japp":      true,
	"jajamän":   true,
	"jo":        true,
	"stämmer":   true,
	"korrekt":   true,
	"rätt":      true,
	"okej":      true,
	"ok":        true,
	"bekräfta":  true,
	"bekräftar": true,
	"absolut":   true,
	"visst":     true,
	"precis":    true,
	"kör":       true,
}

var negationWords = map[string]bool{
	"nej":  true,
	"inte": true,
	"fel":  true,
}

var noneWords = map[string]bool{
	"nej":   true,
	"inget": true,
	"inga":  true,
	"ingen": true,
}

var addMoreWords = map[string]bool{
	"fler":        true,
	"mer":         true,
	"glömde":      true,
	"komplettera": true,
}

func words(utterance string) []string {
	fields := strings.Fields(utterance)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.Trim(f, ".,!?;:"); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// contentWords drops filler words.
func contentWords(utterance string) []string {
	var kept []string
	for _, w := range words(utterance) {
		if !doneFillers[w] {
			kept = append(kept, w)
		}
	}
	return kept
}

func isDone(utterance string) bool {
	kept := contentWords(utterance)
	return len(kept) > 0 && donePhrases[strings.Join(kept, " ")]
}

func wantsMore(utterance string) bool {
	if strings.Contains(utterance, "lägg till") || strings.Contains(utterance, "lägga till") {
		return true
	}
	for _, w := range words(utterance) {
		if addMoreWords[w] {
			return true
		}
	}
	return false
}

// declinesMore reports whether the utterance turns down further tasks, either
// as a done phrase or as "inget mer"/"inga fler" within a longer answer.
func declinesMore(utterance string) bool {
	if isDone(utterance) {
		return true
	}
	ws := words(utterance)
	for i, w := range ws {
		if !noneWords[w] {
			continue
		}
		for _, next := range ws[i+1 : min(i+3, len(ws))] {
			if next == "mer" || next == "fler" {
				return true
			}
		}
	}
	return false
}

// vetoed reports a rejection that is not part of declining more tasks.
func vetoed(utterance string) bool {
	for _, w := range words(utterance) {
		if w == "inte" || w == "fel" {
			return true
		}
	}
	return false
}

func isAffirmative(utterance string) bool {
	affirmed := false
	for _, w := range words(utterance) {
		if negationWords[w] {
			return false
		}
		if affirmativeWords[w] {
			affirmed = true
		}
	}
	return affirmed
}
