package parser

import "testing"

func TestResolveNumerals(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fyra gånger fem gånger två och en halv", "4 gånger 5 gånger 2.5"},
		{"tre och en halv gånger fyra gånger två och en halv", "3.5 gånger 4 gånger 2.5"},
		{"fyra och femtio", "4.50"},
		{"två och trettio fem", "2.35"},
		{"två och tjugofem", "2.25"},
		{"två och femton", "2.15"},
		{"fyra och 50", "4.50"},
		{"två komma fem", "2.5"},
		{"två komma fyrtio", "2.40"},
		{"halvannan meter", "1.5 meter"},
		{"en halv", "0.5"},
		{"2 och halv", "2.5"},
		{"tolv gånger sjutton", "12 gånger 17"},
		{"tjugofem", "25"},
		{"måla väggarna två lager.", "måla väggarna 2 lager"},
		{"4 gånger 5 gånger 2,5", "4 gånger 5 gånger 2,5"},
		{"inga siffror här", "inga siffror här"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ResolveNumerals(tc.in); got != tc.want {
			t.Errorf("ResolveNumerals(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveNumeralsIsIdempotentOnDigits(t *testing.T) {
	once := ResolveNumerals("fyra och femtio gånger tre gånger två och en halv")
	if twice := ResolveNumerals(once); twice != once {
		t.Fatalf("expected second pass to be a no-op, got %q then %q", once, twice)
	}
}

func TestNumeralRulePrecedence(t *testing.T) {
	want := []string{"metre_and_centimetres", "decimal_komma", "and_a_half", "halvannan", "lone_half", "numeral_word"}
	if len(numeralRules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(numeralRules))
	}
	for i, name := range want {
		if numeralRules[i].name != name {
			t.Fatalf("expected rule %d to be %s, got %s", i, name, numeralRules[i].name)
		}
	}
}

func TestWordValue(t *testing.T) {
	tests := map[string]int{
		"noll": 0, "ett": 1, "nio": 9, "elva": 11, "nitton": 19,
		"tjugo": 20, "fyrtiotvå": 42, "femti": 50, "nittionio": 99,
	}
	for word, want := range tests {
		got, ok := wordValue(word)
		if !ok || got != want {
			t.Errorf("wordValue(%q) = %d, %v; want %d", word, got, ok, want)
		}
	}
	if _, ok := wordValue("tjugonoll"); ok {
		t.Fatal("expected tens joined with zero to be rejected")
	}
	if _, ok := wordValue("vägg"); ok {
		t.Fatal("expected ordinary word to be rejected")
	}
}
