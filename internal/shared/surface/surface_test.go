package surface

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want Type
	}{
		{"måla väggarna", Wall},
		{"grundmåla taket", Ceiling},
		{"måla taklisterna", Trim},
		{"slipa golvet", Floor},
		{"lacka dörrarna", Door},
		{"måla dörrfoder", Trim},
		{"tvätta fönstren", Window},
		{"måla om allt", Unknown},
		{"taklampa", Unknown},
	}
	for _, tc := range tests {
		if got := Detect(tc.text); got != tc.want {
			t.Errorf("Detect(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	if Parse("Wall") != Wall {
		t.Fatal("expected canonical name to parse case-insensitively")
	}
	if Parse("tak") != Ceiling {
		t.Fatal("expected Swedish alias to parse")
	}
	if Parse("roof") != Unknown {
		t.Fatal("expected unknown value to yield Unknown")
	}
}
