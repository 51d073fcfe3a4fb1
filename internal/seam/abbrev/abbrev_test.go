package abbrev

import "testing"

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"title Mr.", "Hello Mr.", true},
		{"title Dr.", "Examined by Dr.", true},
		{"title Prof.", "Invited Prof.", true},
		{"single capital", "See S.", true},
		{"single capital lowercase miss", "see s.", false},
		{"geographic U.S.A.", "Born in U.S.A.", true},
		{"measurement ft.", "It was 6 ft.", true},
		{"not an abbreviation", "This is one.", false},
		{"empty", "", false},
		{"no trailing period", "Mr", false},
		{"bare period", ".", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is([]byte(tt.text)); got != tt.want {
				t.Errorf("Is(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsNeverPanics(t *testing.T) {
	inputs := []string{"", ".", "...", "AAAAAAAAAAAAAAAAAA.", "123."}
	for _, in := range inputs {
		Is([]byte(in))
	}
}
