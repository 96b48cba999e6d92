package domain

import "testing"

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"none placeholder", "None", "6adf97f83acf6453d4a6a4b1070f3754"},
		{"artist name", "Daft Punk", "8ee2c0adee9548498ef22cba1e90a49c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveID(tt.input)
			if result != tt.expected {
				t.Errorf("DeriveID(%q) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDeriveID_Deterministic(t *testing.T) {
	inputs := []string{"", "Abbey Road", "abbey road", "Abbey Road "}

	for _, in := range inputs {
		if DeriveID(in) != DeriveID(in) {
			t.Errorf("DeriveID(%q) not deterministic", in)
		}
	}

	// Distinct inputs should produce distinct ids.
	seen := map[string]string{}
	for _, in := range inputs {
		id := DeriveID(in)
		if prev, ok := seen[id]; ok {
			t.Errorf("DeriveID collision: %q and %q both map to %s", prev, in, id)
		}
		seen[id] = in
	}
}
