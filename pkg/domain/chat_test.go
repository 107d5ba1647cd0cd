package domain

import (
	"testing"
	"unicode/utf8"
)

func TestDeriveSessionTitle(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"", "Image Analysis"},
		{"itchy red patch", "itchy red patch"},
		{"a very long first message that keeps going", "a very long first message that"},
		{"exactly thirty characters here", "exactly thirty characters here"},
		{"खुजली और जलन", "खुजली और जलन"},
		{"त्वचा पर लाल खुजली वाले चकत्ते हैं", "त्वचा पर लाल खुजली वाले चकत्ते"},
	}

	for _, test := range tests {
		got := DeriveSessionTitle(test.text)
		if got != test.expected {
			t.Errorf("DeriveSessionTitle(%q) = %q, expected %q", test.text, got, test.expected)
		}
		if !utf8.ValidString(got) {
			t.Errorf("DeriveSessionTitle(%q) produced invalid UTF-8", test.text)
		}
	}
}
