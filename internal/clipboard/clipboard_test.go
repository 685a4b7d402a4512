package clipboard

import (
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	m := &Memory{Text: "initial"}

	if err := m.WriteAll(""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("WriteAll(\"\") error = %v; want ErrEmptyText", err)
	}
	if m.Writes != 0 {
		t.Fatalf("Writes = %d after rejected write; want 0", m.Writes)
	}

	if err := m.WriteAll("nouveau"); err != nil {
		t.Fatalf("WriteAll unexpected error: %v", err)
	}
	got, err := m.ReadAll()
	if err != nil || got != "nouveau" {
		t.Fatalf("ReadAll() = %q, %v; want %q, nil", got, err, "nouveau")
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		clip *Memory
		text string
		want bool
	}{
		{"identical", &Memory{Text: "abc"}, "abc", true},
		{"different", &Memory{Text: "abc"}, "abd", false},
		{"read error", &Memory{Text: "abc", ReadErr: errors.New("boom")}, "abc", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equals(tc.clip, tc.text); got != tc.want {
				t.Fatalf("Equals(%q) = %v; want %v", tc.text, got, tc.want)
			}
		})
	}
}
