package model

import "testing"

func TestBatchFromSection(t *testing.T) {
	cases := []struct {
		section string
		want    string
	}{
		{"63_A", "63"},
		{"63_B", "63"},
		{"2_AB", "2"},
		{"63", "63"},
		{"", ""},
	}

	for _, c := range cases {
		if got := BatchFromSection(c.section); got != c.want {
			t.Errorf("BatchFromSection(%q) = %q, want %q", c.section, got, c.want)
		}
	}
}

func TestMakeSection(t *testing.T) {
	if got := MakeSection("63", "A"); got != "63_A" {
		t.Errorf("MakeSection(63, A) = %q, want 63_A", got)
	}
}

func TestSemesterSectionHelpers(t *testing.T) {
	s := Semester{Section: "63_A"}

	if got := s.Batch(); got != "63" {
		t.Errorf("Batch() = %q, want 63", got)
	}
	if got := s.SectionLetter(); got != "A" {
		t.Errorf("SectionLetter() = %q, want A", got)
	}

	// No separator: batch falls back to the whole string, letter is empty
	s.Section = "63"
	if got := s.Batch(); got != "63" {
		t.Errorf("Batch() = %q, want 63", got)
	}
	if got := s.SectionLetter(); got != "" {
		t.Errorf("SectionLetter() = %q, want empty", got)
	}
}
