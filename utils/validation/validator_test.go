package validation

import "testing"

func TestValidateSection(t *testing.T) {
	valid := []string{"63_A", "63_B", "1_A", "2024_AB"}
	for _, s := range valid {
		if !ValidateSection(s) {
			t.Errorf("ValidateSection(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"63",
		"_A",
		"63_",
		"63_a",
		"63_ABC",
		"63-A",
		"12345_A",
		"63_A_extra",
		"A_63",
	}
	for _, s := range invalid {
		if ValidateSection(s) {
			t.Errorf("ValidateSection(%q) = true, want false", s)
		}
	}
}

func TestValidateBatch(t *testing.T) {
	valid := []string{"1", "63", "2024"}
	for _, b := range valid {
		if !ValidateBatch(b) {
			t.Errorf("ValidateBatch(%q) = false, want true", b)
		}
	}

	// LIKE wildcards and other non-digits must never reach the query
	invalid := []string{"", "%", "_", "63%", "63_A", "12345", "6a", "-1"}
	for _, b := range invalid {
		if ValidateBatch(b) {
			t.Errorf("ValidateBatch(%q) = true, want false", b)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"student@university.edu",
		"first.last@example.com",
		"user+tag@sub.domain.org",
	}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}

	invalid := []string{"", "a@", "no-at-sign", "user@domain", "@domain.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, errs := ValidatePassword("longenough1"); !ok {
		t.Errorf("expected valid password, got errors: %v", errs)
	}

	if ok, _ := ValidatePassword("short"); ok {
		t.Error("short password accepted")
	}

	if ok, _ := ValidatePassword("12345678"); ok {
		t.Error("password without letters accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  "); got != "hello" {
		t.Errorf("SanitizeString trim = %q", got)
	}
	if got := SanitizeString("a\x00b"); got != "ab" {
		t.Errorf("SanitizeString null byte = %q", got)
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	v := NewValidator()

	if err := v.ValidateStruct(payload{Email: "user@example.com", Name: "Jo"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	err := v.ValidateStruct(payload{Email: "not-an-email", Name: ""})
	if err == nil {
		t.Fatal("invalid struct accepted")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Errorf("expected 2 formatted errors, got %d: %v", len(formatted), formatted)
	}
}
