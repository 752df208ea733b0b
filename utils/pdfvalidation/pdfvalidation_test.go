package pdfvalidation

import (
	"strings"
	"testing"
)

func TestValidatePDFBytesRejectsNonPDF(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("plain text, not a pdf"), SlideLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("non-PDF content validated")
	}
	if !strings.Contains(result.Error, "PDF header") {
		t.Errorf("error = %q, want header complaint", result.Error)
	}
}

func TestValidatePDFBytesRejectsOversized(t *testing.T) {
	limits := PDFLimits{MaxFileSizeMB: 1, MaxPages: 10, DocumentTypeName: "test"}
	big := make([]byte, 2*1024*1024)
	copy(big, []byte("%PDF-1.4"))

	result, err := ValidatePDFBytes(big, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("oversized content validated")
	}
	if !strings.Contains(result.Error, "maximum allowed size") {
		t.Errorf("error = %q, want size complaint", result.Error)
	}
}

func TestSanitizePDFTrimsTrailingGarbage(t *testing.T) {
	content := []byte("%PDF-1.4\nsome body\n%%EOF\ngarbage after marker")
	cleaned := sanitizePDF(content)

	if strings.Contains(string(cleaned), "garbage") {
		t.Errorf("trailing garbage survived: %q", cleaned)
	}
	if !strings.HasSuffix(strings.TrimRight(string(cleaned), "\r\n"), "%%EOF") {
		t.Errorf("cleaned content does not end at EOF marker: %q", cleaned)
	}
}

func TestSanitizePDFLeavesCleanContent(t *testing.T) {
	content := []byte("%PDF-1.4\nsome body\n%%EOF\n")
	cleaned := sanitizePDF(content)
	if string(cleaned) != string(content) {
		t.Errorf("clean content modified: %q", cleaned)
	}
}
