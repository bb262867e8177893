package core

import (
	"strings"
	"testing"
)

func TestNewRecordID(t *testing.T) {
	id1 := NewRecordID()
	id2 := NewRecordID()

	if !strings.HasPrefix(id1, RecordIDPrefix+"-") {
		t.Errorf("NewRecordID() = %q, want prefix %q", id1, RecordIDPrefix+"-")
	}
	if id1 == id2 {
		t.Errorf("NewRecordID() produced duplicate IDs: %q", id1)
	}
}

func TestNewDocumentID(t *testing.T) {
	id := NewDocumentID()
	if !strings.HasPrefix(id, DocumentIDPrefix+"-") {
		t.Errorf("NewDocumentID() = %q, want prefix %q", id, DocumentIDPrefix+"-")
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same fingerprint",
			content: "quarterly report",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := Fingerprint(tt.content)
			fp2 := Fingerprint(tt.content)

			if fp1 != fp2 {
				t.Errorf("Fingerprint() produced different digests for same content: %d vs %d", fp1, fp2)
			}
		})
	}
}

func TestFingerprint_Different(t *testing.T) {
	fp1 := Fingerprint("content1")
	fp2 := Fingerprint("content2")

	if fp1 == fp2 {
		t.Errorf("Fingerprint() produced same digest for different content")
	}
}

func TestRecord_FullName(t *testing.T) {
	r := Record{FirstName: "John", LastName: "Doe"}
	if got := r.FullName(); got != "John Doe" {
		t.Errorf("FullName() = %q, want %q", got, "John Doe")
	}
}

func TestDocument_HasEmbedding(t *testing.T) {
	d := Document{}
	if d.HasEmbedding() {
		t.Error("HasEmbedding() = true for document without embedding")
	}

	d.Embedding = []float32{0.1, 0.2}
	if !d.HasEmbedding() {
		t.Error("HasEmbedding() = false for document with embedding")
	}
}
