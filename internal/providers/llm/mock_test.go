package llm

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMockEchoesTextSection(t *testing.T) {
	m := &MockClient{}
	out, err := m.GenerateText(context.Background(), "Summarize the following document.\n\nText:\nhello world")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "(mock summary) ") {
		t.Errorf("missing mock prefix: %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("text section not echoed: %q", out)
	}
}

func TestMockTruncatesLongText(t *testing.T) {
	m := &MockClient{}
	long := strings.Repeat("x", 1000)
	out, err := m.GenerateText(context.Background(), "Text:\n"+long)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) > len("(mock summary) ")+410 {
		t.Errorf("output not truncated, len = %d", len(out))
	}
}

func TestMockTruncatesOnRuneBoundary(t *testing.T) {
	m := &MockClient{}
	long := strings.Repeat("é", 500) // 2 bytes each, 400 lands mid-rune
	out, err := m.GenerateText(context.Background(), "Text:\n"+long)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(out) {
		t.Errorf("truncated output is not valid UTF-8: %q", out)
	}
}
