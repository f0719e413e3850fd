package gmail

import (
	"context"
	"encoding/base64"
	"mime"
	"strings"
	"testing"
)

func TestEncodeSubjectASCIIPassThrough(t *testing.T) {
	subject := "Daily Newsletter - Monday Edition"
	if got := encodeSubject(subject); got != subject {
		t.Errorf("ASCII subject must pass through unchanged, got %q", got)
	}
}

func TestEncodeSubjectNonASCII(t *testing.T) {
	subject := "Good Morning Alice! ✨ Your Daily Dose"
	got := encodeSubject(subject)

	if !strings.Contains(got, "=?UTF-8?b?") && !strings.Contains(got, "=?UTF-8?B?") {
		t.Fatalf("expected RFC 2047 encoded words, got %q", got)
	}

	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(got)
	if err != nil {
		t.Fatalf("encoded subject does not decode: %v", err)
	}
	if decoded != subject {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, subject)
	}
}

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage("sender@example.com", "alice@example.com", "Hello Alice", "<p>Hi</p>")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("raw message is not base64url: %v", err)
	}
	email := string(decoded)

	lines := strings.Split(email, "\r\n")
	wantHeaders := []string{
		"To: alice@example.com",
		"From: sender@example.com",
		"Subject: Hello Alice",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
	}
	if len(lines) < len(wantHeaders)+1 {
		t.Fatalf("unexpected envelope shape: %q", email)
	}
	for i, want := range wantHeaders {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
	if body := strings.Join(lines[len(wantHeaders):], "\r\n"); body != "<p>Hi</p>" {
		t.Errorf("body = %q, want the HTML payload", body)
	}
}

func TestBuildRawMessageEncodesSubject(t *testing.T) {
	raw := buildRawMessage("sender@example.com", "alice@example.com", "Céline ✨", "<p>Hi</p>")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("raw message is not base64url: %v", err)
	}
	email := string(decoded)

	if strings.Contains(email, "Subject: Céline") {
		t.Error("non-ASCII subject leaked into the envelope unencoded")
	}
	if !strings.Contains(email, "Subject: =?UTF-8?") {
		t.Errorf("expected an encoded Subject header, got %q", email)
	}
}

func TestNewClientRequiresSender(t *testing.T) {
	_, err := NewClient(context.Background(), Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "tok"})
	if err == nil {
		t.Fatal("expected an error when the sender address is missing")
	}
}
