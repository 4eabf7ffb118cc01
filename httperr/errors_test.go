package httperr

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessageWithoutDetail(t *testing.T) {
	e := New(InvalidRequestLine, 7, false, []byte("garbage"))
	if e.Detail != "" {
		t.Fatalf("Detail = %q, want empty when showDetails=false", e.Detail)
	}
	if !strings.Contains(e.Error(), "InvalidRequestLine") {
		t.Fatalf("Error() = %q, want it to mention the reason", e.Error())
	}
	if !strings.Contains(e.Error(), "7") {
		t.Fatalf("Error() = %q, want it to mention the position", e.Error())
	}
}

func TestErrorMessageWithDetail(t *testing.T) {
	e := New(InvalidRequestHeader, 3, true, []byte("Bad\x00Header"))
	if e.Detail == "" {
		t.Fatal("Detail is empty, want an escaped excerpt when showDetails=true")
	}
	if !strings.Contains(e.Detail, `\x00`) {
		t.Fatalf("Detail = %q, want a \\x00 escape for the NUL byte", e.Detail)
	}
}

func TestEscapeASCIITruncates(t *testing.T) {
	big := strings.Repeat("a", MaxExceptionDetailSize+50)
	got := EscapeASCII([]byte(big), MaxExceptionDetailSize)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("EscapeASCII over the max did not truncate: %q", got)
	}
	if len(got) > MaxExceptionDetailSize+3 {
		t.Fatalf("EscapeASCII result too long: %d bytes", len(got))
	}
}

func TestEscapeASCIIPassesThroughPrintable(t *testing.T) {
	got := EscapeASCII([]byte("hello world"), 128)
	if got != "hello world" {
		t.Fatalf("EscapeASCII(%q) = %q, want unchanged", "hello world", got)
	}
}

func TestParseErrorIsByReason(t *testing.T) {
	e := New(UnrecognizedHTTPVersion, 20, false, nil)
	if !errors.Is(e, Sentinel(UnrecognizedHTTPVersion)) {
		t.Fatal("errors.Is should match on Reason via ParseError.Is")
	}
	if errors.Is(e, Sentinel(InvalidRequestLine)) {
		t.Fatal("errors.Is matched the wrong reason")
	}
}

func TestReasonString(t *testing.T) {
	cases := map[Reason]string{
		InvalidRequestLine:          "InvalidRequestLine",
		InvalidRequestHeader:        "InvalidRequestHeader",
		InvalidRequestHeadersNoCRLF: "InvalidRequestHeadersNoCRLF",
		UnrecognizedHTTPVersion:     "UnrecognizedHTTPVersion",
	}
	for reason, want := range cases {
		if got := reason.String(); got != want {
			t.Errorf("Reason(%d).String() = %q, want %q", reason, got, want)
		}
	}
}
