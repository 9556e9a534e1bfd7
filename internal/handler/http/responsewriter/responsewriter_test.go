package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_DefaultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write err=%v", err)
	}

	if w.StatusCode() != http.StatusOK {
		t.Errorf("status = %d, want 200", w.StatusCode())
	}
	if w.BytesWritten() != 5 {
		t.Errorf("bytes = %d, want 5", w.BytesWritten())
	}
}

func TestWriteHeader_OnlyFirstCallCounts(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)

	if w.StatusCode() != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.StatusCode())
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("recorder code = %d, want 418", rec.Code)
	}
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	if w.Unwrap() != rec {
		t.Error("Unwrap should return the underlying writer")
	}
}
