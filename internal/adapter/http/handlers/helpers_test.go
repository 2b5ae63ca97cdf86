package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(ActorHeader, "ana")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, code string) {
	t.Helper()
	if got := decodeBody(t, w)["code"]; got != code {
		t.Fatalf("expected code %s, got %v", code, got)
	}
}

type countingRecorder struct {
	invoices map[string]int
	payments int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{invoices: map[string]int{}}
}

func (r *countingRecorder) InvoiceGenerated(source string) { r.invoices[source]++ }
func (r *countingRecorder) PaymentRecorded()              { r.payments++ }

func init() {
	gin.SetMode(gin.TestMode)
}
