package falconbridge

import (
	"reflect"
	"testing"
)

func TestErrorResult(t *testing.T) {
	r := ErrorResult("boom", 0, nil)
	if r.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", r.StatusCode)
	}
	if r.Headers == nil {
		t.Error("Headers = nil")
	}
	if got := r.Errors(); !reflect.DeepEqual(got, []string{"boom"}) {
		t.Errorf("Errors() = %v", got)
	}
	if res := r.Resources(); res == nil || len(res) != 0 {
		t.Errorf("Resources() = %v, want empty", res)
	}
	if r.OK() {
		t.Error("OK() = true")
	}
}

func TestOKResult(t *testing.T) {
	r := OKResult(NoContentMessage, 204, map[string]string{"X-A": "b"})
	if r.StatusCode != 204 || !r.OK() {
		t.Errorf("StatusCode = %d, OK = %v", r.StatusCode, r.OK())
	}
	body := r.Body.(map[string]any)
	if body["message"] != NoContentMessage {
		t.Errorf("message = %v", body["message"])
	}
	if len(r.Errors()) != 0 {
		t.Errorf("Errors() = %v", r.Errors())
	}
}

func TestResultDecode(t *testing.T) {
	r := &Result{StatusCode: 200, Body: map[string]any{"resources": []any{map[string]any{"id": "a"}}}}
	var out struct {
		Resources []struct {
			ID string `json:"id"`
		} `json:"resources"`
	}
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(out.Resources) != 1 || out.Resources[0].ID != "a" {
		t.Errorf("Decode() = %+v", out)
	}
}

func TestResponseStatusCode(t *testing.T) {
	if got := (&Response{Raw: []byte("x")}).StatusCode(); got != 200 {
		t.Errorf("raw StatusCode() = %d", got)
	}
	if got := (&Response{Envelope: ErrorResult("x", 405, nil)}).StatusCode(); got != 405 {
		t.Errorf("envelope StatusCode() = %d", got)
	}
}
