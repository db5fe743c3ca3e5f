package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
)

type samplePayload struct {
	ID     string `json:"id" validate:"required"`
	CNIC   string `json:"cnic" validate:"omitempty,cnic"`
	Mobile string `json:"mobile" validate:"omitempty,pkphone"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest samplePayload
	return DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBodyValid(t *testing.T) {
	if err := decode(t, `{"id":"user-1","cnic":"3520212345678","mobile":"03001234567"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	err := decode(t, `{"id":"user-1","bogus":true}`)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestCNICRule(t *testing.T) {
	bad := []string{"123", "35202123456789", "35202x2345678"}
	for _, cnic := range bad {
		if err := decode(t, `{"id":"user-1","cnic":"`+cnic+`"}`); err == nil {
			t.Fatalf("expected cnic %q to fail", cnic)
		}
	}
}

func TestPhoneRule(t *testing.T) {
	if err := decode(t, `{"id":"user-1","mobile":"0300123"}`); err == nil {
		t.Fatal("expected short mobile to fail")
	}
	if err := decode(t, `{"id":"user-1","mobile":"03001234567"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidationDetailsNameFields(t *testing.T) {
	err := decode(t, `{"cnic":"123"}`)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, present := details["id"]; !present {
		t.Fatalf("expected id in details, got %v", details)
	}
	if _, present := details["cnic"]; !present {
		t.Fatalf("expected cnic in details, got %v", details)
	}
}
