package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

type sampleLine struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type sampleBody struct {
	ServiceType string       `json:"serviceType" validate:"required,oneof=stringing bat-knocking"`
	Lines       []sampleLine `json:"lines" validate:"required,dive"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"serviceType":"stringing","lines":[{"quantity":1}],"extra":1}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "invalid request body" {
		t.Fatalf("expected invalid body error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsNestedFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"serviceType":"tennis","lines":[{"quantity":0}]}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["serviceType"] != "must be one of stringing bat-knocking" {
		t.Fatalf("unexpected serviceType message %q", details["serviceType"])
	}
	if details["lines[0].quantity"] != "must be at least 1" {
		t.Fatalf("unexpected nested message %v", details)
	}
}
