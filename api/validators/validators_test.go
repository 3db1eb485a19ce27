package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/izishop-backend/pkg/errors"
)

type addBody struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest addBody
	return DecodeJSONBody(httptest.NewRecorder(), r, &dest)
}

func TestDecodeJSONBody(t *testing.T) {
	if err := decode(t, `{"product_id":"1","quantity":2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]string{
		"empty":         ``,
		"malformed":     `{"product_id":`,
		"unknown field": `{"product_id":"1","quantity":1,"colour":"red"}`,
		"zero quantity": `{"product_id":"1","quantity":0}`,
		"missing id":    `{"quantity":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			err := decode(t, body)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidationDetailsNameJSONFields(t *testing.T) {
	err := decode(t, `{"product_id":"","quantity":0}`)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["quantity"] != "must be at least 1" || details["product_id"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestParseQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?n=3&bad=x&big=99&flag=1&nope=maybe", nil)

	if v, err := ParseQueryInt(r, "n", 4, 0, 10); err != nil || v != 3 {
		t.Fatalf("expected 3, got %d err=%v", v, err)
	}
	if v, err := ParseQueryInt(r, "absent", 4, 0, 10); err != nil || v != 4 {
		t.Fatalf("expected default 4, got %d err=%v", v, err)
	}
	if _, err := ParseQueryInt(r, "bad", 4, 0, 10); err == nil {
		t.Fatal("expected non-numeric error")
	}
	if _, err := ParseQueryInt(r, "big", 4, 0, 10); err == nil {
		t.Fatal("expected range error")
	}
	if v, err := ParseQueryBool(r, "flag", false); err != nil || !v {
		t.Fatalf("expected true, got %v err=%v", v, err)
	}
	if _, err := ParseQueryBool(r, "nope", false); err == nil {
		t.Fatal("expected boolean error")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  café\x00 lampe \n", 0); got != "café lampe" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
	if got := SanitizeString("héhéhé", 3); got != "héh" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
