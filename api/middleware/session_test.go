package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func captureSession(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var got string
	handler := Session(SessionOptions{CookieName: "izishop_session"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionIDFromContext(r.Context())
	}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return got, resp
}

func TestSessionMintsCookie(t *testing.T) {
	sid, resp := captureSession(t, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("expected generated uuid, got %q", sid)
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != sid {
		t.Fatalf("expected session cookie %q, got %+v", sid, cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected HttpOnly lax cookie, got %+v", cookies[0])
	}
	if resp.Header().Get(SessionHeader) != sid {
		t.Fatalf("expected session header echo")
	}
}

func TestSessionReusesCookie(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "izishop_session", Value: existing})

	sid, _ := captureSession(t, req)
	if sid != existing {
		t.Fatalf("expected %q got %q", existing, sid)
	}
}

func TestSessionHeaderWinsWithoutCookie(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(SessionHeader, existing)

	sid, resp := captureSession(t, req)
	if sid != existing {
		t.Fatalf("expected %q got %q", existing, sid)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatalf("expected no cookie for header clients")
	}
}

func TestSessionReplacesInvalidValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "izishop_session", Value: "../../etc"})

	sid, _ := captureSession(t, req)
	if sid == "../../etc" {
		t.Fatalf("expected invalid session to be replaced")
	}
	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("expected uuid, got %q", sid)
	}
}

func TestSessionMarksMintedIDs(t *testing.T) {
	var minted []bool
	handler := Session(SessionOptions{CookieName: "izishop_session"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		minted = append(minted, SessionMintedFromContext(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	returning := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	returning.AddCookie(&http.Cookie{Name: "izishop_session", Value: uuid.NewString()})
	handler.ServeHTTP(httptest.NewRecorder(), returning)

	if len(minted) != 2 || !minted[0] || minted[1] {
		t.Fatalf("expected only the cookieless request to be minted, got %v", minted)
	}
}
