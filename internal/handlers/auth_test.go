package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gridsense/internal/service"
)

func postJSON(t *testing.T, r http.Handler, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123", parseID: 1}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(t, r, "/auth/sign-up", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 {
		t.Fatalf("expected id=42, got %v", m["id"])
	}
	if auth.lastSignUpUsername != "u" || auth.lastSignUpPassword != "p" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastSignUpUsername, auth.lastSignUpPassword)
	}

	w = postJSON(t, r, "/auth/sign-in", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
}

func TestAuthHandlers_Failures(t *testing.T) {
	cases := []struct {
		name string
		auth *mockAuth
		path string
		body string
		want int
	}{
		{name: "sign-in bad body", auth: &mockAuth{}, path: "/auth/sign-in", body: `{"username":1}`, want: http.StatusBadRequest},
		{name: "sign-up missing password", auth: &mockAuth{}, path: "/auth/sign-up", body: `{"username":"u"}`, want: http.StatusBadRequest},
		{name: "sign-up disabled", auth: &mockAuth{signUpErr: service.ErrSignUpDisabled}, path: "/auth/sign-up", body: `{"username":"u","password":"p"}`, want: http.StatusForbidden},
		{name: "sign-up duplicate", auth: &mockAuth{signUpErr: errors.New("UNIQUE constraint failed")}, path: "/auth/sign-up", body: `{"username":"u","password":"p"}`, want: http.StatusBadRequest},
		{name: "sign-in wrong password", auth: &mockAuth{genTokenErr: service.ErrInvalidPassword}, path: "/auth/sign-in", body: `{"username":"u","password":"x"}`, want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := postJSON(t, r, tc.path, tc.body, nil)
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
