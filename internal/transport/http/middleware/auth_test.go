package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartleave/internal/domain/auth"
)

const testSecret = "test-secret"

func identityProbe(t *testing.T) (http.Handler, *UserContext, *bool) {
	t.Helper()
	var captured UserContext
	var present bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, present = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Auth(testSecret)(handler), &captured, &present
}

func TestAuthAttachesUser(t *testing.T) {
	handler, captured, present := identityProbe(t)

	token, err := auth.GenerateToken(testSecret, auth.Claims{EmpID: 101, Name: "Asha", Role: auth.RoleEmployee}, time.Hour)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !*present {
		t.Fatal("expected user in context")
	}
	if captured.EmpID != 101 || captured.Role != auth.RoleEmployee {
		t.Fatalf("wrong user: %+v", captured)
	}
}

func TestAuthPassesAnonymousThrough(t *testing.T) {
	handler, _, present := identityProbe(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must pass through, got %d", rec.Code)
	}
	if *present {
		t.Fatal("anonymous request must not carry a user")
	}
}

func TestAuthIgnoresGarbageToken(t *testing.T) {
	handler, _, present := identityProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("garbage token must fall through anonymously, got %d", rec.Code)
	}
	if *present {
		t.Fatal("garbage token must not carry a user")
	}
}

func TestRequirePermission(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := Auth(testSecret)(RequirePermission(auth.PermLeaveApprove)(next))

	// No token: 401.
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", rec.Code)
	}

	// Employee lacks the approve permission: 403.
	empToken, _ := auth.GenerateToken(testSecret, auth.Claims{EmpID: 101, Role: auth.RoleEmployee}, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+empToken)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", rec.Code)
	}

	// Manager holds it: 200.
	mgrToken, _ := auth.GenerateToken(testSecret, auth.Claims{EmpID: 201, Role: auth.RoleManager}, time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mgrToken)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d", rec.Code)
	}
}
