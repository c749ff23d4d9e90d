package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creative-scribe/internal/domain"
	"creative-scribe/internal/events"
	"creative-scribe/internal/service"
)

func setupProfileRouter(t *testing.T, pub service.Publisher) (*gin.Engine, domain.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := service.NewUserService(zap.NewNop(), newMockUserStore())
	user, err := userSvc.Register(context.Background(), "user@example.com", "", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	h := NewProfileHandler(zap.NewNop(), userSvc, pub)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(authClaimsKey, service.Claims{UserID: user.ID, Email: user.Email})
		c.Next()
	})
	r.GET("/profile", h.GetProfile)
	r.PUT("/profile", h.UpdateProfile)
	r.PUT("/profile/password", h.ChangePassword)
	return r, user
}

func performProfileRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProfileHandlerGetProfile(t *testing.T) {
	r, user := setupProfileRouter(t, &stubPublisher{})

	rec := performProfileRequest(r, http.MethodGet, "/profile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.User.Email != user.Email {
		t.Fatalf("unexpected user: %+v", body.User)
	}
	// El display name por defecto es la parte local del email.
	if body.User.DisplayName != "user" {
		t.Fatalf("unexpected display name: %q", body.User.DisplayName)
	}
}

func TestProfileHandlerUpdateProfile(t *testing.T) {
	pub := &stubPublisher{}
	r, _ := setupProfileRouter(t, pub)

	rec := performProfileRequest(r, http.MethodPut, "/profile", map[string]string{
		"display_name": "Nuevo Nombre",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.User.DisplayName != "Nuevo Nombre" {
		t.Fatalf("unexpected display name: %q", body.User.DisplayName)
	}
	if len(pub.topics) != 1 || pub.topics[0] != events.TopicProfileUpdated {
		t.Fatalf("expected profile.updated publish, got %v", pub.topics)
	}
}

func TestProfileHandlerChangePassword(t *testing.T) {
	r, _ := setupProfileRouter(t, &stubPublisher{})

	t.Run("exige la password actual", func(t *testing.T) {
		rec := performProfileRequest(r, http.MethodPut, "/profile/password", map[string]string{
			"current_password": "equivocada",
			"new_password":     "nueva-password",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("cambio exitoso", func(t *testing.T) {
		rec := performProfileRequest(r, http.MethodPut, "/profile/password", map[string]string{
			"current_password": "password123",
			"new_password":     "nueva-password",
		})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
	})
}
