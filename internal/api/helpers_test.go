package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gadgetd/internal/auth"
	"gadgetd/internal/db"
	"gadgetd/internal/models"
)

func newTestAPI(t *testing.T) (*API, http.Handler) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	if err := db.Migrate(context.Background(), database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens, err := auth.NewTokenService("test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	a, err := New(database, tokens, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	routes, err := a.Routes()
	if err != nil {
		t.Fatalf("Routes() error = %v", err)
	}

	return a, routes
}

func issueToken(t *testing.T, a *API, role models.Role) string {
	t.Helper()
	token, err := a.tokens.Issue(uuid.New(), role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func seedGadget(t *testing.T, a *API, name string, status models.GadgetStatus) models.Gadget {
	t.Helper()

	now := time.Now().UTC()
	gadget := models.Gadget{
		ID:        uuid.New(),
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.db.Create(&gadget).Error; err != nil {
		t.Fatalf("seed gadget: %v", err)
	}
	return gadget
}
