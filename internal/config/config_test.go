package config_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shekhar1luitel/quizHub-sub001/internal/config"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	config.JSON(rec, http.StatusCreated, map[string]int{"count": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["count"] != 3 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	config.Detail(rec, http.StatusBadRequest, "File is empty.")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["detail"] != "File is empty." {
		t.Errorf("unexpected detail: %q", body["detail"])
	}
}

func TestWithContextCarriesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	entry := config.WithContext(ctx)
	if entry.Data["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", entry.Data["request_id"])
	}
}
