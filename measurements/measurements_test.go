package measurements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
)

func testSession(t *testing.T, baseURL string) *api.Session {
	t.Helper()
	s, err := api.NewSession(api.WithAPIRoot(baseURL))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestGet_DefaultsUnitSystem(t *testing.T) {
	minFlow := 150.0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("unit-system"); got != "EN" {
			t.Errorf("unit-system = %q, want EN", got)
		}
		if got := q.Get("id-mask"); got != "KEYS*" {
			t.Errorf("id-mask = %q", got)
		}
		if got := q.Get("min-flow"); got != "150" {
			t.Errorf("min-flow = %q", got)
		}
		if q.Has("agency") {
			t.Error("unset agency must be absent")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want v1 media type", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"measurements": []any{}})
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	_, err := Get(context.Background(), s, &Filter{LocationIDMask: "KEYS*", MinFlow: &minFlow})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
}

func TestStore_PostsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fail-if-exists"); got != "true" {
			t.Errorf("fail-if-exists = %q", got)
		}
		var body []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("body is not a JSON list: %v", err)
		}
		if len(body) != 1 || body[0]["number"] != "1001" {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	err := Store(context.Background(), s, []map[string]any{{"number": "1001"}}, true)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
}

func TestStore_RejectsEmptyList(t *testing.T) {
	s := testSession(t, "http://localhost:1")
	err := Store(context.Background(), s, nil, false)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDelete_RequiresLocationAndWindow(t *testing.T) {
	s := testSession(t, "http://localhost:1")
	err := Delete(context.Background(), s, "", "SWT", time.Time{}, time.Time{}, nil)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetTimeExtents_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/measurements/time-extents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("office-mask"); got != "SWT" {
			t.Errorf("office-mask = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"extents": []any{}})
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	if _, err := GetTimeExtents(context.Background(), s, "SWT"); err != nil {
		t.Fatalf("GetTimeExtents failed: %v", err)
	}
}
