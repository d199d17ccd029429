package locations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

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

func TestGet_TabulatesNestedLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/locations" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("office"); got != "SWT" {
			t.Errorf("office = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"locations": map[string]any{
				"locations": []any{
					map[string]any{"name": "KEYS", "office-id": "SWT"},
					map[string]any{"name": "TULA", "office-id": "SWT"},
				},
			},
		})
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	d, err := Get(context.Background(), s, &Filter{Office: "SWT"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	table, err := d.Table()
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	if table.NumRows() != 2 {
		t.Errorf("expected 2 rows, got %d", table.NumRows())
	}
	if got := table.Rows[0][table.Column("name")]; got != "KEYS" {
		t.Errorf("name cell = %v", got)
	}
}

func TestGetOne_RequiresNameAndOffice(t *testing.T) {
	s := testSession(t, "http://localhost:1")
	var ve *api.ValidationError
	if _, err := GetOne(context.Background(), s, "", "SWT", ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if _, err := GetOne(context.Background(), s, "KEYS", "", ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestDelete_SendsCascadeFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/locations/KEYS" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("cascade-delete"); got != "true" {
			t.Errorf("cascade-delete = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	if err := Delete(context.Background(), s, "KEYS", "SWT", true); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
