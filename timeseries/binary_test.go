package timeseries

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

func TestGetBinary_BuildsWindowQuery(t *testing.T) {
	begin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := begin.Add(24 * time.Hour)
	min := 2.5

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("name"); got != "KEYS.Doc.Inst.1Day.0.Raw" {
			t.Errorf("name = %q", got)
		}
		if got := q.Get("binary-type-mask"); got != "*" {
			t.Errorf("binary-type-mask = %q, want default *", got)
		}
		if got := q.Get("min-attribute"); got != "2.5" {
			t.Errorf("min-attribute = %q", got)
		}
		if q.Has("max-attribute") {
			t.Error("unset max-attribute must be absent")
		}
		if got := q.Get("begin"); got != begin.Format(time.RFC3339) {
			t.Errorf("begin = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"binary-timeseries": map[string]any{}})
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	_, err := GetBinary(context.Background(), s, "KEYS.Doc.Inst.1Day.0.Raw", "SWT", begin, end,
		&BinaryOptions{MinAttribute: &min})
	if err != nil {
		t.Fatalf("GetBinary failed: %v", err)
	}
}

func TestGetBinary_RequiresWindow(t *testing.T) {
	s := testSession(t, "http://localhost:1")
	_, err := GetBinary(context.Background(), s, "KEYS.Doc.Inst.1Day.0.Raw", "SWT", time.Time{}, time.Time{}, nil)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDeleteText_DefaultsModeAndMask(t *testing.T) {
	begin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := begin.Add(time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/timeseries/text/KEYS.Note.Inst.1Hour.0.Raw" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("mode"); got != "REGULAR" {
			t.Errorf("mode = %q, want REGULAR", got)
		}
		if got := q.Get("text-mask"); got != "*" {
			t.Errorf("text-mask = %q, want default *", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	if err := DeleteText(context.Background(), s, "KEYS.Note.Inst.1Hour.0.Raw", "SWT", begin, end, nil); err != nil {
		t.Fatalf("DeleteText failed: %v", err)
	}
}

func TestGetText_RejectsUnknownMode(t *testing.T) {
	begin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s := testSession(t, "http://localhost:1")
	_, err := GetText(context.Background(), s, "id", "SWT", begin, begin.Add(time.Hour),
		&TextOptions{Mode: TextMode("FANCY")})
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
