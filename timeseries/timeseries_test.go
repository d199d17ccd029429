package timeseries

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

// valuesDoc builds a v2 timeseries response covering hourly samples over
// [begin, end].
func valuesDoc(begin, end time.Time) map[string]any {
	var values []any
	for ts := begin; !ts.After(end); ts = ts.Add(time.Hour) {
		values = append(values, []any{float64(ts.UnixMilli()), 615.2, 0})
	}
	return map[string]any{
		"name":  "KEYS.Elev.Inst.1Hour.0.Ccp-Rev",
		"units": "ft",
		"value-columns": []any{
			map[string]any{"name": "date-time"},
			map[string]any{"name": "value"},
			map[string]any{"name": "quality-code"},
		},
		"values": values,
	}
}

func TestGet_TenDayWindow(t *testing.T) {
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	begin := end.AddDate(0, 0, -10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "KEYS.Elev.Inst.1Hour.0.Ccp-Rev" {
			t.Errorf("unexpected name: %s", q.Get("name"))
		}
		if q.Get("office") != "SWT" {
			t.Errorf("unexpected office: %s", q.Get("office"))
		}
		if q.Get("unit") != "EN" {
			t.Errorf("expected default unit EN, got %s", q.Get("unit"))
		}
		if q.Get("begin") == "" || q.Get("end") == "" {
			t.Error("begin and end must be sent")
		}
		_ = json.NewEncoder(w).Encode(valuesDoc(begin, end))
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	d, err := Get(context.Background(), s, "KEYS.Elev.Inst.1Hour.0.Ccp-Rev", "SWT", &GetOptions{
		Begin: begin,
		End:   end,
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	table, err := d.Table()
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	wantRows := 10*24 + 1
	if table.NumRows() != wantRows {
		t.Fatalf("expected %d hourly rows, got %d", wantRows, table.NumRows())
	}

	timeCol := table.Column("date-time")
	first := table.Rows[0][timeCol].(time.Time)
	last := table.Rows[table.NumRows()-1][timeCol].(time.Time)
	if !first.Equal(begin) {
		t.Errorf("first row = %v, want %v", first, begin)
	}
	if last.After(end) {
		t.Errorf("last row %v is after the window end %v", last, end)
	}
}

func TestGet_FollowsPagination(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := valuesDoc(base, base.Add(2*time.Hour))
		if r.URL.Query().Get("page") == "" {
			doc["next-page"] = "cursor-1"
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	d, err := Get(context.Background(), s, "KEYS.Elev.Inst.1Hour.0.Ccp-Rev", "SWT", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	table, err := d.Table()
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	if table.NumRows() != 6 {
		t.Errorf("expected 6 rows across 2 pages, got %d", table.NumRows())
	}
}

func TestGet_RequiresNameAndOffice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid parameters")
	}))
	defer srv.Close()

	s := testSession(t, srv.URL)
	_, err := Get(context.Background(), s, "", "SWT", nil)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	_, err = Get(context.Background(), s, "KEYS.Elev.Inst.1Hour.0.Ccp-Rev", "", nil)
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddRow_ParsesCommonFormats(t *testing.T) {
	var ts TimeSeries
	for _, in := range []string{
		"2024-06-01T12:00:00Z",
		"2024-06-01 12:00:00",
		"06/01/2024 12:00",
	} {
		if err := ts.AddRow(in, 1.5, 0); err != nil {
			t.Fatalf("AddRow(%q) failed: %v", in, err)
		}
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range ts.Values {
		if !v.DateTime.Equal(want) {
			t.Errorf("values[%d].DateTime = %v, want %v", i, v.DateTime, want)
		}
	}
	if err := ts.AddRow("not a date", 1.5, 0); err == nil {
		t.Error("expected error for unparseable date-time")
	}
}

func TestValue_MarshalsAsArray(t *testing.T) {
	v := Value{
		DateTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Value:    615.2,
		Quality:  0,
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(raw) != `["2024-06-01T12:00:00Z",615.2,0]` {
		t.Errorf("unexpected wire form: %s", raw)
	}
}

func TestStore_SendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if doc["name"] != "KEYS.Elev.Inst.1Hour.0.Ccp-Rev" {
			t.Errorf("unexpected name in body: %v", doc["name"])
		}
		if r.URL.Query().Get("store-rule") != "REPLACE_ALL" {
			t.Errorf("unexpected store-rule: %s", r.URL.Query().Get("store-rule"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ts := TimeSeries{
		Name:     "KEYS.Elev.Inst.1Hour.0.Ccp-Rev",
		OfficeID: "SWT",
		Units:    "ft",
	}
	if err := ts.AddRow("2024-06-01T12:00:00Z", 615.2, 0); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}

	s := testSession(t, srv.URL)
	if err := Store(context.Background(), s, ts, &StoreOptions{StoreRule: "REPLACE_ALL"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
}

func TestGetGroups_IncludesAssignedByDefault(t *testing.T) {
	for name, filter := range map[string]*GroupsFilter{
		"nil filter":      nil,
		"office only":     {Office: "SWT"},
		"exclude opt-out": {Office: "SWT", ExcludeAssigned: true},
	} {
		want := "true"
		if filter != nil && filter.ExcludeAssigned {
			want = "false"
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("include-assigned"); got != want {
				t.Errorf("%s: include-assigned = %q, want %q", name, got, want)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{})
		}))

		s := testSession(t, srv.URL)
		if _, err := GetGroups(context.Background(), s, filter); err != nil {
			t.Errorf("%s: GetGroups failed: %v", name, err)
		}
		srv.Close()
	}
}

func TestStore_RejectsEmptyValues(t *testing.T) {
	s := testSession(t, "http://localhost:1")
	err := Store(context.Background(), s, TimeSeries{
		Name:     "KEYS.Elev.Inst.1Hour.0.Ccp-Rev",
		OfficeID: "SWT",
		Units:    "ft",
	}, nil)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty values, got %v", err)
	}
}
