package api

import (
	"errors"
	"net/url"
	"testing"
)

func TestNewSession_Defaults(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.APIRoot() != DefaultAPIRoot {
		t.Errorf("expected default api root, got %s", s.APIRoot())
	}
	if s.Office() != "" {
		t.Errorf("expected empty office, got %s", s.Office())
	}
}

func TestNewSession_AppendsTrailingSlash(t *testing.T) {
	s, err := NewSession(WithAPIRoot("https://example.com/cwms-data"))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.APIRoot() != "https://example.com/cwms-data/" {
		t.Errorf("expected trailing slash, got %s", s.APIRoot())
	}
}

func TestNewSession_InvalidRoot(t *testing.T) {
	_, err := NewSession(WithAPIRoot("not a url"))
	if err == nil {
		t.Fatal("expected error for invalid api root")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestAuthorizationValue(t *testing.T) {
	if got := authorizationValue("mykey"); got != "apikey mykey" {
		t.Errorf("bare key: got %q", got)
	}
	if got := authorizationValue("apikey mykey"); got != "apikey mykey" {
		t.Errorf("prefixed key: got %q", got)
	}
}

func TestBuildURL_KeyInQuery(t *testing.T) {
	s, err := NewSession(
		WithAPIRoot("https://example.com/cwms-data/"),
		WithAPIKey("secret"),
		WithKeyAsQueryParam(),
	)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	raw := s.buildURL("timeseries", NewQuery().Set("office", "SWT").Values())
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing built URL: %v", err)
	}
	if u.Path != "/cwms-data/timeseries" {
		t.Errorf("unexpected path: %s", u.Path)
	}
	if u.Query().Get("apikey") != "secret" {
		t.Errorf("expected apikey query param, got %q", u.Query().Get("apikey"))
	}
	if u.Query().Get("office") != "SWT" {
		t.Errorf("expected office query param, got %q", u.Query().Get("office"))
	}
}

func TestQuery_SkipsZeroValues(t *testing.T) {
	q := NewQuery().
		SetNonEmpty("unit", "").
		SetInt("page-size", 0).
		SetNonEmpty("office", "SWT")
	v := q.Values()
	if _, present := v["unit"]; present {
		t.Error("empty string parameter should be absent")
	}
	if _, present := v["page-size"]; present {
		t.Error("zero int parameter should be absent")
	}
	if v.Get("office") != "SWT" {
		t.Errorf("office: got %q", v.Get("office"))
	}
}

func TestAcceptHeader(t *testing.T) {
	for version, want := range map[int]string{
		VersionJSON:   "application/json",
		VersionJSONv2: "application/json;version=2",
		VersionXMLv2:  "application/xml;version=2",
	} {
		got, err := acceptHeader(version)
		if err != nil {
			t.Fatalf("acceptHeader(%d) failed: %v", version, err)
		}
		if got != want {
			t.Errorf("acceptHeader(%d) = %q, want %q", version, got, want)
		}
	}
	if _, err := acceptHeader(99); err == nil {
		t.Error("expected error for unknown version")
	}
}
