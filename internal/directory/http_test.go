package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"keyshare/internal/directory"
	"keyshare/internal/domain"
	"keyshare/internal/fixture"
	"keyshare/internal/protocol/crosssign"
)

func TestQueryKeys_RoundTrip(t *testing.T) {
	resp, bob, err := fixture.BobDehydrated()
	if err != nil {
		t.Fatalf("BobDehydrated: %v", err)
	}
	dev, err := bob.NewDevice("LIVE")
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	resp.DeviceKeys[fixture.BobID]["LIVE"] = dev

	var gotReq directory.QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != directory.QueryPath {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Indent to make sure signatures do not depend on formatting.
		b, _ := json.MarshalIndent(resp, "", "  ")
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c := directory.NewHTTP(srv.URL+"/", srv.Client())
	c.Token = "secret"
	got, err := c.QueryKeys(context.Background(), []domain.UserID{fixture.BobID})
	if err != nil {
		t.Fatalf("QueryKeys: %v", err)
	}
	if _, ok := gotReq.DeviceKeys[fixture.BobID]; !ok {
		t.Fatalf("request did not name bob: %+v", gotReq)
	}
	if len(got.DeviceKeys[fixture.BobID]) != 2 {
		t.Fatalf("want 2 devices, got %d", len(got.DeviceKeys[fixture.BobID]))
	}
	g := crosssign.New(got)
	if !g.IsDeviceCrossSigned(fixture.BobID, got.DeviceKeys[fixture.BobID]["LIVE"]) {
		t.Fatalf("signature lost in transit: %v", g.DeviceTrust(fixture.BobID, got.DeviceKeys[fixture.BobID]["LIVE"]))
	}
}

func TestQueryKeys_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := directory.NewHTTP(srv.URL, nil).QueryKeys(context.Background(), []domain.UserID{"@bob:localhost"})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("want 502 error, got %v", err)
	}
}
