package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"keyshare/internal/directory"
	"keyshare/internal/domain"
	"keyshare/internal/fixture"
	"keyshare/internal/observability/logging"
	"keyshare/internal/protocol/sharestrategy"
)

func TestServer_FiltersToRequestedUsers(t *testing.T) {
	resp, err := fixture.Trio()
	if err != nil {
		t.Fatalf("Trio: %v", err)
	}
	srv := httptest.NewServer(directory.NewServer(resp, logging.Discard()))
	defer srv.Close()

	c := directory.NewHTTP(srv.URL, srv.Client())
	got, err := c.QueryKeys(context.Background(), []domain.UserID{fixture.AliceID, fixture.BobID})
	if err != nil {
		t.Fatalf("QueryKeys: %v", err)
	}
	if _, ok := got.DeviceKeys[fixture.CarolID]; ok {
		t.Fatal("carol returned although not requested")
	}
	if _, ok := got.MasterKeys[fixture.CarolID]; ok {
		t.Fatal("carol's master key returned although not requested")
	}

	res, err := sharestrategy.Resolve(domain.OnlyTrustedDevices, fixture.AliceID, got, []domain.UserID{fixture.BobID})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Devices) != 1 || res.Devices[0].DeviceID != "B1" {
		t.Fatalf("devices over HTTP = %v, want [B1]", res.Devices)
	}
}

func TestServer_Errors(t *testing.T) {
	h := directory.NewServer(domain.KeyQueryResponse{}, logging.Discard())

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, directory.QueryPath, http.StatusMethodNotAllowed},
		{http.MethodPost, "/other", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
}
