package exchange

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

type testConfig struct {
	url        string
	org        string
	credential string
}

func (c *testConfig) GetExchangeURL() string { return c.url }
func (c *testConfig) GetOrg() string         { return c.org }
func (c *testConfig) GetCredential() string  { return c.credential }

func newTestExchange(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(&testConfig{
		url:        srv.URL + "/v1",
		org:        "myorg",
		credential: "admin:secret",
	})
	return client, srv
}

func TestFetchHeaders(t *testing.T) {
	var gotAccept, gotAuth, gotPath string
	client, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"nodes":{}}`))
	})

	body, err := client.ListNodes(context.Background())
	require.Nil(t, err)
	assert.JSONEq(t, `{"nodes":{}}`, string(body))
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/v1/orgs/myorg/nodes", gotPath)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("myorg/admin:secret"))
	assert.Equal(t, wantAuth, gotAuth)
}

func TestEndpointPaths(t *testing.T) {
	var gotPath string
	client, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	tests := []struct {
		call func() ([]byte, apperrors.Error)
		want string
	}{
		{func() ([]byte, apperrors.Error) { return client.ListServices(ctx) }, "/v1/orgs/myorg/services"},
		{func() ([]byte, apperrors.Error) { return client.ListDeploymentPolicies(ctx) }, "/v1/orgs/myorg/business/policies"},
		{func() ([]byte, apperrors.Error) { return client.GetService(ctx, "web") }, "/v1/orgs/myorg/services/web"},
		{func() ([]byte, apperrors.Error) { return client.NodeDetails(ctx) }, "/v1/orgs/myorg/node-details"},
		{func() ([]byte, apperrors.Error) { return client.GetNodePolicy(ctx, "edge-1") }, "/v1/orgs/myorg/nodes/edge-1/policy"},
		{func() ([]byte, apperrors.Error) { return client.GetDeploymentPolicy(ctx, "pol") }, "/v1/orgs/myorg/business/policies/pol"},
		{func() ([]byte, apperrors.Error) { return client.GetServicePolicy(ctx, "web") }, "/v1/orgs/myorg/services/web/policy"},
		{func() ([]byte, apperrors.Error) { return client.GetNodeStatus(ctx, "edge-1") }, "/v1/orgs/myorg/nodes/edge-1/status"},
		{func() ([]byte, apperrors.Error) { return client.Version(ctx) }, "/v1/admin/version"},
	}
	for _, tt := range tests {
		_, err := tt.call()
		require.Nil(t, err)
		assert.Equal(t, tt.want, gotPath)
	}
}

func TestFetchHTTPError(t *testing.T) {
	client, _ := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not-found","msg":"node does not exist"}`))
	})

	body, err := client.GetNodeStatus(context.Background(), "missing")
	require.NotNil(t, err)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, ErrExchangeHTTP)
	assert.ErrorIs(t, err, ErrExchangeError)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "node does not exist")
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(&testConfig{url: srv.URL, org: "myorg", credential: "a:b"})
	srv.Close()

	body, err := client.ListNodes(context.Background())
	require.NotNil(t, err)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, ErrExchangeTransport)
	assert.ErrorIs(t, err, ErrExchangeError)
}

func TestOrgPathEscaping(t *testing.T) {
	var gotRawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	client := NewClient(&testConfig{url: srv.URL, org: "my org", credential: "a:b"})

	_, err := client.GetService(context.Background(), "svc/one")
	require.Nil(t, err)
	assert.Equal(t, "/orgs/my%20org/services/svc%2Fone", gotRawPath)
}
