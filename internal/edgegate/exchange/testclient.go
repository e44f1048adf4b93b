package exchange

import (
	"context"
	"strings"
	"sync"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

// TestClient is an in-memory Reader for tests. It records every call by
// endpoint name and returns canned responses, allowing call-count assertions
// without a network.
type TestClient struct {
	mu        sync.Mutex
	calls     []string
	Responses map[string][]byte // keyed by endpoint name, e.g. "ListNodes"
	Err       apperrors.Error   // when set, returned by every call
}

// NewTestClient creates a TestClient with an empty response table.
func NewTestClient() *TestClient {
	return &TestClient{
		Responses: map[string][]byte{},
	}
}

// Calls returns the endpoints invoked so far, in order. Arguments are
// appended as "Endpoint(name)" for the by-name lookups.
func (c *TestClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallCount returns the total number of exchange calls recorded.
func (c *TestClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *TestClient) record(call string) ([]byte, apperrors.Error) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	key := call
	if i := strings.IndexByte(call, '('); i >= 0 {
		key = call[:i]
	}
	if rsp, ok := c.Responses[key]; ok {
		return rsp, nil
	}
	return []byte(`{}`), nil
}

func (c *TestClient) ListNodes(ctx context.Context) ([]byte, apperrors.Error) {
	return c.record("ListNodes")
}

func (c *TestClient) ListServices(ctx context.Context) ([]byte, apperrors.Error) {
	return c.record("ListServices")
}

func (c *TestClient) ListDeploymentPolicies(ctx context.Context) ([]byte, apperrors.Error) {
	return c.record("ListDeploymentPolicies")
}

func (c *TestClient) GetService(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.record("GetService(" + name + ")")
}

func (c *TestClient) NodeDetails(ctx context.Context) ([]byte, apperrors.Error) {
	return c.record("NodeDetails")
}

func (c *TestClient) GetNodePolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.record("GetNodePolicy(" + name + ")")
}

func (c *TestClient) GetDeploymentPolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.record("GetDeploymentPolicy(" + name + ")")
}

func (c *TestClient) GetServicePolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.record("GetServicePolicy(" + name + ")")
}

func (c *TestClient) GetNodeStatus(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.record("GetNodeStatus(" + name + ")")
}

func (c *TestClient) Version(ctx context.Context) ([]byte, apperrors.Error) {
	return c.record("Version")
}
