// Package exchange provides the read-only client for the remote edge
// exchange API. Every call is organization-scoped and authenticated with a
// Basic credential; all failures are returned as values, never panics, so
// the dispatcher can surface them in its response envelope.
package exchange

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

// Configurator provides the exchange connection parameters. The credential
// is a pre-provisioned "user:apikey" pair; the client prefixes it with the
// organization when building the authorization header.
type Configurator interface {
	GetExchangeURL() string
	GetOrg() string
	GetCredential() string
}

// Client issues authenticated read requests against the exchange API.
// Requests are independent and never retried; callers needing resilience
// must wrap the client, since create/delete traffic elsewhere in the system
// makes blind retries unsafe.
type Client struct {
	config     Configurator
	httpClient *http.Client
}

// NewClient creates a new exchange client using the provided configuration.
func NewClient(config Configurator) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{},
	}
}

// ListNodes returns the node collection for the configured organization.
func (c *Client) ListNodes(ctx context.Context) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("nodes"))
}

// ListServices returns the service collection for the configured organization.
func (c *Client) ListServices(ctx context.Context) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("services"))
}

// ListDeploymentPolicies returns the deployment policy collection.
func (c *Client) ListDeploymentPolicies(ctx context.Context) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("business", "policies"))
}

// GetService returns a single service definition by name.
func (c *Client) GetService(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("services", name))
}

// NodeDetails returns the aggregated node details collection. The exchange
// exposes this only as a collection; there is no per-node variant.
func (c *Client) NodeDetails(ctx context.Context) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("node-details"))
}

// GetNodePolicy returns the policy attached to a single node.
func (c *Client) GetNodePolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("nodes", name, "policy"))
}

// GetDeploymentPolicy returns a single deployment policy by name.
func (c *Client) GetDeploymentPolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("business", "policies", name))
}

// GetServicePolicy returns the policy attached to a single service.
func (c *Client) GetServicePolicy(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("services", name, "policy"))
}

// GetNodeStatus returns the runtime status of a single node.
func (c *Client) GetNodeStatus(ctx context.Context, name string) ([]byte, apperrors.Error) {
	return c.fetch(ctx, c.orgPath("nodes", name, "status"))
}

// Version returns the exchange version string. This endpoint is not
// organization-scoped and may respond with plain text.
func (c *Client) Version(ctx context.Context) ([]byte, apperrors.Error) {
	return c.fetch(ctx, "admin/version")
}

// orgPath joins path segments under the configured organization, escaping
// each segment.
func (c *Client) orgPath(parts ...string) string {
	segments := append([]string{"orgs", c.config.GetOrg()}, parts...)
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// fetch performs a GET against the exchange and returns the response body.
// Non-2xx statuses and transport failures are returned as error values
// carrying enough context for the caller's envelope.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, apperrors.Error) {
	reqURL := c.config.GetExchangeURL() + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, ErrExchangeTransport.MsgErr("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.basicCredential())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrExchangeTransport.MsgErr(fmt.Sprintf("request to %s failed", path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrExchangeTransport.MsgErr("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("exchange request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		if detail := gjson.GetBytes(body, "msg").String(); detail != "" {
			msg = msg + ": " + detail
		}
		return nil, ErrExchangeHTTP.Msg(msg)
	}

	return body, nil
}

// basicCredential builds the org-scoped Basic authorization value,
// base64("org/user:apikey").
func (c *Client) basicCredential() string {
	id := c.config.GetOrg() + "/" + c.config.GetCredential()
	return base64.StdEncoding.EncodeToString([]byte(id))
}
