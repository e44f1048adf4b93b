// Package dispatch validates and routes resource action requests onto the
// exchange API. A request is a transient value: action and target come from
// closed enums, the optional policy type disambiguates policy endpoints, and
// name/data requirements depend on the action.
package dispatch

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

// Action is one of the five supported operation verbs.
type Action string

const (
	ActionList    Action = "list"
	ActionDetails Action = "details"
	ActionCreate  Action = "create"
	ActionDelete  Action = "delete"
	ActionStatus  Action = "status"
)

// Target is the resource category an action applies to.
type Target string

const (
	TargetService Target = "service"
	TargetNode    Target = "node"
	TargetPolicy  Target = "policy"
)

// PolicyScope sub-classifies a policy target. It is meaningful only when
// the target is (or normalizes to) policy.
type PolicyScope string

const (
	PolicyScopeNode       PolicyScope = "node"
	PolicyScopeService    PolicyScope = "service"
	PolicyScopeDeployment PolicyScope = "deployment"
)

// Request is a structured resource action request.
type Request struct {
	Action     Action      `mapstructure:"action" validate:"required,oneof=list details create delete status"`
	Target     Target      `mapstructure:"target" validate:"required,oneof=service node policy"`
	PolicyType PolicyScope `mapstructure:"policyType" validate:"omitempty,oneof=node service deployment"`
	Name       string      `mapstructure:"name"`
	Data       any         `mapstructure:"data"`
}

var validate = validator.New()

// DecodeRequest builds a Request from the raw tool arguments.
func DecodeRequest(args map[string]any) (Request, apperrors.Error) {
	var req Request
	if err := mapstructure.Decode(args, &req); err != nil {
		return Request{}, ErrInvalidRequest.MsgErr("unable to decode arguments", err)
	}
	return req, nil
}

// Validate checks the closed enums. Per-action name/data requirements are
// checked by the dispatcher, after normalization.
func (r *Request) Validate() apperrors.Error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrInvalidRequest.MsgErr("unable to validate request", err)
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Action":
			return ErrUnknownAction.Msg("action must be one of list, details, create, delete, status; got " + quoted(string(r.Action)))
		case "Target":
			return ErrInvalidTarget.Msg("target must be one of service, node, policy; got " + quoted(string(r.Target)))
		case "PolicyType":
			return ErrInvalidTarget.Msg("policyType must be one of node, service, deployment; got " + quoted(string(r.PolicyType)))
		}
	}
	return ErrInvalidRequest.Err(err)
}

// Normalize coerces the target to policy whenever a policy type is present.
// Upstream natural-language extraction frequently mis-sets the target while
// correctly identifying a policy context, so the mismatch is corrected and
// logged rather than rejected. Normalization is idempotent.
func (r Request) Normalize(ctx context.Context) Request {
	if r.PolicyType != "" && r.Target != TargetPolicy {
		log.Ctx(ctx).Info().
			Str("target", string(r.Target)).
			Str("policy_type", string(r.PolicyType)).
			Msg("policyType present; correcting target to policy")
		r.Target = TargetPolicy
	}
	return r
}

func quoted(s string) string {
	return "\"" + s + "\""
}
