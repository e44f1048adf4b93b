package exchange

import (
	"context"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

// Reader is the read surface of the exchange API consumed by the action
// dispatcher. Implementations must return failures as values and never
// panic across this boundary.
type Reader interface {
	ListNodes(ctx context.Context) ([]byte, apperrors.Error)
	ListServices(ctx context.Context) ([]byte, apperrors.Error)
	ListDeploymentPolicies(ctx context.Context) ([]byte, apperrors.Error)
	GetService(ctx context.Context, name string) ([]byte, apperrors.Error)
	NodeDetails(ctx context.Context) ([]byte, apperrors.Error)
	GetNodePolicy(ctx context.Context, name string) ([]byte, apperrors.Error)
	GetDeploymentPolicy(ctx context.Context, name string) ([]byte, apperrors.Error)
	GetServicePolicy(ctx context.Context, name string) ([]byte, apperrors.Error)
	GetNodeStatus(ctx context.Context, name string) ([]byte, apperrors.Error)
	Version(ctx context.Context) ([]byte, apperrors.Error)
}

// Compile-time checks that both implementations satisfy the interface.
var _ Reader = &Client{}
var _ Reader = &TestClient{}
