package clicker

import (
	"context"

	"github.com/concave-dev/sakaton/internal/backend"
)

// ClickSender transmits one signed click batch. backend.Client implements it;
// tests substitute fakes to simulate slow or failing networks.
type ClickSender interface {
	SubmitClicks(ctx context.Context, token string, req backend.ClickRequest) error
}
