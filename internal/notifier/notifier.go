// Package notifier pushes alerts for saved scenarios to external channels.
package notifier

import (
	"context"

	"market-scenario/internal/dto"
	"market-scenario/internal/model"
)

type Notifier interface {
	NotifyScenario(ctx context.Context, scenario *model.Scenario, doc *dto.ScenarioDocument) error
}

// NewNoop returns a notifier that silently drops everything. Used when no
// telegram credentials are configured.
func NewNoop() Notifier {
	return &noopNotifier{}
}

type noopNotifier struct{}

func (n *noopNotifier) NotifyScenario(ctx context.Context, scenario *model.Scenario, doc *dto.ScenarioDocument) error {
	return nil
}
