package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bookstore-platform/fulfillment-service/pkg/cloudevents"
	"github.com/bookstore-platform/fulfillment-service/pkg/kafka"
	"github.com/bookstore-platform/fulfillment-service/pkg/outbox"

	"github.com/bookstore-platform/fulfillment-service/internal/domain"
)

// cloudEventType maps a domain event to its published CloudEvent type.
func cloudEventType(event domain.DomainEvent) string {
	switch event.(type) {
	case *domain.OrderCompletedEvent:
		return cloudevents.OrderCompleted
	case *domain.PurchaseRequestCompletedEvent:
		return cloudevents.PurchaseRequestCompleted
	case *domain.TransferExecutedEvent:
		return cloudevents.TransferExecuted
	case *domain.LowStockAlertEvent:
		return cloudevents.LowStockAlert
	default:
		return ""
	}
}

// stageOutboxEvents converts domain events to CloudEvents and writes
// them to the outbox. Callers invoke this inside the same transaction
// as the state change the events describe.
func stageOutboxEvents(
	ctx context.Context,
	repo outbox.Repository,
	factory *cloudevents.EventFactory,
	aggregateID, aggregateType, subject string,
	events []domain.DomainEvent,
) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		ceType := cloudEventType(event)
		if ceType == "" {
			continue
		}

		cloudEvent := factory.CreateEvent(ctx, ceType, subject, event)
		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			aggregateID,
			aggregateType,
			kafka.TopicForEventType(ceType),
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, outboxEvent)
	}

	if err := repo.SaveAll(ctx, outboxEvents); err != nil {
		return fmt.Errorf("failed to save outbox events: %w", err)
	}
	return nil
}

// stageLowStockAlert re-reads a stock row a debit just touched and
// stages an alert event when the balance sits at or below threshold.
// Callers invoke it inside the debiting transaction, so the alert and
// the debit commit together or not at all.
func stageLowStockAlert(
	ctx context.Context,
	ledger domain.StockLedger,
	repo outbox.Repository,
	factory *cloudevents.EventFactory,
	bookID, locationID string,
) error {
	level, err := ledger.Read(ctx, bookID, locationID)
	if err != nil {
		return err
	}
	if level.Status() == domain.StockStatusInStock {
		return nil
	}

	event := &domain.LowStockAlertEvent{
		BookID:            level.BookID,
		LocationID:        level.LocationID,
		Stock:             level.Stock,
		LowStockThreshold: level.LowStockThreshold,
		AlertedAt:         time.Now().UTC(),
	}
	return stageOutboxEvents(ctx, repo, factory,
		level.BookID, "StockLevel", "stock/"+level.BookID,
		[]domain.DomainEvent{event})
}
