package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/messaging"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// Subscriber consumes order status change events and renders them
// as human-readable notifications.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start runs the subscriber until the context ends or a shutdown signal arrives
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleStatusChange); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleStatusChange processes one status change event
func (s *Subscriber) handleStatusChange(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var event models.StatusChangedMessage
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status change notification", requestID, map[string]interface{}{
		"order_id":   event.OrderID.String(),
		"old_status": string(event.OldStatus),
		"new_status": string(event.NewStatus),
	})

	s.displayNotification(&event)
	return nil
}

// displayNotification prints the notification and logs a structured copy
func (s *Subscriber) displayNotification(event *models.StatusChangedMessage) {
	fmt.Println(s.formatNotification(event))

	s.logger.Info("notification_displayed", "Notification displayed to user", "", map[string]interface{}{
		"order_id":   event.OrderID.String(),
		"old_status": string(event.OldStatus),
		"new_status": string(event.NewStatus),
		"timestamp":  event.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// formatNotification creates a human-readable notification line
func (s *Subscriber) formatNotification(event *models.StatusChangedMessage) string {
	timestamp := event.Timestamp.Format("2006-01-02 15:04:05")

	switch event.NewStatus {
	case models.OrderConfirmed:
		return fmt.Sprintf("📋 [%s] Order %s has been confirmed.", timestamp, event.OrderID)
	case models.OrderPreparing:
		return fmt.Sprintf("🍳 [%s] Order %s is now being prepared.", timestamp, event.OrderID)
	case models.OrderReady:
		if event.ActualReadyTime != nil {
			return fmt.Sprintf("✅ [%s] Order %s is ready for serving! Ready at %s.",
				timestamp, event.OrderID, event.ActualReadyTime.Format("15:04:05"))
		}
		return fmt.Sprintf("✅ [%s] Order %s is ready for serving!", timestamp, event.OrderID)
	case models.OrderServed:
		return fmt.Sprintf("🍽️ [%s] Order %s has been served.", timestamp, event.OrderID)
	case models.OrderCompleted:
		return fmt.Sprintf("🎉 [%s] Order %s has been completed. Thank you for your visit!", timestamp, event.OrderID)
	case models.OrderCancelled:
		return fmt.Sprintf("❌ [%s] Order %s has been cancelled.", timestamp, event.OrderID)
	default:
		return fmt.Sprintf("📋 [%s] Order %s status changed from '%s' to '%s'.",
			timestamp, event.OrderID, event.OldStatus, event.NewStatus)
	}
}

func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
