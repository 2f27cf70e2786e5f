package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Thomas-Sunil/newhrms/internal/employeehistory"
	"github.com/Thomas-Sunil/newhrms/internal/events"
	"github.com/Thomas-Sunil/newhrms/internal/messaging/kafka/consumer"
	"github.com/Thomas-Sunil/newhrms/internal/notification"
	"github.com/Thomas-Sunil/newhrms/internal/shared/config"
	"github.com/Thomas-Sunil/newhrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	employeeHistoryGroup = "hrms-employee-history"
	notificationGroup    = "hrms-leave-notifications"
)

func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.ConnectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	historyService := employeehistory.NewService(sqlDB, employeehistory.NewRepository(gormDB), logger)
	notificationService := notification.NewService(notification.NewRepository(gormDB), logger)

	lifecycleReader := newReader(cfg.KafkaBroker, events.EmployeeLifecycleTopic, employeeHistoryGroup)
	defer lifecycleReader.Close()

	leaveReader := newReader(cfg.KafkaBroker, events.LeaveWorkflowTopic, notificationGroup)
	defer leaveReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, historyService, logger)
	go consumer.ConsumeLeaveWorkflow(ctx, leaveReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
