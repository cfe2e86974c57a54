package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/docinsight/internal/bootstrap"
	"github.com/kirillkom/docinsight/internal/config"
	"github.com/kirillkom/docinsight/internal/observability/logging"
	"github.com/kirillkom/docinsight/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentUploaded(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if doc, err := app.Repo.GetByID(processCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(doc.CreatedAt))
		}

		workerMetrics.StartDocument()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, documentID)
		workerMetrics.FinishDocument("worker", time.Since(start), processErr)

		if processErr != nil {
			logger.Error("process document", "document_id", documentID, "error", processErr)
			return processErr
		}

		if doc, err := app.Repo.GetByID(processCtx, documentID); err == nil {
			workerMetrics.RecordAnalysisSource("worker", string(doc.Source))
			logger.Info("document processed", "document_id", documentID, "source", doc.Source)
		}
		if result, err := app.Analyses.GetAnalysis(processCtx, documentID); err == nil {
			workerMetrics.ObserveContentBlocks("worker", len(result.ContentBlocks))
		}
		return nil
	})
	if err != nil {
		logger.Error("worker subscribe error", "error", err)
		os.Exit(1)
	}
}
