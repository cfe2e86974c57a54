package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/docinsight/internal/analysis"
	"github.com/kirillkom/docinsight/internal/config"
	"github.com/kirillkom/docinsight/internal/core/ports"
	"github.com/kirillkom/docinsight/internal/core/usecase"
	"github.com/kirillkom/docinsight/internal/infrastructure/decoding"
	neo4jgraph "github.com/kirillkom/docinsight/internal/infrastructure/graph/neo4j"
	"github.com/kirillkom/docinsight/internal/infrastructure/parseapi"
	"github.com/kirillkom/docinsight/internal/infrastructure/queue/nats"
	"github.com/kirillkom/docinsight/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/docinsight/internal/infrastructure/resilience"
	"github.com/kirillkom/docinsight/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Repo     ports.DocumentRepository
	Analyses ports.AnalysisRepository

	UploadUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	ReaderUC  ports.DocumentReader
	RemoverUC ports.DocumentRemover

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	analyzer, err := analysis.New(cfg.AnalyzerLocale)
	if err != nil {
		return nil, fmt.Errorf("init analyzer: %w", err)
	}
	decoder := decoding.New()
	remote := parseapi.New(cfg.ParseAPIURL, cfg.ParseAPIKey, executor)

	var graph ports.StructureGraph
	var graphCloser *neo4jgraph.Exporter
	if cfg.Neo4jURI != "" {
		exporter, err := neo4jgraph.New(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return nil, fmt.Errorf("init structure graph: %w", err)
		}
		graph = exporter
		graphCloser = exporter
	}

	uploadUC := usecase.NewUploadDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, repo, storage, decoder, analyzer, remote, graph)
	readerUC := usecase.NewDocumentReaderUseCase(repo, repo)
	removerUC := usecase.NewRemoveDocumentUseCase(repo, repo, storage)

	return &App{
		Config: cfg,
		Queue:    queue,
		Repo:     repo,
		Analyses: repo,

		UploadUC:  uploadUC,
		ProcessUC: processUC,
		ReaderUC:  readerUC,
		RemoverUC: removerUC,

		closeFn: func() {
			queue.Close()
			if graphCloser != nil {
				_ = graphCloser.Close(context.Background())
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
