package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/embedding"
	"resume-screener/internal/ner"
	"resume-screener/internal/parser"
	"resume-screener/internal/screenings"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/vocab"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Vocabulary       *vocab.Vocabulary
	Embedder         embedding.Service
	Extractor        *parser.Extractor
	ScreeningService *screenings.Service
	ScreeningHandler *screenings.Handler
}

// Build prepares shared dependencies and wires the router. The vocabulary and
// the embedding client are the only process-wide shared resources; both are
// read-only after this point.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	vocabulary, err := buildVocabulary(cfg)
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	var repo screenings.Repo
	if sqlDB != nil {
		repo = &screenings.PGRepo{DB: sqlDB}
	} else {
		repo = screenings.NewMemoryRepo()
	}

	extractor := parser.New(vocabulary, ner.NewProseRecognizer())
	svc := &screenings.Service{
		Repo:      repo,
		Store:     store,
		Extractor: extractor,
		Embedder:  embedder,
	}
	handler := screenings.NewHandler(svc)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		Vocabulary:       vocabulary,
		Embedder:         embedder,
		Extractor:        extractor,
		ScreeningService: svc,
		ScreeningHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ScreeningHandler: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildVocabulary(cfg config.Config) (*vocab.Vocabulary, error) {
	if strings.TrimSpace(cfg.SkillsFile) == "" {
		return vocab.Default(), nil
	}
	return vocab.Load(cfg.SkillsFile)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
