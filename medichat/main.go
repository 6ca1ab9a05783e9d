package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medichat/medichat/config"
	"medichat/medichat/controllers"
	"medichat/medichat/prompts"
	"medichat/medichat/routes"
	"medichat/medichat/services/embeddings"
	"medichat/medichat/services/hospital"
	"medichat/medichat/services/query"
	"medichat/medichat/services/ragengine"
	"medichat/medichat/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	pc := prompts.Load(cfg.PromptsPath)

	embedder := embeddings.NewOpenAIEmbedder(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
	index := embeddings.NewIndex(cfg.HospitalDataPath, cfg.EmbeddingsCachePath, embedder)

	// embed the data file up front so first queries have context
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if _, err := index.Update(ctx); err != nil {
		logging.ErrorLogger.Error("embeddings startup error", zap.Error(err))
	}
	cancel()

	engine := ragengine.NewEngine(index, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.HospitalName, pc)
	handler := query.NewHandler(engine, pc, nil)
	gpt := hospital.New(cfg.HospitalDataPath)

	queryCtrl := controllers.NewQueryController(engine)
	chatCtrl := controllers.NewChatController(handler, engine)
	hospitalCtrl := controllers.NewHospitalController(gpt)
	embeddingsCtrl := controllers.NewEmbeddingsController(index, engine, cfg.HospitalDataPath)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/query", routes.QueryRoutes(queryCtrl))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl))
	r.Mount("/hospital-query", routes.HospitalRoutes(hospitalCtrl))
	r.Mount("/hospital-embeddings", routes.EmbeddingsRoutes(embeddingsCtrl))
	r.Mount("/update-hospital-data", routes.UpdateDataRoutes(embeddingsCtrl))
	r.Mount("/health", routes.HealthRoutes(healthCtrl))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("medichat listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
