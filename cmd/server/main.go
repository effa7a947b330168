package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/config"
	"github.com/TisTos-tass3/StagINS/internal/api/handler"
	"github.com/TisTos-tass3/StagINS/internal/api/router"
	"github.com/TisTos-tass3/StagINS/internal/repository"
	"github.com/TisTos-tass3/StagINS/internal/scheduler"
	"github.com/TisTos-tass3/StagINS/internal/service"
	"github.com/TisTos-tass3/StagINS/pkg/database"
	"github.com/TisTos-tass3/StagINS/pkg/jwt"
	applogger "github.com/TisTos-tass3/StagINS/pkg/logger"
	"github.com/TisTos-tass3/StagINS/pkg/redis"
	"github.com/TisTos-tass3/StagINS/pkg/storage"
)

func main() {
	// 1. Chargement de la configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "échec du chargement de la configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialisation des journaux
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "échec de l'initialisation des journaux: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("démarrage de l'application",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connexion à la base de données
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("échec de la connexion à la base de données", zap.Error(err))
	}
	logger.Info("base de données connectée")

	// 3.1 Migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("échec de l'accès au sql.DB sous-jacent", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("échec des migrations", zap.Error(err))
	}

	// 4. Connexion Redis (optionnelle : l'application fonctionne en mode
	// dégradé sans cache ni liste noire de tokens)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis indisponible, cache et liste noire désactivés", zap.Error(err))
		rdb = nil
	}

	// 5. Stockage des fichiers téléversés
	files, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("échec de l'initialisation du stockage de fichiers", zap.Error(err))
	}

	// 6. Gestionnaire JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. Injection des dépendances : Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, files, logger)
	h := handler.NewHandler(svc)

	// 8. Routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. Planificateur du recalcul des statuts
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(svc.Statut, cfg.Scheduler.Interval, logger)
		sched.Start()
	}

	// 10. Serveur HTTP avec arrêt propre
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("serveur HTTP démarré", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("erreur du serveur HTTP", zap.Error(err))
		}
	}()

	// 11. Attente d'un signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("signal d'arrêt reçu, fermeture en cours", zap.String("signal", sig.String()))

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("fermeture du serveur en erreur", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("serveur arrêté")
}
