package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/config"
	"github.com/TisTos-tass3/StagINS/internal/api/handler"
	"github.com/TisTos-tass3/StagINS/internal/api/middleware"
	"github.com/TisTos-tass3/StagINS/pkg/jwt"
	"github.com/TisTos-tass3/StagINS/pkg/redis"
)

// Taille maximale d'une requête : rapport PDF de 15 Mio + marge multipart
const maxBodyBytes = 20 << 20

// Setup initialise et retourne le moteur de routes Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middlewares globaux ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── Sonde de vie ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Authentification (sans token)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Routes protégées
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// Toute écriture est réservée aux gestionnaires, la suppression
			// à l'admin ; les consultants gardent un accès en lecture seule.
			gestion := middleware.RoleAuth("admin", "gestionnaire")
			admin := middleware.RoleAuth("admin")

			// Authentification (token requis)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/auth/users", admin, h.Auth.CreateUser)

			// Stagiaires
			stagiaires := authorized.Group("/stagiaires")
			{
				stagiaires.GET("", h.Stagiaire.ListStagiaires)
				stagiaires.GET("/:id", h.Stagiaire.GetStagiaire)
				stagiaires.GET("/matricule/:matricule", h.Stagiaire.GetStagiaireByMatricule)
				stagiaires.POST("", gestion, h.Stagiaire.CreateStagiaire)
				stagiaires.PUT("/:id", gestion, h.Stagiaire.UpdateStagiaire)
				stagiaires.DELETE("/:id", admin, h.Stagiaire.DeleteStagiaire)
			}

			// Encadrants
			encadrants := authorized.Group("/encadrants")
			{
				encadrants.GET("", h.Encadrant.ListEncadrants)
				encadrants.GET("/:id", h.Encadrant.GetEncadrant)
				encadrants.POST("", gestion, h.Encadrant.CreateEncadrant)
				encadrants.PUT("/:id", gestion, h.Encadrant.UpdateEncadrant)
				encadrants.DELETE("/:id", admin, h.Encadrant.DeleteEncadrant)
			}

			// Stages
			stages := authorized.Group("/stages")
			{
				stages.GET("", h.Stage.ListStages)
				stages.GET("/alertes", h.Stage.Alertes)
				stages.GET("/:id", h.Stage.GetStage)
				stages.GET("/:id/attestation", h.Stage.Attestation)
				stages.POST("", gestion, h.Stage.CreateStage)
				stages.PUT("/:id", gestion, h.Stage.UpdateStage)
				stages.PUT("/:id/lettre", gestion, h.Stage.UploadLettre)
				stages.DELETE("/:id", admin, h.Stage.DeleteStage)
				stages.POST("/statuts/recalculer", gestion, h.Stage.RecalculerStatuts)
			}

			// Rapports
			rapports := authorized.Group("/rapports")
			{
				rapports.GET("", h.Rapport.ListRapports)
				rapports.GET("/:id", h.Rapport.GetRapport)
				rapports.GET("/:id/fichier", h.Rapport.Download)
				rapports.POST("", gestion, h.Rapport.CreateRapport)
				rapports.PUT("/:id/fichier", gestion, h.Rapport.ReplaceFile)
				rapports.POST("/:id/workflow", gestion, h.Rapport.Workflow)
				rapports.DELETE("/:id", admin, h.Rapport.DeleteRapport)
			}

			// Tableau de bord
			authorized.GET("/dashboard", h.Dashboard.Resume)

			// Exports
			export := authorized.Group("/export")
			{
				export.GET("/stages.xlsx", h.Export.ExportStages)
				export.GET("/calendrier.ics", h.Export.Calendrier)
			}
		}
	}

	return r
}
