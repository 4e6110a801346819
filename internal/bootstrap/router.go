package bootstrap

import (
	"database/sql"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/nexview/nexview-backend/internal/api/http"
	"github.com/nexview/nexview-backend/internal/api/http/middleware"
	authmw "github.com/nexview/nexview-backend/internal/auth/middleware"
	sessionshttp "github.com/nexview/nexview-backend/internal/sessions/http"
	sessionsrepo "github.com/nexview/nexview-backend/internal/sessions/repository"
	sessionsservice "github.com/nexview/nexview-backend/internal/sessions/service"
	usershttp "github.com/nexview/nexview-backend/internal/users/http"
	usersrepo "github.com/nexview/nexview-backend/internal/users/repository"
	usersservice "github.com/nexview/nexview-backend/internal/users/service"
	"github.com/nexview/nexview-backend/internal/videos"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Cache       *redis.Client
	Auth        *firebaseauth.Client
	Videos      videos.Provider
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(authmw.FirebaseAuthMiddleware(dep.Auth))

	userRepo := usersrepo.NewUserRepository(dep.SQLDB)
	sessionRepo := sessionsrepo.NewRepo(dep.DB)

	sessionSvc := sessionsservice.New(sessionRepo, userRepo)
	sessionshttp.Register(api.Group("/sessions"), sessionSvc)

	userSvc := usersservice.NewUserService(userRepo, sessionRepo)
	usershttp.New(userSvc).Register(api.Group("/users"))

	if dep.Videos != nil {
		videos.RegisterRoutes(api.Group("/videos"), dep.Videos)
	}

	return r
}
