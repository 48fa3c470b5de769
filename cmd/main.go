package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"education-server/config"
	_ "education-server/docs"
	"education-server/internal/handler"
	"education-server/internal/ports"
	"education-server/internal/repository"
	"education-server/internal/security"
	"education-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Education-server
// @version 1.0
// @description REST API управления учебным центром: сессии, доступ, учётные записи

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	jwtService := security.NewJWTService(&cfg.JWT)
	sessionService, err := service.NewSessionService(userRepo, refreshRepo, jwtService, cacheRepo, &cfg.Session)
	if err != nil {
		log.Fatalf("Ошибка создания сервиса сессий: %v", err)
	}
	authorizationService := service.NewAuthorizationService(roleRepo)
	userService := service.NewUserService(userRepo, &cfg.Admin)

	authHandler := handler.NewAuthenticationHandler(sessionService)
	userHandler := handler.NewUserHandler(userService)

	router.Use(security.RequestTimeout(15 * time.Second))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, cacheRepo, jwtService)
	setupUserRoutes(router, userHandler, cacheRepo, jwtService, authorizationService)

	runServer(ctx, srv)
}

func setupAuthRoutes(
	r chi.Router,
	h *handler.AuthenticationHandler,
	cache ports.AliasCacheRepository,
	jwtService ports.TokenServiceInterface,
) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Delete("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(security.SessionMiddleware(cache, jwtService))
			r.Get("/me", h.GetCurrentUser)
			r.Head("/me", h.GetCurrentUserHead)
		})
	})
}

func setupUserRoutes(
	r chi.Router,
	h *handler.UserHandler,
	cache ports.AliasCacheRepository,
	jwtService ports.TokenServiceInterface,
	authorizer ports.AuthorizationServiceInterface,
) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(security.SessionMiddleware(cache, jwtService))
			r.Use(security.RequirePermissions(authorizer, "user.update"))
			r.Put("/users/{uuid}/password", h.UpdatePassword)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
