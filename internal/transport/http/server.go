package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolcomm/internal/config"
	"schoolcomm/internal/database"
	"schoolcomm/internal/handler"
	"schoolcomm/internal/realtime"
	"schoolcomm/internal/repository"
	"schoolcomm/internal/service"
)

// Run builds the full application from configuration and serves until
// SIGINT or SIGTERM, then drains in-flight requests.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	tokenRepo := repository.NewPushTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)
	annRepo := repository.NewAnnouncementRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	hwRepo := repository.NewHomeworkRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)

	hub := realtime.NewHub()

	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("init media storage: %w", err)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenMaxAge)*time.Second)
	notifService := service.NewNotificationService(notifRepo, tokenRepo, service.NewExpoPushClient())
	resolver := service.NewAudienceResolver(userRepo, studentRepo)
	chatService := service.NewChatService(chatRepo, hub)
	annService := service.NewAnnouncementService(annRepo, resolver, notifService)
	attService := service.NewAttendanceService(attRepo, studentRepo, notifService)
	hwService := service.NewHomeworkService(hwRepo, studentRepo, notifService)
	feeService := service.NewFeeService(feeRepo, studentRepo, notifService)
	galleryService := service.NewGalleryService(galleryRepo, mediaService)
	adminService := service.NewAdminService(userRepo, classRepo, studentRepo)

	handlers := Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Notification: handler.NewNotificationHandler(notifService),
		Chat:         handler.NewChatHandler(chatService),
		Announcement: handler.NewAnnouncementHandler(annService),
		Attendance:   handler.NewAttendanceHandler(attService),
		Homework:     handler.NewHomeworkHandler(hwService),
		Fee:          handler.NewFeeHandler(feeService),
		Gallery:      handler.NewGalleryHandler(galleryService),
		Media:        handler.NewMediaHandler(mediaService),
		Admin:        handler.NewAdminHandler(adminService),
		WS:           handler.NewWSHandler(hub, cfg.JWTSecret),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      NewRouter(handlers, cfg.JWTSecret),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		log.Printf("[Server] Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("[Server] Stopped")
	return nil
}
