package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"schoolcomm/internal/handler"
	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/transport/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Notification *handler.NotificationHandler
	Chat         *handler.ChatHandler
	Announcement *handler.AnnouncementHandler
	Attendance   *handler.AttendanceHandler
	Homework     *handler.HomeworkHandler
	Fee          *handler.FeeHandler
	Gallery      *handler.GalleryHandler
	Media        *handler.MediaHandler
	Admin        *handler.AdminHandler
	WS           *handler.WSHandler
}

// NewRouter wires middleware and routes. Auth endpoints sit behind a
// per-IP rate limiter; everything under /api except auth requires a
// valid token.
func NewRouter(h Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Websocket handshake authenticates itself from the query string.
	r.Get("/ws", h.WS.Serve)

	authLimiter := middleware.NewRateLimiter(1, 10)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Handler)
			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtSecret))

			r.Get("/auth/profile", h.Auth.Profile)

			r.Get("/notifications", h.Notification.List)
			r.Post("/notifications/read", h.Notification.MarkRead)
			r.Post("/notifications/token", h.Notification.RegisterToken)

			r.Post("/chat/messages", h.Chat.Send)
			r.Get("/chat/messages/{userID}", h.Chat.Thread)
			r.Get("/chat/conversations", h.Chat.Conversations)

			r.Get("/announcements", h.Announcement.List)
			r.Get("/attendance", h.Attendance.List)
			r.Get("/attendance/stats/{studentID}", h.Attendance.Stats)
			r.Get("/homework", h.Homework.List)
			r.Get("/homework/submissions", h.Homework.Submissions)
			r.Post("/homework/submissions", h.Homework.Submit)
			r.Get("/fees", h.Fee.List)

			r.Get("/gallery/albums", h.Gallery.ListAlbums)
			r.Get("/gallery/albums/{albumID}/photos", h.Gallery.ListPhotos)

			r.Post("/media/attachments", h.Media.UploadAttachment)

			// Staff-only writes.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(model.RoleTeacher, model.RoleAdmin))

				r.Post("/announcements", h.Announcement.Create)
				r.Delete("/announcements/{id}", h.Announcement.Delete)
				r.Post("/attendance", h.Attendance.Mark)
				r.Post("/homework", h.Homework.Create)
				r.Post("/homework/grade", h.Homework.Grade)
				r.Post("/gallery/albums", h.Gallery.CreateAlbum)
				r.Post("/gallery/albums/{albumID}/photos", h.Gallery.UploadPhoto)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(model.RoleAdmin))

				r.Post("/fees", h.Fee.Create)
				r.Post("/fees/payments", h.Fee.RecordPayment)

				r.Route("/admin", func(r chi.Router) {
					r.Post("/users", h.Admin.CreateUser)
					r.Get("/users", h.Admin.ListUsers)
					r.Patch("/users/{userID}/active", h.Admin.SetUserActive)
					r.Post("/classes", h.Admin.CreateClass)
					r.Get("/classes", h.Admin.ListClasses)
					r.Post("/students", h.Admin.CreateStudent)
					r.Get("/students", h.Admin.ListStudents)
				})
			})
		})
	})

	return r
}
