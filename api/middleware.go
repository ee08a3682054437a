package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	sessions  *auth.Sessions
	users     UserLookup
}

func newAuthMiddleware(sessions *auth.Sessions, users UserLookup) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		logger:    logger,
		sessions:  sessions,
		users:     users,
	}
}

// resolveActor attaches the request's actor to the context. A missing,
// expired or unknown session makes the request anonymous; it never fails it.
func (m authMiddleware) resolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var langCookie string
		if c, err := r.Cookie(i18n.CookieName); err == nil {
			langCookie = c.Value
		}
		locale := i18n.Resolve(langCookie, r.Header.Get("Accept-Language"))
		actor := auth.Anonymous(locale)

		if token := auth.TokenFromRequest(r); token != "" {
			userID, err := m.sessions.Parse(token)
			if err == nil {
				user, err := m.users.FindByID(r.Context(), userID)
				switch {
				case err == nil:
					actor = auth.FromUser(user, locale)
				case errs.IsNotFound(err):
					m.logger.Debug().Str("userID", userID.String()).Msg("Session for deleted user")
				default:
					m.logger.Error().Err(err).Msg("Failed to load session user")
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
	})
}

func (m authMiddleware) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireAuthenticated(actorFrom(r)); err != nil {
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireAdmin(actorFrom(r)); err != nil {
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("requestID", requestIDFrom(r.Context())).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				if !srw.wroteHeader {
					NewResponder(log.Logger).writeInternalError(srw)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestID", requestIDFrom(r.Context())).
				Msg("500 error response")
		}
	})
}

// RequestID tags each request with an ID, reusing X-Request-ID when the
// client or a proxy already set one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), id)))
	})
}

// HTTPLoggingMiddleware logs every request at a level chosen by status class.
// With LOG_FORMAT=console the global logger renders these in color.
func HTTPLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = log.Error()
		case srw.status >= 400:
			logEvent = log.Warn()
		default:
			logEvent = log.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Str("requestID", requestIDFrom(r.Context())).
			Msg("HTTP Request")
	})
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// CORSCheckMiddleware answers a preflight from an origin outside the allow
// list with a JSON error instead of a bare response without CORS headers.
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && r.Method == http.MethodOptions && !originAllowed(allowedOrigins, origin) {
				NewResponder(log.Logger).WriteError(w, errs.NewCORSError(origin))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return originAllowed(allowedOrigins, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// limitBody caps request bodies at maxBytes.
func limitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				NewResponder(log.Logger).WriteError(w, errs.NewMaxBodySizeExceededError(maxBytes))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// rejectInvalidText answers 400 when the path or a query parameter is not
// valid UTF-8 or carries a NUL byte, before any of it reaches a query.
func rejectInvalidText(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if field, ok := invalidTextField(r); ok {
			NewResponder(log.Logger).WriteError(w,
				errs.NewInvalidFieldError(field, "must be valid UTF-8 text without NUL bytes"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func invalidTextField(r *http.Request) (string, bool) {
	if !services.ValidText(r.URL.Path) {
		return "path", true
	}
	for key, values := range r.URL.Query() {
		if !services.ValidText(key) {
			return "query", true
		}
		for _, v := range values {
			if !services.ValidText(v) {
				return key, true
			}
		}
	}
	return "", false
}
