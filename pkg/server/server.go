// Package server hosts the account and score API, the position relay and
// the static browser build.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golangdaddy/roadrush/pkg/auth"
	"github.com/golangdaddy/roadrush/pkg/mailer"
	"github.com/golangdaddy/roadrush/pkg/relay"
	"github.com/golangdaddy/roadrush/pkg/store"
	"github.com/julienschmidt/httprouter"
)

type Server struct {
	cfg    *Config
	store  store.Store
	tokens *auth.Tokens
	mailer mailer.Sender
	hub    *relay.Hub
}

// New wires a server around its collaborators. The hub must already be running.
func New(cfg *Config, st store.Store, sender mailer.Sender, hub *relay.Hub) *Server {
	return &Server{
		cfg:    cfg,
		store:  st,
		tokens: auth.NewTokens([]byte(cfg.JWTSecret), cfg.OTPTTL),
		mailer: sender,
		hub:    hub,
	}
}

func (s *Server) Handler() http.Handler {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		errorf("panic serving %s %s: %v", r.Method, r.URL.Path, i)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}

	mux.POST("/api/register", s.serveRegister)
	mux.POST("/api/login", s.serveLogin)
	mux.POST("/api/verify-otp", s.serveVerifyOTP)
	mux.GET("/api/score", s.serveGetScore)
	mux.POST("/api/score", s.servePostScore)

	mux.Handler(http.MethodGet, "/ws", s.hub)

	mux.GET("/healthz", serveHealthCheck)
	mux.GET("/version", serveVersion)
	mux.GET("/qr", serveQR)

	if s.cfg.Profile {
		registerProfileHandlers(mux)
	}

	if s.cfg.PublicDir != "" {
		files := http.FileServer(http.Dir(s.cfg.PublicDir))
		mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			securityHeaders(w)
			files.ServeHTTP(w, r)
		})
	}

	return mux
}

func openStore(ctx context.Context, cfg *Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		logf(cfg, "START: Using in-memory account store")
		return store.NewMemory(), nil
	}
	logf(cfg, "START: Connecting to PostgreSQL")
	return store.OpenPostgres(ctx, cfg.DatabaseURL)
}

func newSender(cfg *Config) (mailer.Sender, error) {
	if cfg.SMTP.Host == "" {
		if cfg.OTP {
			logf(cfg, "START: No --smtp-host, login codes go to the log")
		}
		return mailer.Log{}, nil
	}
	return mailer.NewSMTP(cfg.SMTP)
}

// Serve runs the server until ctx is cancelled.
func Serve(ctx context.Context, cfg *Config) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
	}

	logf(cfg, "START: roadrush v%s", ReleaseVersion)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	hub := relay.NewHub()
	hub.Logf = func(format string, args ...any) { logf(cfg, format, args...) }
	go hub.Run()
	defer hub.Stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler:           New(cfg, st, sender, hub).Handler(),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	errs := make(chan error, 1)
	go func() {
		logf(cfg, "SERVE: Listening on http://%s/", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	logf(cfg, "SERVE: Shut down")
	return nil
}
