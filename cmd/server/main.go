// Command shakedown is the authoritative server core: one process holding
// the single GameEngine actor, the WebSocket gateway for phones and base
// devices, and the HTTP control plane.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/engine"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/gateway"
	"github.com/motionjam/shakedown/internal/httpapi"
	"github.com/motionjam/shakedown/internal/logging"
	"github.com/motionjam/shakedown/internal/role"
	"github.com/motionjam/shakedown/internal/session"
	"github.com/motionjam/shakedown/internal/team"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "shakedown: panic:", r)
			os.Exit(1)
		}
	}()

	cmd := newRootCmd(runServer)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shakedown:", err)
		os.Exit(1)
	}
}

func runServer(cfg *config.Process) error {
	var logOpts []logging.Option
	if cfg.LogToFile {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOpts = append(logOpts, logging.WithFile(f))
	}
	log := logging.New(logging.ParseLevel(cfg.LogLevel), logOpts...)
	log.Info("startup", "starting on port %d (dev=%v, tls=%v)", cfg.Port, cfg.DevMode, cfg.UsesTLS())

	settings, err := config.NewStore(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	conn := session.NewManager()
	teams := team.NewManager(2)
	bases := base.NewManager()
	roles := role.NewRegistry()
	effects := effect.NewRegistry()
	bus := eventbus.New()

	host := actor.NewEngine()
	host.OnPanic = func(pid *actor.PID, msg interface{}, r interface{}) {
		log.Error("actor", "panic in %s handling %T: %v", pid.ID, msg, r)
	}

	props := actor.NewProps(engine.NewProducer(engine.Deps{
		Bus:      bus,
		Log:      log,
		Conn:     conn,
		Teams:    teams,
		Bases:    bases,
		Roles:    roles,
		Effects:  effects,
		Settings: settings,
		TickRate: cfg.TickRate,
	}))
	enginePID := host.Spawn(props)

	gw := gateway.New(host, enginePID, bus, conn, log)
	router := httpapi.New(host, enginePID, settings, conn, bases, log, cfg.DevMode)

	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.HandleFunc("/ws", gw.ServeHTTP)
	mux.HandleFunc("/ws/base", gw.ServeBaseHTTP)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: corsMiddleware(cfg.AllowedOrigins, mux),
	}

	stopSweep := make(chan struct{})
	go runHeartbeatSweep(conn, log, stopSweep)

	serveErrCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.UsesTLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			log.Warn("startup", "no TLS certificate configured, serving plain HTTP")
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown", "received %s, draining", sig)
	case err := <-serveErrCh:
		if err != nil {
			log.Error("shutdown", "listener failed: %v", err)
		}
	}

	close(stopSweep)
	_ = srv.Close()
	host.Shutdown(cfg.ShutdownGrace)

	log.Info("shutdown", "stopped")
	return nil
}

func runHeartbeatSweep(conn *session.Manager, log *logging.Logger, stop chan struct{}) {
	ticker := time.NewTicker(session.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if expired := conn.Sweep(); len(expired) > 0 {
				log.Info("session", "swept %d expired session(s)", len(expired))
			}
		case <-stop:
			return
		}
	}
}

// corsMiddleware allows the configured origins (or all, by default) to
// call the HTTP API from a browser-hosted controller page.
func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	origin := "*"
	if len(allowedOrigins) > 0 {
		origin = strings.Join(allowedOrigins, ", ")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
