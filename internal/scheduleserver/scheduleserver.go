package scheduleserver

import (
	"context"
	"net/http"

	"github.com/univbot/schedule-system/internal/logger"
)

type middlewareFunc func(next http.Handler) http.Handler

// ScheduleServer оборачивает http.Server с цепочкой middleware
type ScheduleServer struct {
	Log         logger.Logger
	middlewares []middlewareFunc
	mux         http.Handler
	address     string
	server      *http.Server
}

func NewScheduleServer(address string, mux http.Handler, log logger.Logger) *ScheduleServer {
	return &ScheduleServer{
		address: address,
		mux:     mux,
		Log:     log,
	}
}

func (ss *ScheduleServer) AddMiddleware(funcs ...middlewareFunc) {
	ss.middlewares = append(ss.middlewares, funcs...)
}

func (ss *ScheduleServer) RunServer() {
	handler := ss.mux

	for _, f := range ss.middlewares {
		handler = f(handler)
	}

	ss.server = &http.Server{
		Addr:    ss.address,
		Handler: handler,
	}
	ss.Log.Infof("Starting server on %s", ss.address)
	if err := ss.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ss.Log.Errorf("starting server on %s error: %s", ss.address, err)
	}
}

func (ss *ScheduleServer) Shutdown(ctx context.Context) error {
	return ss.server.Shutdown(ctx)
}
