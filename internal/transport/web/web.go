package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/avstrong/pricelist/internal/logger"
	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/gin-gonic/gin"
)

type Server struct {
	srv      *http.Server
	router   *gin.Engine
	l        *logger.Logger
	conf     Conf
	pManager *pricing.Manager
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	AllowedOrigins    []string
}

func New(ctx context.Context, conf Conf, pricingManager *pricing.Manager) (*Server, error) {
	router := gin.New()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           router,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   router,
		l:        conf.L,
		conf:     conf,
		pManager: pricingManager,
	}

	server.addRoutes(router)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}
