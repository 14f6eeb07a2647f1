package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Method string

const (
	GET  Method = "GET"
	POST Method = "POST"
)

const shutdownTimeout = 5 * time.Second

// Handler processes a request and returns the payload with the status code.
// A non-nil error is written as a failed json response,
// with the returned code if it denotes a failure, or 500 otherwise.
type Handler func(ctx context.Context, r *http.Request) ([]byte, int, error)

type Route struct {
	Path   string
	Method Method
	Exec   Handler
}

type Server struct {
	name   string
	port   int
	debug  bool
	router *mux.Router
}

var validate = validator.New()

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		router: mux.NewRouter(),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds the given route to the server
func (s *Server) AddRoute(method Method, path string, exec Handler) *Server {
	return s.Add(Route{
		Path:   path,
		Method: method,
		Exec:   exec,
	})
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	for _, r := range route {
		s.router.HandleFunc(r.Path, s.handle(r)).Methods(string(r.Method))
	}
	return s
}

// Handle mounts a plain http handler on the given path.
func (s *Server) Handle(path string, handler http.Handler) *Server {
	s.router.Handle(path, handler)
	return s
}

// Handler returns the http handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		b, code, err := route.Exec(r.Context(), r)
		if err != nil {
			if code < http.StatusBadRequest {
				code = http.StatusInternalServerError
			}
			s.error(w, r, err, code)
		} else {
			if code == 0 {
				code = http.StatusOK
			}
			s.respond(w, b, code)
		}
		if s.debug {
			log.Debug().
				Str("server", s.name).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("code", code).
				Dur("duration", time.Since(start)).
				Msg("request")
		}
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not start server: %w", err)
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Str("server", s.name).Msg("stopping server")
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("could not stop server: %w", err)
	}
	return nil
}

func (s *Server) respond(w http.ResponseWriter, b []byte, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, r *http.Request, err error, code int) {
	log.Error().Err(err).
		Str("server", s.name).
		Str("path", r.URL.Path).
		Int("code", code).
		Msg("error for http request")
	b, _, jsonErr := Json(Response{
		Success: false,
		Error:   err.Error(),
	}, code)
	if jsonErr != nil {
		b = []byte(err.Error())
	}
	s.respond(w, b, code)
}

func Live() Route {
	return Route{
		Path:   "/health",
		Method: GET,
		Exec: func(ctx context.Context, r *http.Request) (payload []byte, code int, err error) {
			return Ok("ok")
		},
	}
}

// ReadJson decodes the request body into v and validates it.
func ReadJson(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("could not read body: %w", err)
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return fmt.Errorf("could not decode body: %w", err)
		}
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// Var returns the named path variable of the request.
func Var(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
