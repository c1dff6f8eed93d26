package router

import (
	"context"
	"net/http"
	"time"

	_ "animal-reservations/docs"
	mem "animal-reservations/internal/adapters/storage/memory"
	pg "animal-reservations/internal/adapters/storage/postgres"
	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/middleware"
	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/httpx"
	"animal-reservations/internal/platform/logger"
	"animal-reservations/internal/platform/metrics"
	"animal-reservations/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Tokens emite y verifica bearer tokens (jwtauth.Manager).
type Tokens interface {
	auth.TokenIssuer
	auth.AuthVerifier
}

type Options struct {
	Tokens Tokens

	// Si viene DB usa Postgres; si no, Memory (o un store vacío nuevo).
	DB     *sqlx.DB
	Memory *mem.Store

	Logger logger.Logger

	CORSOrigins       []string
	RequestTimeout    time.Duration // 0 = sin límite
	AuthRatePerSecond float64       // 0 = sin rate limit en login/signup
	AuthRateBurst     int
}

type Services struct {
	Users        *users.Service
	Animals      *animals.Service
	Reservations *reservations.Service
}

// NewServices arma los services sobre el storage que indique opts.
func NewServices(opts Options) Services {
	var (
		userRepo        users.Repository
		animalRepo      animals.Repository
		reservationRepo reservations.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		reservationRepo = pg.NewReservationsRepo(opts.DB)
	} else {
		st := opts.Memory
		if st == nil {
			st = mem.NewStore()
		}
		userRepo = mem.NewUserRepo(st)
		animalRepo = mem.NewAnimalRepo(st)
		reservationRepo = mem.NewReservationRepo(st)
	}

	return Services{
		Users:        users.NewService(userRepo, opts.Tokens),
		Animals:      animals.NewService(animalRepo),
		Reservations: reservations.NewService(reservationRepo),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(opts.CORSOrigins))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Use(middleware.AuthContext(opts.Tokens))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorBody{Name: "RouteNotFoundError", Message: "route not found"})
	})

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svcs := NewServices(opts)

	var authLimit func(http.Handler) http.Handler
	if opts.AuthRatePerSecond > 0 {
		authLimit = middleware.NewRateLimiter(opts.AuthRatePerSecond, opts.AuthRateBurst, log).Handler
	}

	// Rutas por módulo
	users.RegisterRoutes(r, svcs.Users, svcs.Reservations, log, authLimit)
	animals.RegisterRoutes(r, svcs.Animals, svcs.Reservations)
	reservations.RegisterRoutes(r, svcs.Reservations)

	return r
}

// healthHandler: con Postgres también hace ping.
func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				httpx.WriteError(w, r, apperr.Store(err))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
