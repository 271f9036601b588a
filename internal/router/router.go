package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pet-adoption-tracker/internal/adapters/storage/memory"
	_ "pet-adoption-tracker/internal/docs"
	"pet-adoption-tracker/internal/domain/owners"
	"pet-adoption-tracker/internal/domain/pets"
	"pet-adoption-tracker/internal/middleware"
	"pet-adoption-tracker/internal/platform/dispatch"
	"pet-adoption-tracker/internal/platform/logger"
	"pet-adoption-tracker/internal/ports/storage"
)

type Options struct {
	// Opcional: si no viene, usa el motor in-memory (modo dev).
	DB storage.DB

	Dispatcher *dispatch.Dispatcher
	Logger     logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	db := opts.DB
	if db == nil {
		db = mem.New()
	}
	d := opts.Dispatcher
	if d == nil {
		d = dispatch.New(dispatch.DefaultWorkers)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Ambos stores comparten motor y dispatcher
	ownersSvc := owners.NewStore(owners.Config{DB: db, Dispatcher: d, Logger: log})
	petsSvc := pets.NewStore(pets.Config{DB: db, Dispatcher: d, Logger: log})

	owners.RegisterRoutes(r, ownersSvc, log)
	pets.RegisterRoutes(r, petsSvc, log)

	return r
}
