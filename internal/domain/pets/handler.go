package pets

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"pet-adoption-tracker/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Store, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/adopted", listAdoptedHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

type createPetRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	PetType string `json:"pet_type"`
	Image   *int   `json:"image,omitempty"`
}

type petResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PetType   string  `json:"pet_type"`
	Age       int     `json:"age"`
	IsAdopted bool    `json:"is_adopted"`
	Image     *int    `json:"image,omitempty"`
	OwnerName *string `json:"owner_name,omitempty"`
}

// createPetHandler godoc
// @Summary  Register a pet up for adoption
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    body body createPetRequest true "pet"
// @Success  201 {object} petResponse
// @Failure  400 {string} string
// @Router   /pets [post]
func createPetHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Insert(r.Context(), req.Name, req.Age, req.PetType, req.Image)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, log, "insert pet", err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary  List pets available for adoption
// @Tags     pets
// @Produce  json
// @Param    type query string false "pet type prefix (case-sensitive)"
// @Success  200 {array} petResponse
// @Router   /pets [get]
func listPetsHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Pet
			err   error
		)
		if petType := r.URL.Query().Get("type"); petType != "" {
			items, err = svc.ListFiltered(r.Context(), petType)
		} else {
			items, err = svc.ListAvailable(r.Context())
		}
		if err != nil {
			internalError(w, log, "list pets", err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// listAdoptedHandler godoc
// @Summary  List adopted pets with their owner name
// @Tags     pets
// @Produce  json
// @Success  200 {array} petResponse
// @Router   /pets/adopted [get]
func listAdoptedHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAdopted(r.Context())
		if err != nil {
			internalError(w, log, "list adopted pets", err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// deletePetHandler godoc
// @Summary  Remove a pet
// @Tags     pets
// @Param    petID path string true "pet id"
// @Success  204
// @Router   /pets/{petID} [delete]
func deletePetHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			internalError(w, log, "delete pet", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		PetType:   p.PetType,
		Age:       p.Age,
		IsAdopted: p.IsAdopted,
		Image:     p.Image,
		OwnerName: p.OwnerName,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func internalError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	log.Error(op+" failed", map[string]any{"err": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
