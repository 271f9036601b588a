package owners

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"pet-adoption-tracker/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Store, log logger.Logger) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc, log))
		or.Get("/", listOwnersHandler(svc, log))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc, log))

		// Adopción: agrega la mascota a la colección del dueño
		or.Post("/{ownerID}/pets", adoptPetHandler(svc, log))
	})
}

type createOwnerRequest struct {
	Name  string `json:"name"`
	Image *int   `json:"image,omitempty"`
}

type adoptPetRequest struct {
	PetID string `json:"pet_id"`
}

type ownerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        *int   `json:"image,omitempty"`
	NumberOfPets int64  `json:"number_of_pets"`
}

// createOwnerHandler godoc
// @Summary  Register an owner
// @Tags     owners
// @Accept   json
// @Produce  json
// @Param    body body createOwnerRequest true "owner"
// @Success  201 {object} ownerResponse
// @Failure  400 {string} string
// @Router   /owners [post]
func createOwnerHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Insert(r.Context(), req.Name, req.Image)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, log, "insert owner", err)
			return
		}

		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

// listOwnersHandler godoc
// @Summary  List owners by name with their pet count
// @Tags     owners
// @Produce  json
// @Success  200 {array} ownerResponse
// @Router   /owners [get]
func listOwnersHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			internalError(w, log, "list owners", err)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// adoptPetHandler godoc
// @Summary  Adopt a pet
// @Description Unknown pet or owner ids are ignored, as the store does.
// @Tags     owners
// @Accept   json
// @Param    ownerID path string true "owner id"
// @Param    body body adoptPetRequest true "pet to adopt"
// @Success  204
// @Failure  400 {string} string
// @Router   /owners/{ownerID}/pets [post]
func adoptPetHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adoptPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.PetID) == "" {
			http.Error(w, "pet_id is required", http.StatusBadRequest)
			return
		}

		if err := svc.AdoptPet(r.Context(), req.PetID, chi.URLParam(r, "ownerID")); err != nil {
			internalError(w, log, "adopt pet", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteOwnerHandler godoc
// @Summary  Remove an owner and all of its pets
// @Tags     owners
// @Param    ownerID path string true "owner id"
// @Success  204
// @Router   /owners/{ownerID} [delete]
func deleteOwnerHandler(svc *Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "ownerID")); err != nil {
			internalError(w, log, "delete owner", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:           o.ID,
		Name:         o.Name,
		Image:        o.Image,
		NumberOfPets: o.NumberOfPets,
	}
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
