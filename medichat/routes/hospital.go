package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"medichat/medichat/controllers"
	"medichat/medichat/types"

	"github.com/go-chi/chi/v5"
)

func HospitalRoutes(ctrl *controllers.HospitalController) chi.Router {
	r := chi.NewRouter()
	// POST /hospital-query : structured extraction, no model
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := ctrl.HospitalQuery(req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	return r
}

func EmbeddingsRoutes(ctrl *controllers.EmbeddingsController) chi.Router {
	r := chi.NewRouter()
	// POST /hospital-embeddings
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := ctrl.EmbeddingsQuery(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	return r
}

func UpdateDataRoutes(ctrl *controllers.EmbeddingsController) chi.Router {
	r := chi.NewRouter()
	// POST /update-hospital-data
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		filePath := r.URL.Query().Get("file_path")
		resp, err := ctrl.UpdateData(r.Context(), filePath)
		if err != nil {
			if errors.Is(err, controllers.ErrFileNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	return r
}
