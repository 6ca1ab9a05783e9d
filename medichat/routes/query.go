package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"medichat/medichat/controllers"
	"medichat/medichat/types"

	"github.com/go-chi/chi/v5"
)

func QueryRoutes(ctrl *controllers.QueryController) chi.Router {
	r := chi.NewRouter()
	// POST /query : retrieval-augmented medical answer
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := ctrl.Query(r.Context(), req)
		if err != nil {
			if errors.Is(err, controllers.ErrEmptyQuery) {
				writeError(w, http.StatusBadRequest, err.Error())
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
