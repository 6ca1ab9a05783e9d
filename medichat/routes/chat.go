package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"medichat/medichat/controllers"
	"medichat/medichat/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()
	// POST /chat : screened, reasoned answer
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := ctrl.Chat(r.Context(), req)
		if err != nil {
			if errors.Is(err, controllers.ErrEmptyMessage) {
				writeError(w, http.StatusBadRequest, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	// GET /chat/ws : streamed answer chunks
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input types.ChatRequest
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		ch, err := ctrl.ChatStream(ctx, input.Message)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
			conn.Close(websocket.StatusInternalError, "stream error")
			return
		}

		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}
