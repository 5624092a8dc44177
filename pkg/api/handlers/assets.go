package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"modboard/pkg/assets"
	"modboard/pkg/utils"
)

// RegisterAssets registers the handle-serving endpoint. Issued display
// URLs point here; content is served from memory without re-transmitting
// credentials upstream.
func RegisterAssets(r *mux.Router, reg *assets.Registry) {
	r.HandleFunc("/assets/{scope}/{handle}", func(w http.ResponseWriter, req *http.Request) {
		serveAsset(w, req, reg)
	}).Methods(http.MethodGet)
}

func serveAsset(w http.ResponseWriter, req *http.Request, reg *assets.Registry) {
	vars := mux.Vars(req)
	data, ct, ok := reg.Open(vars["scope"], vars["handle"])
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "handle not found")
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, no-store")
	_, _ = w.Write(data)
}
