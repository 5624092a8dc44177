package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"modboard/pkg/assets"
	"modboard/pkg/logger"
	"modboard/pkg/utils"
)

// RegisterScopes registers scope lifecycle and resolution endpoints.
func RegisterScopes(r *mux.Router, reg *assets.Registry) {
	r.HandleFunc("/scopes", func(w http.ResponseWriter, req *http.Request) {
		createScope(w, req, reg)
	}).Methods(http.MethodPost)
	r.HandleFunc("/scopes/{id}/resolve", func(w http.ResponseWriter, req *http.Request) {
		resolveScope(w, req, reg)
	}).Methods(http.MethodPost)
	r.HandleFunc("/scopes/{id}/refresh", func(w http.ResponseWriter, req *http.Request) {
		refreshScope(w, req, reg)
	}).Methods(http.MethodPost)
	r.HandleFunc("/scopes/{id}", func(w http.ResponseWriter, req *http.Request) {
		disposeScope(w, req, reg)
	}).Methods(http.MethodDelete)
}

func createScope(w http.ResponseWriter, _ *http.Request, reg *assets.Registry) {
	id := reg.CreateScope()
	logger.Info("scope_created", "scope", id)
	_ = utils.JSONWrite(w, http.StatusCreated, map[string]string{"id": id})
}

type resolveRequest struct {
	References []interface{} `json:"references"`
}

type resolveResponse struct {
	Resolved []string `json:"resolved"`
}

func resolveScope(w http.ResponseWriter, req *http.Request, reg *assets.Registry) {
	id := mux.Vars(req)["id"]
	var body resolveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	out := reg.ResolveMany(req.Context(), id, body.References)
	logger.Info("scope_resolved", "scope", id, "count", len(out))
	_ = utils.JSONWrite(w, http.StatusOK, resolveResponse{Resolved: out})
}

func refreshScope(w http.ResponseWriter, req *http.Request, reg *assets.Registry) {
	id := mux.Vars(req)["id"]
	out := reg.Refresh(req.Context(), id)
	logger.Info("scope_refreshed", "scope", id, "count", len(out))
	_ = utils.JSONWrite(w, http.StatusOK, resolveResponse{Resolved: out})
}

func disposeScope(w http.ResponseWriter, req *http.Request, reg *assets.Registry) {
	id := mux.Vars(req)["id"]
	reg.Dispose(id)
	logger.Info("scope_disposed", "scope", id)
	w.WriteHeader(http.StatusNoContent)
}
