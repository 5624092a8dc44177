package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"modboard/pkg/assets"
	"modboard/pkg/credstore"
	"modboard/pkg/logger"
	"modboard/pkg/models"
	"modboard/pkg/utils"
)

// RegisterAdmin registers operator endpoints: scope stats, the media
// bearer credential and stored analysis fallback defaults. The credential
// is never echoed back.
func RegisterAdmin(r *mux.Router, reg *assets.Registry) {
	r.HandleFunc("/admin/scopes", func(w http.ResponseWriter, req *http.Request) {
		listScopes(w, req, reg)
	}).Methods(http.MethodGet)
	r.HandleFunc("/admin/credential", putCredential).Methods(http.MethodPut)
	r.HandleFunc("/admin/credential", getCredential).Methods(http.MethodGet)
	r.HandleFunc("/admin/credential", deleteCredential).Methods(http.MethodDelete)
	r.HandleFunc("/admin/analysis-defaults", putAnalysisDefaults).Methods(http.MethodPut)
	r.HandleFunc("/admin/analysis-defaults", getAnalysisDefaults).Methods(http.MethodGet)
}

func listScopes(w http.ResponseWriter, _ *http.Request, reg *assets.Registry) {
	stats := reg.Stats()
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{
		"scopes": stats,
		"count":  len(stats),
	})
}

func putCredential(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Token == "" {
		utils.JSONError(w, http.StatusBadRequest, "token required")
		return
	}
	if err := credstore.Set(credstore.MediaTokenKey, body.Token); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	logger.Info("media_credential_updated")
	w.WriteHeader(http.StatusNoContent)
}

func getCredential(w http.ResponseWriter, _ *http.Request) {
	_, ok, err := credstore.Get(credstore.MediaTokenKey)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]bool{"present": ok})
}

func deleteCredential(w http.ResponseWriter, _ *http.Request) {
	if err := credstore.Delete(credstore.MediaTokenKey); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	logger.Info("media_credential_cleared")
	w.WriteHeader(http.StatusNoContent)
}

func putAnalysisDefaults(w http.ResponseWriter, req *http.Request) {
	var defaults models.AnalysisDefaults
	if err := json.NewDecoder(req.Body).Decode(&defaults); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	b, _ := json.Marshal(defaults)
	if err := credstore.Set(credstore.AnalysisDefaultsKey, string(b)); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getAnalysisDefaults(w http.ResponseWriter, _ *http.Request) {
	defaults := models.AnalysisDefaults{}
	if stored, ok, err := credstore.Get(credstore.AnalysisDefaultsKey); err == nil && ok {
		_ = json.Unmarshal([]byte(stored), &defaults)
	}
	_ = utils.JSONWrite(w, http.StatusOK, defaults)
}
