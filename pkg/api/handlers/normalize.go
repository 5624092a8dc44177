package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"modboard/pkg/credstore"
	"modboard/pkg/logger"
	"modboard/pkg/models"
	"modboard/pkg/normalize"
	"modboard/pkg/utils"
)

// RegisterNormalize registers the payload and annotation normalization
// endpoints. Both are total: malformed input yields empty canonical
// output, never an error status.
func RegisterNormalize(r *mux.Router) {
	r.HandleFunc("/normalize/messages", normalizeMessages).Methods(http.MethodPost)
	r.HandleFunc("/normalize/analysis", normalizeAnalysis).Methods(http.MethodPost)
}

func normalizeMessages(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		body = nil
	}
	var raw interface{}
	if json.Unmarshal(body, &raw) != nil {
		// not JSON: hand the bytes to the normalizer as a string payload,
		// which degrades to an empty sequence
		raw = string(body)
	}
	msgs := normalize.Messages(raw)
	logger.Debug("messages_normalized", "count", len(msgs))
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

type analysisRequest struct {
	Annotation interface{}              `json:"annotation"`
	Defaults   *models.AnalysisDefaults `json:"defaults"`
}

func normalizeAnalysis(w http.ResponseWriter, req *http.Request) {
	var body analysisRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		body = analysisRequest{}
	}
	defaults := models.AnalysisDefaults{}
	if body.Defaults != nil {
		defaults = *body.Defaults
	} else if stored, ok, err := credstore.Get(credstore.AnalysisDefaultsKey); err == nil && ok {
		_ = json.Unmarshal([]byte(stored), &defaults)
	}
	flags := normalize.Analysis(body.Annotation, defaults)
	_ = utils.JSONWrite(w, http.StatusOK, flags)
}
