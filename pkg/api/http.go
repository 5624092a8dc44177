package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"modboard/pkg/api/handlers"
	"modboard/pkg/assets"
)

// Handler returns the service's HTTP surface:
//   - POST   /v1/scopes                    create a scope
//   - POST   /v1/scopes/{id}/resolve       resolve references for a scope
//   - POST   /v1/scopes/{id}/refresh       re-resolve the scope's reference set
//   - DELETE /v1/scopes/{id}               dispose the scope
//   - GET    /v1/assets/{scope}/{handle}   serve a live asset handle
//   - POST   /v1/normalize/messages        normalize a raw submission payload
//   - POST   /v1/normalize/analysis        normalize an AI annotation object
//   - GET    /v1/admin/scopes              live scope stats
//   - PUT/GET/DELETE /v1/admin/credential  manage the media bearer credential
//   - PUT/GET /v1/admin/analysis-defaults  manage stored fallback defaults
//   - GET    /healthz
func Handler(reg *assets.Registry) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	handlers.RegisterScopes(v1, reg)
	handlers.RegisterAssets(v1, reg)
	handlers.RegisterNormalize(v1)
	handlers.RegisterAdmin(v1, reg)
	return r
}
