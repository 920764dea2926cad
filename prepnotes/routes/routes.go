// prepnotes/routes/routes.go
package routes

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"prepnotes/prepnotes/utils/apperrors"
	"prepnotes/prepnotes/utils/logging"
)

// handleJSON wraps a handler returning (payload, success status, error)
// and shapes the response. Error status codes come from the error kind.
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
