// Package respond writes JSON responses in the API envelope format.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

// envelope is the body of every API response.
type envelope struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

func OK(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusOK, envelope{Result: result})
}

func Created(w http.ResponseWriter, result interface{}) {
	JSON(w, http.StatusCreated, envelope{Result: result})
}

// Fail writes err as the error message of the response.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, envelope{Error: err.Error()})
}
