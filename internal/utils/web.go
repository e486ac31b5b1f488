package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	internal_errors "github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/dailypush/dailypush/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// WriteErrorAndStatusCode reports errors carrying a status as is. Anything
// else is logged and answered with a bare 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status := internal_errors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed", "error", err)
		WriteJSON(w, status, errorBody{Error: "Internal server error"})
		return
	}
	WriteJSON(w, status, errorBody{Error: err.Error()})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validation.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return internal_errors.Validation("Required fields missing")
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	defer r.Close()
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(body); err != nil {
		logger.Log.Debug("failed to decode request body", "error", err)
		return internal_errors.Validation("Body is invalid json")
	}
	return nil
}

// ParseId parses a positive integer path parameter. Malformed ids are reported
// as not found, the same as ids that do not exist.
func ParseId(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.NotFound(what + " not found")
	}
	return id, nil
}

// ParsePage reads ?page=N. Missing or malformed values mean the first page.
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
