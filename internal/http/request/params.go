package request

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// RouteIntParam returns an URL route parameter as int.
func RouteIntParam(r *http.Request, param string) int {
	vars := mux.Vars(r)
	value, err := strconv.Atoi(vars[param])
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// QueryStringParam returns a query string parameter as string.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := strings.TrimSpace(r.URL.Query().Get(param))
	if value == "" {
		value = defaultValue
	}
	return value
}

// QueryIntParam returns a query string parameter as int.
func QueryIntParam(r *http.Request, param string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(param))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer, got %q", param, value)
	}
	return parsed, nil
}

// QueryInt64Param returns a query string parameter as int64.
func QueryInt64Param(r *http.Request, param string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(param))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Errorf("%s must be a 64-bit integer, got %q", param, value)
	}
	return parsed, nil
}

// QueryFloatParam returns a query string parameter as a finite float64.
func QueryFloatParam(r *http.Request, param string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(param))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, errors.Errorf("%s must be a finite number, got %q", param, value)
	}
	return parsed, nil
}
