package exporter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
	"github.com/LazarenkoA/jvm_process_exporter/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func ProcessList(exp *Processes) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}

		writeJSON(w, http.StatusOK, exp.manager.Snapshot())
	})
}

func Refresh(exp *Processes) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		logger.DefaultLogger.With("URL", r.URL.RequestURI()).Debug("Обновление списка процессов")

		if err := exp.refresh(r.Context()); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, jvm.ErrEnumerationUnavailable) {
				status = http.StatusServiceUnavailable
			}

			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, exp.manager.Snapshot())
	})
}

func Terminate(exp *Processes) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}

		pid := strings.TrimSpace(r.URL.Query().Get("pid"))
		if pid == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "не передан pid"})
			return
		}
		logger.DefaultLogger.With("URL", r.URL.RequestURI()).Info("Завершение процесса ", pid)

		res := exp.terminate(r.Context(), pid)
		if res.Success {
			writeJSON(w, http.StatusOK, res)
		} else {
			writeJSON(w, http.StatusConflict, res)
		}
	})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, fmt.Sprintf("Метод %q не поддерживается", r.Method), http.StatusMethodNotAllowed)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.DefaultLogger.Error(errors.Wrap(err, "encode response error"))
	}
}
