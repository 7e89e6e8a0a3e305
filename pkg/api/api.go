// Package api реализует HTTP API списка задач и отдаёт стартовую страницу.
package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"skillfactory/todo/pkg/service"
	"skillfactory/todo/pkg/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Максимальный размер тела запроса.
const maxBodySize = 1 << 20

//go:embed web/index.html
var indexHTML []byte

// API приложения.
type API struct {
	r       *mux.Router
	svc     *service.TaskService
	log     *logrus.Entry
	metrics *metrics
}

type errorResponse struct {
	Error string `json:"error"`
}

type createTaskRequest struct {
	Title *string `json:"title"`
}

type deleteTaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// New создаёт API. Метрики регистрируются в reg и отдаются на /metrics.
func New(svc *service.TaskService, log *logrus.Entry, reg *prometheus.Registry) *API {
	api := API{
		r:       mux.NewRouter(),
		svc:     svc,
		log:     log,
		metrics: newMetrics(reg),
	}
	api.endpoints(reg)
	return &api
}

// Router возвращает обработчик со всеми middleware.
func (api *API) Router() http.Handler {
	return requestIDMiddleware(api.loggingMiddleware(api.r))
}

// Регистрация обработчиков API.
func (api *API) endpoints(reg *prometheus.Registry) {
	api.r.Use(api.metrics.middleware)

	api.r.HandleFunc("/api/tasks", api.listTasksHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/api/tasks", api.createTaskHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/api/tasks/{id}", api.getTaskHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/api/tasks/{id}", api.toggleTaskHandler).Methods(http.MethodPut)
	api.r.HandleFunc("/api/tasks/{id}", api.deleteTaskHandler).Methods(http.MethodDelete)

	api.r.HandleFunc("/", api.indexHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/health", api.healthHandler).Methods(http.MethodGet)
	api.r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api.r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})
	api.r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
}

func (api *API) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := api.svc.ListTasks(r.Context())
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (api *API) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req)
	if err != nil {
		// тело не JSON или title не строка
		req.Title = nil
	}

	task, err := api.svc.CreateTask(r.Context(), req.Title)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	api.entry(r).WithField("task_id", task.ID).Info("task created")
	writeJSON(w, http.StatusCreated, task)
}

func (api *API) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		api.writeError(w, r, service.ErrNotFound)
		return
	}
	task, err := api.svc.GetTask(r.Context(), id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (api *API) toggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		api.writeError(w, r, service.ErrNotFound)
		return
	}
	task, err := api.svc.ToggleTask(r.Context(), id)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	api.entry(r).WithFields(logrus.Fields{
		"task_id":   task.ID,
		"completed": task.Completed,
	}).Info("task toggled")
	writeJSON(w, http.StatusOK, task)
}

func (api *API) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		api.writeError(w, r, service.ErrNotFound)
		return
	}
	if err := api.svc.DeleteTask(r.Context(), id); err != nil {
		api.writeError(w, r, err)
		return
	}
	api.entry(r).WithField("task_id", id).Info("task deleted")
	writeJSON(w, http.StatusOK, deleteTaskResponse{Success: true, Message: "Task deleted"})
}

func (api *API) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (api *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// taskID читает {id} из пути. Нечисловой id означает,
// что такой задачи нет.
func taskID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeError переводит ошибку сервиса в HTTP-статус.
func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Task not found"})
	default:
		api.entry(r).WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
