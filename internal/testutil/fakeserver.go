// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"

	"taskpad/internal/api"
	"taskpad/internal/config"
)

// Operation names for error injection.
const (
	OpFetchLists = "fetchLists"
	OpGetList    = "getList"
	OpCreateList = "createList"
	OpUpdateList = "updateList"
	OpDeleteList = "deleteList"
	OpFetchTasks = "fetchTasks"
	OpCreateTask = "createTask"
	OpGetTask    = "getTask"
	OpUpdateTask = "updateTask"
	OpDeleteTask = "deleteTask"
)

// FakeServer is an in-memory implementation of the task REST API,
// served over httptest. Ids are server-assigned. Individual operations
// can be made to fail with a chosen status code.
type FakeServer struct {
	mu    sync.Mutex
	srv   *httptest.Server
	lists []api.TaskList
	tasks map[string][]api.Task
	fail  map[string]int // operation -> status to return
}

// NewFakeServer starts a fake API server with no lists.
func NewFakeServer() *FakeServer {
	f := &FakeServer{
		tasks: make(map[string][]api.Task),
		fail:  make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/task-lists", f.handleFetchLists)
	mux.HandleFunc("POST /api/task-lists", f.handleCreateList)
	mux.HandleFunc("GET /api/task-lists/{id}", f.handleGetList)
	mux.HandleFunc("PUT /api/task-lists/{id}", f.handleUpdateList)
	mux.HandleFunc("DELETE /api/task-lists/{id}", f.handleDeleteList)
	mux.HandleFunc("GET /api/task-lists/{id}/tasks", f.handleFetchTasks)
	mux.HandleFunc("POST /api/task-lists/{id}/tasks", f.handleCreateTask)
	mux.HandleFunc("GET /api/task-lists/{id}/tasks/{taskId}", f.handleGetTask)
	mux.HandleFunc("PUT /api/task-lists/{id}/tasks/{taskId}", f.handleUpdateTask)
	mux.HandleFunc("DELETE /api/task-lists/{id}/tasks/{taskId}", f.handleDeleteTask)

	f.srv = httptest.NewServer(mux)
	return f
}

// URL returns the server's base URL.
func (f *FakeServer) URL() string {
	return f.srv.URL
}

// Close shuts the server down.
func (f *FakeServer) Close() {
	f.srv.Close()
}

// Config returns a client config pointing at this server.
func (f *FakeServer) Config() *config.Config {
	return &config.Config{BaseURL: f.srv.URL, TimeoutSeconds: 2, Quiet: false}
}

// FailWith makes the named operation respond with the given status.
func (f *FakeServer) FailWith(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = status
}

// Recover clears an injected failure.
func (f *FakeServer) Recover(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fail, op)
}

// AddList seeds a list and returns the server's representation.
func (f *FakeServer) AddList(title, description string) api.TaskList {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := api.TaskList{ID: uuid.NewString(), Title: title, Description: description}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	return list
}

// AddTask seeds a task and returns the server's representation.
func (f *FakeServer) AddTask(listID, title string, status api.Status) api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := api.Task{
		ID:       uuid.NewString(),
		ListID:   listID,
		Title:    title,
		Priority: api.PriorityMedium,
		Status:   status,
	}
	f.tasks[listID] = append(f.tasks[listID], task)
	return task
}

// Tasks returns the server's current tasks for a list.
func (f *FakeServer) Tasks(listID string) []api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Task(nil), f.tasks[listID]...)
}

// Lists returns the server's current lists.
func (f *FakeServer) Lists() []api.TaskList {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.TaskList(nil), f.lists...)
}

// failing checks error injection and writes the failure response.
func (f *FakeServer) failing(w http.ResponseWriter, op string) bool {
	if status, ok := f.fail[op]; ok {
		http.Error(w, `{"error":"injected failure"}`, status)
		return true
	}
	return false
}

func (f *FakeServer) findList(id string) (int, bool) {
	for i, l := range f.lists {
		if l.ID == id {
			return i, true
		}
	}
	return 0, false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (f *FakeServer) handleFetchLists(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpFetchLists) {
		return
	}
	lists := f.lists
	if lists == nil {
		lists = []api.TaskList{}
	}
	writeJSON(w, lists)
}

func (f *FakeServer) handleCreateList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpCreateList) {
		return
	}
	var draft api.TaskList
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	list := api.TaskList{ID: uuid.NewString(), Title: draft.Title, Description: draft.Description}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	writeJSON(w, list)
}

func (f *FakeServer) handleGetList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpGetList) {
		return
	}
	i, ok := f.findList(r.PathValue("id"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, f.lists[i])
}

func (f *FakeServer) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpUpdateList) {
		return
	}
	i, ok := f.findList(r.PathValue("id"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	var full api.TaskList
	if err := json.NewDecoder(r.Body).Decode(&full); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	full.ID = f.lists[i].ID
	f.lists[i] = full
	writeJSON(w, full)
}

func (f *FakeServer) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpDeleteList) {
		return
	}
	id := r.PathValue("id")
	i, ok := f.findList(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	f.lists = append(f.lists[:i], f.lists[i+1:]...)
	delete(f.tasks, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeServer) handleFetchTasks(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpFetchTasks) {
		return
	}
	id := r.PathValue("id")
	if _, ok := f.findList(id); !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	tasks := f.tasks[id]
	if tasks == nil {
		tasks = []api.Task{}
	}
	writeJSON(w, tasks)
}

func (f *FakeServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpCreateTask) {
		return
	}
	id := r.PathValue("id")
	if _, ok := f.findList(id); !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	var draft api.Task
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	task := api.Task{
		ID:       uuid.NewString(),
		ListID:   id,
		Title:    draft.Title,
		Priority: draft.Priority,
		Due:      draft.Due,
		Status:   draft.Status,
	}
	if task.Priority == "" {
		task.Priority = api.PriorityMedium
	}
	if task.Status == "" {
		task.Status = api.StatusOpen
	}
	f.tasks[id] = append(f.tasks[id], task)
	writeJSON(w, task)
}

func (f *FakeServer) findTask(listID, taskID string) (int, bool) {
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			return i, true
		}
	}
	return 0, false
}

func (f *FakeServer) handleGetTask(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpGetTask) {
		return
	}
	listID := r.PathValue("id")
	i, ok := f.findTask(listID, r.PathValue("taskId"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, f.tasks[listID][i])
}

func (f *FakeServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpUpdateTask) {
		return
	}
	listID := r.PathValue("id")
	i, ok := f.findTask(listID, r.PathValue("taskId"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	var full api.Task
	if err := json.NewDecoder(r.Body).Decode(&full); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	full.ID = f.tasks[listID][i].ID
	full.ListID = listID
	f.tasks[listID][i] = full
	writeJSON(w, full)
}

func (f *FakeServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing(w, OpDeleteTask) {
		return
	}
	listID := r.PathValue("id")
	i, ok := f.findTask(listID, r.PathValue("taskId"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	f.tasks[listID] = append(f.tasks[listID][:i], f.tasks[listID][i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
