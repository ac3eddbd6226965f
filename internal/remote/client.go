// Package remote wraps the task REST API. Each operation performs
// exactly one HTTP request and, on success, applies exactly one command
// to the local store using the server's response as payload. On any
// failure the store is left untouched and the error is returned to the
// caller after diagnostics are logged.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskpad/internal/api"
	"taskpad/internal/config"
	"taskpad/internal/store"
)

// basePath prefixes every route of the task API.
const basePath = "/api"

// Client issues requests against the task API and mirrors successful
// responses into its store. Calls may overlap; each response applies
// its command as it resolves, in completion order. Callers that need
// "fetch after mutate" ordering use the *AndRefresh operations.
type Client struct {
	base  string
	http  *http.Client
	store *store.Store
	log   *slog.Logger
}

// New creates a client for the configured server. The bearer token from
// cfg, if any, is forwarded on every request; cfg's fixed timeout
// applies to each call.
func New(cfg *config.Config, st *store.Store) *Client {
	hc := &http.Client{Timeout: cfg.Timeout()}
	if cfg.HasToken() {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), src)
		hc.Timeout = cfg.Timeout()
	}
	return &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		http:  hc,
		store: st,
		log:   slog.Default(),
	}
}

// Store returns the local state store this client writes to.
func (c *Client) Store() *store.Store {
	return c.store
}

// FetchTaskLists loads all task lists and replaces the cached set.
func (c *Client) FetchTaskLists(ctx context.Context) ([]api.TaskList, error) {
	var lists []api.TaskList
	if err := c.call(ctx, "fetch task lists", http.MethodGet, "/task-lists", nil, &lists); err != nil {
		return nil, err
	}
	if err := c.store.Apply(store.ReplaceTaskLists{Lists: lists}); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetTaskList loads one task list and upserts it into the cache.
func (c *Client) GetTaskList(ctx context.Context, id string) (api.TaskList, error) {
	if err := c.require("list id", id); err != nil {
		return api.TaskList{}, err
	}
	var list api.TaskList
	if err := c.call(ctx, "get task list", http.MethodGet, "/task-lists/"+url.PathEscape(id), nil, &list); err != nil {
		return api.TaskList{}, err
	}
	if err := c.store.Apply(store.UpsertTaskList{List: list}); err != nil {
		return api.TaskList{}, err
	}
	return list, nil
}

// CreateTaskList creates a list from a draft (no id) and appends the
// server's representation to the cache.
func (c *Client) CreateTaskList(ctx context.Context, draft api.TaskList) (api.TaskList, error) {
	draft.ID = ""
	var list api.TaskList
	if err := c.call(ctx, "create task list", http.MethodPost, "/task-lists", draft, &list); err != nil {
		return api.TaskList{}, err
	}
	if err := c.store.Apply(store.AppendTaskList{List: list}); err != nil {
		return api.TaskList{}, err
	}
	return list, nil
}

// UpdateTaskList replaces a list on the server and mirrors the returned
// representation into the cache. Whole-entity substitution: the cached
// copy is the server's response, not the argument.
func (c *Client) UpdateTaskList(ctx context.Context, id string, full api.TaskList) (api.TaskList, error) {
	if err := c.require("list id", id); err != nil {
		return api.TaskList{}, err
	}
	full.ID = id
	var list api.TaskList
	if err := c.call(ctx, "update task list", http.MethodPut, "/task-lists/"+url.PathEscape(id), full, &list); err != nil {
		return api.TaskList{}, err
	}
	if err := c.store.Apply(store.ReplaceTaskListField{List: list}); err != nil {
		return api.TaskList{}, err
	}
	return list, nil
}

// DeleteTaskList deletes a list on the server, then removes the cached
// entry. The list's cached task slice is left behind; see
// store.RemoveTaskList.
func (c *Client) DeleteTaskList(ctx context.Context, id string) error {
	if err := c.require("list id", id); err != nil {
		return err
	}
	if err := c.call(ctx, "delete task list", http.MethodDelete, "/task-lists/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	return c.store.Apply(store.RemoveTaskList{ID: id})
}

// FetchTasks loads the tasks of a list and replaces the cached slice,
// establishing it if this is the first fetch.
func (c *Client) FetchTasks(ctx context.Context, listID string) ([]api.Task, error) {
	if err := c.require("list id", listID); err != nil {
		return nil, err
	}
	var tasks []api.Task
	if err := c.call(ctx, "fetch tasks", http.MethodGet, taskPath(listID, ""), nil, &tasks); err != nil {
		return nil, err
	}
	if err := c.store.Apply(store.ReplaceTasks{ListID: listID, Tasks: tasks}); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task from a draft (no id, no list id) and
// appends the server's representation to the list's cache.
func (c *Client) CreateTask(ctx context.Context, listID string, draft api.Task) (api.Task, error) {
	if err := c.require("list id", listID); err != nil {
		return api.Task{}, err
	}
	draft.ID = ""
	draft.ListID = ""
	var task api.Task
	if err := c.call(ctx, "create task", http.MethodPost, taskPath(listID, ""), draft, &task); err != nil {
		return api.Task{}, err
	}
	if err := c.store.Apply(store.AppendTask{ListID: listID, Task: task}); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// GetTask loads one task and upserts it into the list's cache.
func (c *Client) GetTask(ctx context.Context, listID, taskID string) (api.Task, error) {
	if err := c.require("list id", listID); err != nil {
		return api.Task{}, err
	}
	if err := c.require("task id", taskID); err != nil {
		return api.Task{}, err
	}
	var task api.Task
	if err := c.call(ctx, "get task", http.MethodGet, taskPath(listID, taskID), nil, &task); err != nil {
		return api.Task{}, err
	}
	if err := c.store.Apply(store.UpsertTask{ListID: listID, Task: task}); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces a task on the server and mirrors the returned
// representation into the cache. The list's task slice must already be
// cached.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, full api.Task) (api.Task, error) {
	if err := c.require("list id", listID); err != nil {
		return api.Task{}, err
	}
	if err := c.require("task id", taskID); err != nil {
		return api.Task{}, err
	}
	full.ID = taskID
	var task api.Task
	if err := c.call(ctx, "update task", http.MethodPut, taskPath(listID, taskID), full, &task); err != nil {
		return api.Task{}, err
	}
	if err := c.store.Apply(store.ReplaceTaskField{ListID: listID, Task: task}); err != nil {
		return api.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task on the server, then removes the cached
// entry. The list's task slice must already be cached.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	if err := c.require("list id", listID); err != nil {
		return err
	}
	if err := c.require("task id", taskID); err != nil {
		return err
	}
	if err := c.call(ctx, "delete task", http.MethodDelete, taskPath(listID, taskID), nil, nil); err != nil {
		return err
	}
	return c.store.Apply(store.RemoveTask{ListID: listID, TaskID: taskID})
}

// CreateTaskAndRefresh creates a task, then refetches the list's tasks.
// The fetch starts only after the creation's command has been applied,
// so the cache ends at the server's current truth even if other calls
// are in flight.
func (c *Client) CreateTaskAndRefresh(ctx context.Context, listID string, draft api.Task) (api.Task, error) {
	task, err := c.CreateTask(ctx, listID, draft)
	if err != nil {
		return api.Task{}, err
	}
	if _, err := c.FetchTasks(ctx, listID); err != nil {
		return task, err
	}
	return task, nil
}

// UpdateTaskAndRefresh updates a task, then refetches the list's tasks.
// Same ordering guarantee as CreateTaskAndRefresh.
func (c *Client) UpdateTaskAndRefresh(ctx context.Context, listID, taskID string, full api.Task) (api.Task, error) {
	task, err := c.UpdateTask(ctx, listID, taskID, full)
	if err != nil {
		return api.Task{}, err
	}
	if _, err := c.FetchTasks(ctx, listID); err != nil {
		return task, err
	}
	return task, nil
}

// DeleteTaskAndRefresh deletes a task, then refetches the list's tasks.
// Same ordering guarantee as CreateTaskAndRefresh.
func (c *Client) DeleteTaskAndRefresh(ctx context.Context, listID, taskID string) error {
	if err := c.DeleteTask(ctx, listID, taskID); err != nil {
		return err
	}
	_, err := c.FetchTasks(ctx, listID)
	return err
}

// require rejects an empty route parameter before any request is sent.
func (c *Client) require(param, value string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	err := &PreconditionError{Param: param}
	c.log.Error("request aborted", "reason", err.Error())
	return err
}

// call performs one HTTP round-trip. Non-2xx responses come back as
// *googleapi.Error carrying the status code and response body;
// transport errors are wrapped with the operation name. Both are logged
// here, once, at the client boundary.
func (c *Client) call(ctx context.Context, op, method, path string, body, result any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+basePath+path, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "op", op, "method", method, "path", path, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			c.log.Error("request failed", "op", op, "method", method, "path", path,
				"status", gerr.Code, "body", gerr.Body)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			c.log.Error("bad response body", "op", op, "method", method, "path", path, "err", err)
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func taskPath(listID, taskID string) string {
	p := "/task-lists/" + url.PathEscape(listID) + "/tasks"
	if taskID != "" {
		p += "/" + url.PathEscape(taskID)
	}
	return p
}
