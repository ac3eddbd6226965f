package remote_test

import (
	"context"
	"net/http"
	"testing"

	"taskpad/internal/api"
	"taskpad/internal/remote"
	"taskpad/internal/store"
	"taskpad/internal/testutil"
)

func newClient(f *testutil.FakeServer) (*remote.Client, *store.Store) {
	st := store.New()
	return remote.New(f.Config(), st), st
}

func TestFetchTaskLists_PopulatesStore(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	f.AddList("Home", "")
	f.AddList("Work", "weekday things")

	client, st := newClient(f)
	lists, err := client.FetchTaskLists(context.Background())
	if err != nil {
		t.Fatalf("FetchTaskLists: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}

	snap := st.Snapshot()
	if len(snap.TaskLists) != 2 {
		t.Fatalf("expected 2 cached lists, got %d", len(snap.TaskLists))
	}
	if snap.TaskLists[1].Description != "weekday things" {
		t.Errorf("cached list lost its description: %+v", snap.TaskLists[1])
	}
}

func TestCreateTaskList_ServerAssignsID(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()

	client, st := newClient(f)
	list, err := client.CreateTaskList(context.Background(), api.TaskList{Title: "Home"})
	if err != nil {
		t.Fatalf("CreateTaskList: %v", err)
	}
	if list.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	snap := st.Snapshot()
	if len(snap.TaskLists) != 1 || snap.TaskLists[0].ID != list.ID {
		t.Errorf("created list not appended to cache: %+v", snap.TaskLists)
	}
}

func TestFetchTasks_EstablishesCacheEntry(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")

	client, st := newClient(f)
	if _, ok := st.Snapshot().TasksFor(home.ID); ok {
		t.Fatal("cache entry must be absent before first fetch")
	}

	tasks, err := client.FetchTasks(context.Background(), home.ID)
	if err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d", len(tasks))
	}

	if _, ok := st.Snapshot().TasksFor(home.ID); !ok {
		t.Error("cache entry must exist after fetch, even when empty")
	}
}

func TestUpdateTask_CachesServerRepresentation(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	seeded := f.AddTask(home.ID, "Buy milk", api.StatusOpen)

	client, st := newClient(f)
	ctx := context.Background()
	if _, err := client.FetchTasks(ctx, home.ID); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	updated, err := client.UpdateTask(ctx, home.ID, seeded.ID, seeded.Toggled())
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != api.StatusClosed {
		t.Fatalf("expected CLOSED, got %s", updated.Status)
	}

	tasks, _ := st.Snapshot().TasksFor(home.ID)
	if len(tasks) != 1 || tasks[0].Status != api.StatusClosed {
		t.Errorf("cache does not hold the server's representation: %+v", tasks)
	}
}

func TestUpdateTask_FaultWithoutPriorFetch(t *testing.T) {
	// The PUT succeeds server-side, but mirroring it requires the task
	// slice to already be cached.
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	seeded := f.AddTask(home.ID, "Buy milk", api.StatusOpen)

	client, _ := newClient(f)
	_, err := client.UpdateTask(context.Background(), home.ID, seeded.ID, seeded.Toggled())
	if err == nil {
		t.Fatal("expected ErrTasksNotLoaded fault")
	}
}

func TestDeleteTask_Failed500_LeavesCacheUnchanged(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	seeded := f.AddTask(home.ID, "Buy milk", api.StatusOpen)

	client, st := newClient(f)
	ctx := context.Background()
	if _, err := client.FetchTasks(ctx, home.ID); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	f.FailWith(testutil.OpDeleteTask, http.StatusInternalServerError)
	err := client.DeleteTask(ctx, home.ID, seeded.ID)
	if err == nil {
		t.Fatal("expected failure to propagate")
	}
	if got := remote.StatusCode(err); got != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", got)
	}

	tasks, _ := st.Snapshot().TasksFor(home.ID)
	if len(tasks) != 1 || tasks[0].ID != seeded.ID {
		t.Errorf("cache changed on failed delete: %+v", tasks)
	}
}

func TestPrecondition_NoRequestNoCommand(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()

	client, st := newClient(f)
	_, err := client.FetchTasks(context.Background(), "  ")
	if !remote.IsPrecondition(err) {
		t.Fatalf("expected precondition failure, got %v", err)
	}
	if remote.StatusCode(err) != 0 {
		t.Error("precondition failure must not carry an HTTP status")
	}
	if len(st.Snapshot().Tasks) != 0 {
		t.Error("no command may be applied on a precondition failure")
	}
}

func TestUpdateTaskAndRefresh_CacheMatchesServer(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	t1 := f.AddTask(home.ID, "one", api.StatusOpen)
	f.AddTask(home.ID, "two", api.StatusClosed)

	client, st := newClient(f)
	ctx := context.Background()
	if _, err := client.FetchTasks(ctx, home.ID); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	if _, err := client.UpdateTaskAndRefresh(ctx, home.ID, t1.ID, t1.Toggled()); err != nil {
		t.Fatalf("UpdateTaskAndRefresh: %v", err)
	}

	cached, _ := st.Snapshot().TasksFor(home.ID)
	serverTruth := f.Tasks(home.ID)
	if len(cached) != len(serverTruth) {
		t.Fatalf("cache has %d tasks, server has %d", len(cached), len(serverTruth))
	}
	for i := range cached {
		if cached[i] != serverTruth[i] {
			t.Errorf("task %d: cache %+v, server %+v", i, cached[i], serverTruth[i])
		}
	}
	if got := store.Completion(cached); got != 100 {
		t.Errorf("expected 100%% after toggle, got %v", got)
	}
}

func TestDeleteTaskList_DoesNotClearTaskCache(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	f.AddTask(home.ID, "one", api.StatusOpen)

	client, st := newClient(f)
	ctx := context.Background()
	if _, err := client.FetchTaskLists(ctx); err != nil {
		t.Fatalf("FetchTaskLists: %v", err)
	}
	if _, err := client.FetchTasks(ctx, home.ID); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	if err := client.DeleteTaskList(ctx, home.ID); err != nil {
		t.Fatalf("DeleteTaskList: %v", err)
	}

	snap := st.Snapshot()
	if len(snap.TaskLists) != 0 {
		t.Errorf("list not removed from cache: %+v", snap.TaskLists)
	}
	if _, ok := snap.TasksFor(home.ID); !ok {
		t.Error("task cache is expected to survive list deletion")
	}
}

func TestGetTask_UpsertsIntoCache(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "")
	seeded := f.AddTask(home.ID, "one", api.StatusOpen)

	client, st := newClient(f)
	got, err := client.GetTask(context.Background(), home.ID, seeded.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected task %s, got %s", seeded.ID, got.ID)
	}

	tasks, ok := st.Snapshot().TasksFor(home.ID)
	if !ok || len(tasks) != 1 {
		t.Errorf("expected upserted task in cache, got ok=%v %+v", ok, tasks)
	}
}

func TestUpdateTaskList_ReplacesCachedEntry(t *testing.T) {
	f := testutil.NewFakeServer()
	defer f.Close()
	home := f.AddList("Home", "old")

	client, st := newClient(f)
	ctx := context.Background()
	if _, err := client.FetchTaskLists(ctx); err != nil {
		t.Fatalf("FetchTaskLists: %v", err)
	}

	home.Title = "House"
	home.Description = "new"
	if _, err := client.UpdateTaskList(ctx, home.ID, home); err != nil {
		t.Fatalf("UpdateTaskList: %v", err)
	}

	cached, ok := st.Snapshot().FindList(home.ID)
	if !ok {
		t.Fatal("list vanished from cache")
	}
	if cached.Title != "House" || cached.Description != "new" {
		t.Errorf("cache not updated: %+v", cached)
	}
}
