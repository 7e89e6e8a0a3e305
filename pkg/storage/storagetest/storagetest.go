// Package storagetest содержит общий набор проверок для реализаций
// storage.Interface. Каждая реализация вызывает Run из своих тестов.
package storagetest

import (
	"context"
	"testing"

	"skillfactory/todo/pkg/storage"
)

// Factory возвращает пустое хранилище для одного подтеста.
type Factory func(t *testing.T) storage.Interface

// Run прогоняет проверки контракта storage.Interface.
func Run(t *testing.T, newStorage Factory) {
	t.Run("EmptyTasksIsEmptySlice", func(t *testing.T) {
		db := newStorage(t)
		tasks, err := db.Tasks(context.Background())
		if err != nil {
			t.Fatalf("Tasks: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", tasks)
		}
	})

	t.Run("AddTaskThenTasks", func(t *testing.T) {
		ctx := context.Background()
		db := newStorage(t)

		first, err := db.AddTask(ctx, "Buy milk")
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		second, err := db.AddTask(ctx, "Walk the dog")
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		if first.ID == 0 || second.ID <= first.ID {
			t.Fatalf("expected increasing ids, got %d and %d", first.ID, second.ID)
		}
		if first.Completed {
			t.Fatalf("new task must not be completed")
		}

		tasks, err := db.Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks: %v", err)
		}
		want := []storage.Task{first, second}
		if len(tasks) != len(want) {
			t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
		}
		for i := range want {
			if tasks[i] != want[i] {
				t.Fatalf("task %d: expected %+v, got %+v", i, want[i], tasks[i])
			}
		}
	})

	t.Run("TaskByID", func(t *testing.T) {
		ctx := context.Background()
		db := newStorage(t)

		created, err := db.AddTask(ctx, "Read a book")
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		got, err := db.TaskByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("TaskByID: %v", err)
		}
		if got == nil || *got != created {
			t.Fatalf("expected %+v, got %+v", created, got)
		}

		missing, err := db.TaskByID(ctx, created.ID+1000)
		if err != nil {
			t.Fatalf("TaskByID missing: %v", err)
		}
		if missing != nil {
			t.Fatalf("expected nil for unknown id, got %+v", missing)
		}
	})

	t.Run("ToggleTwiceRestores", func(t *testing.T) {
		ctx := context.Background()
		db := newStorage(t)

		created, err := db.AddTask(ctx, "Pay rent")
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		once, err := db.ToggleTask(ctx, created.ID)
		if err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
		if once == nil || !once.Completed || once.Title != created.Title {
			t.Fatalf("expected completed task, got %+v", once)
		}
		twice, err := db.ToggleTask(ctx, created.ID)
		if err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
		if twice == nil || twice.Completed {
			t.Fatalf("expected task back to not completed, got %+v", twice)
		}

		stored, err := db.TaskByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("TaskByID: %v", err)
		}
		if stored == nil || stored.Completed {
			t.Fatalf("toggle was not persisted: %+v", stored)
		}
	})

	t.Run("ToggleUnknown", func(t *testing.T) {
		db := newStorage(t)
		got, err := db.ToggleTask(context.Background(), 9999)
		if err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("DeleteTask", func(t *testing.T) {
		ctx := context.Background()
		db := newStorage(t)

		created, err := db.AddTask(ctx, "Clean room")
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		ok, err := db.DeleteTask(ctx, created.ID)
		if err != nil {
			t.Fatalf("DeleteTask: %v", err)
		}
		if !ok {
			t.Fatalf("expected first delete to report true")
		}
		ok, err = db.DeleteTask(ctx, created.ID)
		if err != nil {
			t.Fatalf("DeleteTask again: %v", err)
		}
		if ok {
			t.Fatalf("expected second delete to report false")
		}

		tasks, err := db.Tasks(ctx)
		if err != nil {
			t.Fatalf("Tasks: %v", err)
		}
		for _, task := range tasks {
			if task.ID == created.ID {
				t.Fatalf("deleted task %d still listed", created.ID)
			}
		}
	})
}
