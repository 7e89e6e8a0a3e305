package memdb

import (
	"context"
	"sync"
	"testing"

	"skillfactory/todo/pkg/storage"
	"skillfactory/todo/pkg/storage/storagetest"
)

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Interface {
		return New()
	})
}

func TestStorage_ConcurrentAddTask(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddTask(ctx, "task"); err != nil {
				t.Errorf("AddTask: %v", err)
			}
		}()
	}
	wg.Wait()

	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 50 {
		t.Fatalf("expected 50 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Fatalf("expected id %d at position %d, got %d", i+1, i, task.ID)
		}
	}
}
