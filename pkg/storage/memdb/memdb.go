package memdb

import (
	"context"
	"sort"
	"sync"

	"skillfactory/todo/pkg/storage"
)

// Хранилище в памяти процесса. Используется в тестах
// и при DATABASE_URL=memory://.
type Storage struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]storage.Task
}

// Конструктор.
func New() *Storage {
	return &Storage{
		nextID: 1,
		tasks:  make(map[int]storage.Task),
	}
}

func (s *Storage) Close() {}

// Tasks возвращает задачи по возрастанию id.
func (s *Storage) Tasks(_ context.Context) ([]storage.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]storage.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *Storage) TaskByID(_ context.Context, id int) (*storage.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Storage) AddTask(_ context.Context, title string) (storage.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := storage.Task{ID: s.nextID, Title: title}
	s.tasks[t.ID] = t
	s.nextID++
	return t, nil
}

func (s *Storage) ToggleTask(_ context.Context, id int) (*storage.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	t.Completed = !t.Completed
	s.tasks[id] = t
	return &t, nil
}

func (s *Storage) DeleteTask(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}
