package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"skillfactory/todo/pkg/storage"
)

// MaxTitleLength совпадает с размером колонки title.
const MaxTitleLength = 200

type TaskService struct {
	db storage.Interface
}

func NewTaskService(db storage.Interface) *TaskService {
	return &TaskService{db: db}
}

// ListTasks возвращает все задачи по возрастанию id.
func (s *TaskService) ListTasks(ctx context.Context) ([]storage.Task, error) {
	tasks, err := s.db.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask возвращает задачу или ErrNotFound.
func (s *TaskService) GetTask(ctx context.Context, id int) (storage.Task, error) {
	t, err := s.db.TaskByID(ctx, id)
	if err != nil {
		return storage.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	if t == nil {
		return storage.Task{}, ErrNotFound
	}
	return *t, nil
}

// CreateTask проверяет заголовок и создаёт задачу. nil означает,
// что поле title в запросе отсутствовало.
func (s *TaskService) CreateTask(ctx context.Context, title *string) (storage.Task, error) {
	if title == nil || strings.TrimSpace(*title) == "" {
		return storage.Task{}, &ValidationError{Message: "Title is required"}
	}
	if utf8.RuneCountInString(*title) > MaxTitleLength {
		return storage.Task{}, &ValidationError{
			Message: fmt.Sprintf("Title must be at most %d characters", MaxTitleLength),
		}
	}

	t, err := s.db.AddTask(ctx, *title)
	if err != nil {
		return storage.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// ToggleTask инвертирует признак выполнения.
func (s *TaskService) ToggleTask(ctx context.Context, id int) (storage.Task, error) {
	t, err := s.db.ToggleTask(ctx, id)
	if err != nil {
		return storage.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	if t == nil {
		return storage.Task{}, ErrNotFound
	}
	return *t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	ok, err := s.db.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
