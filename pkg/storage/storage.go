package storage

import "context"

// "Модель" задачи.
type Task struct {
	ID        int    `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Completed bool   `json:"completed" db:"completed"`
}

// Interface задаёт контракт на работу с БД.
//
// Отсутствие задачи не является ошибкой: TaskByID и ToggleTask
// возвращают nil, DeleteTask возвращает false.
type Interface interface {
	Tasks(ctx context.Context) ([]Task, error)
	TaskByID(ctx context.Context, id int) (*Task, error)
	AddTask(ctx context.Context, title string) (Task, error)
	ToggleTask(ctx context.Context, id int) (*Task, error)
	DeleteTask(ctx context.Context, id int) (bool, error)
	Close()
}
