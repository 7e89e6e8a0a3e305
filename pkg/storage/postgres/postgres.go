package postgres

import (
	"context"
	"errors"
	"fmt"

	"skillfactory/todo/pkg/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Хранилище данных.
type Storage struct {
	pool *pgxpool.Pool
}

const schema = `
	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE
	);
`

// Конструктор, принимает строку подключения к БД.
// Проверяет соединение и создаёт таблицу задач, если её нет.
func New(ctx context.Context, constr string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, constr)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	s := Storage{
		pool: pool,
	}
	return &s, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.pool.Close()
}

// Tasks возвращает список задач из БД.
func (s *Storage) Tasks(ctx context.Context) ([]storage.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			id,
			title,
			completed
		FROM tasks
		ORDER BY id;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []storage.Task{}
	for rows.Next() {
		var t storage.Task
		err = rows.Scan(
			&t.ID,
			&t.Title,
			&t.Completed,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// TaskByID возвращает задачу по её ID или nil, если задачи нет.
func (s *Storage) TaskByID(ctx context.Context, id int) (*storage.Task, error) {
	var t storage.Task

	err := s.pool.QueryRow(ctx, `
		SELECT
			id,
			title,
			completed
		FROM tasks
		WHERE id = $1;
	`,
		id,
	).Scan(
		&t.ID,
		&t.Title,
		&t.Completed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// AddTask создаёт новую задачу и возвращает её вместе с id.
func (s *Storage) AddTask(ctx context.Context, title string) (storage.Task, error) {
	t := storage.Task{Title: title}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, completed)
		VALUES ($1, FALSE) RETURNING id, completed;
	`,
		title,
	).Scan(&t.ID, &t.Completed)
	return t, err
}

// ToggleTask инвертирует признак выполнения одним запросом.
func (s *Storage) ToggleTask(ctx context.Context, id int) (*storage.Task, error) {
	var t storage.Task

	err := s.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1
		RETURNING id, title, completed;
	`,
		id,
	).Scan(
		&t.ID,
		&t.Title,
		&t.Completed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteTask удаляет задачу по ID. Возвращает false, если задачи не было.
func (s *Storage) DeleteTask(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1;
	`,
		id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
