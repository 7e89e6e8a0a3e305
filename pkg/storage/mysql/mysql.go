package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillfactory/todo/pkg/storage"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Хранилище данных в MySQL.
type Storage struct {
	db *sqlx.DB
}

const schema = `CREATE TABLE IF NOT EXISTS tasks (
    id INT PRIMARY KEY AUTO_INCREMENT,
    title VARCHAR(200) NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`

// Конструктор, принимает DSN в формате go-sql-driver/mysql.
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() { _ = s.db.Close() }

// Tasks возвращает список задач по возрастанию id.
func (s *Storage) Tasks(ctx context.Context) ([]storage.Task, error) {
	tasks := []storage.Task{}
	err := s.db.SelectContext(ctx, &tasks, `SELECT id, title, completed FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Storage) TaskByID(ctx context.Context, id int) (*storage.Task, error) {
	var t storage.Task
	err := s.db.GetContext(ctx, &t, `SELECT id, title, completed FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) AddTask(ctx context.Context, title string) (storage.Task, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks (title, completed) VALUES (?, FALSE)`, title)
	if err != nil {
		return storage.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storage.Task{}, err
	}
	return storage.Task{ID: int(id), Title: title}, nil
}

// ToggleTask блокирует строку, инвертирует completed и возвращает
// обновлённую задачу. Всё в одной транзакции.
func (s *Storage) ToggleTask(ctx context.Context, id int) (*storage.Task, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var t storage.Task
	err = tx.GetContext(ctx, &t, `SELECT id, title, completed FROM tasks WHERE id = ? FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, t.Completed, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
