package service

import "errors"

// ErrNotFound возвращается, если задачи с таким id нет.
var ErrNotFound = errors.New("task not found")

// ValidationError описывает некорректные входные данные.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}
