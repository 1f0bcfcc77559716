package api

import (
	"context"
	"net/http"
)

func (s *Service) ListTodos(ctx context.Context) ([]*Todo, error) {
	var result struct {
		Data []*Todo `json:"data"`
	}
	if err := s.get(ctx, TodosPath, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateTodo creates a todo and returns its id
func (s *Service) CreateTodo(ctx context.Context, todo *NewTodo) (int, error) {
	var result struct {
		ID int `json:"id"`
	}
	if err := s.send(ctx, http.MethodPost, TodosPath, todo, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (s *Service) UpdateTodo(ctx context.Context, todoID int, update *TodoUpdate) error {
	return s.send(ctx, http.MethodPatch, todoPath(todoID), update, nil)
}

func (s *Service) DeleteTodo(ctx context.Context, todoID int) error {
	return s.send(ctx, http.MethodDelete, todoPath(todoID), nil, nil)
}
