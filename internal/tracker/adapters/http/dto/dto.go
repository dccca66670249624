// Package dto содержит запросы и ответы HTTP API трекера.
package dto

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"

	"exercisetracker/internal/tracker/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scalar принимает в JSON и строку, и число: {"duration": 30} и {"duration": "30"}.
type Scalar string

// UnmarshalJSON сохраняет числа в их текстовом виде.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	*s = Scalar(b)
	return nil
}

// CreateUserRequest - тело POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}

// AddExerciseRequest - тело POST /api/users/:id/exercises.
type AddExerciseRequest struct {
	Description string `json:"description" form:"description"`
	Duration    Scalar `json:"duration" form:"duration"`
	Date        string `json:"date" form:"date"`
}

// UserResponse - краткое представление пользователя.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse - ответ на добавление упражнения.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogEntry - запись журнала в ответе.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// UserDocument - полный документ пользователя.
type UserDocument struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// LogResponse - ответ на запрос журнала с параметрами.
type LogResponse struct {
	Username string     `json:"username"`
	ID       string     `json:"_id"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// MessageResponse - ответ с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse переводит пользователя в краткий ответ.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}

// NewUserResponses переводит список пользователей.
func NewUserResponses(users []*entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// NewExerciseResponse собирает ответ на добавление упражнения.
func NewExerciseResponse(u *entities.User, e entities.Exercise) ExerciseResponse {
	return ExerciseResponse{
		Username:    u.Username,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        entities.FormatDate(e.Date),
		ID:          u.ID,
	}
}

// NewLogEntries форматирует журнал. Результат не бывает nil.
func NewLogEntries(log []entities.Exercise) []LogEntry {
	out := make([]LogEntry, 0, len(log))
	for _, e := range log {
		out = append(out, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        entities.FormatDate(e.Date),
		})
	}
	return out
}

// NewUserDocument переводит пользователя в полный документ.
func NewUserDocument(u *entities.User) UserDocument {
	return UserDocument{ID: u.ID, Username: u.Username, Count: u.Count, Log: NewLogEntries(u.Log)}
}

// NewLogResponse собирает ответ с отобранным журналом. Count - общее число записей пользователя.
func NewLogResponse(u *entities.User, log []entities.Exercise) LogResponse {
	return LogResponse{Username: u.Username, ID: u.ID, Count: u.Count, Log: NewLogEntries(log)}
}
