// Package document описывает JSON-представление пользователя,
// общее для колонки JSONB в Postgres и записей кэша.
package document

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"exercisetracker/internal/tracker/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Exercise - запись журнала. Date хранится как YYYY-MM-DD, пустая строка
// означает неразобранную дату.
type Exercise struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// User - документ пользователя.
type User struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []Exercise `json:"log"`
}

// FromExercises переводит журнал в документный вид.
func FromExercises(log []entities.Exercise) []Exercise {
	out := make([]Exercise, 0, len(log))
	for _, e := range log {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(time.DateOnly)
		}
		out = append(out, Exercise{Description: e.Description, Duration: e.Duration, Date: date})
	}
	return out
}

// ToExercises переводит документный журнал в сущности.
func ToExercises(log []Exercise) []entities.Exercise {
	out := make([]entities.Exercise, 0, len(log))
	for _, e := range log {
		date, _ := entities.ParseDate(e.Date)
		out = append(out, entities.Exercise{Description: e.Description, Duration: e.Duration, Date: date})
	}
	return out
}

// FromUser переводит пользователя в документ.
func FromUser(u *entities.User) User {
	return User{ID: u.ID, Username: u.Username, Count: u.Count, Log: FromExercises(u.Log)}
}

// ToUser переводит документ в пользователя.
func (d User) ToUser() *entities.User {
	return &entities.User{ID: d.ID, Username: d.Username, Count: d.Count, Log: ToExercises(d.Log)}
}

// MarshalLog кодирует журнал в JSON-массив.
func MarshalLog(log []entities.Exercise) ([]byte, error) {
	b, err := json.Marshal(FromExercises(log))
	if err != nil {
		return nil, fmt.Errorf("failed to encode log: %w", err)
	}
	return b, nil
}

// UnmarshalLog декодирует JSON-массив журнала. Пустой ввод дает пустой журнал.
func UnmarshalLog(data []byte) ([]entities.Exercise, error) {
	if len(data) == 0 {
		return []entities.Exercise{}, nil
	}
	var log []Exercise
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to decode log: %w", err)
	}
	return ToExercises(log), nil
}

// MarshalUser кодирует пользователя целиком.
func MarshalUser(u *entities.User) ([]byte, error) {
	b, err := json.Marshal(FromUser(u))
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return b, nil
}

// UnmarshalUser декодирует пользователя.
func UnmarshalUser(data []byte) (*entities.User, error) {
	var d User
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return d.ToUser(), nil
}
