// Package entities содержит доменные сущности трекера упражнений.
package entities

import (
	"errors"
	"strings"
)

// Ошибки домена.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidDuration  = errors.New("duration must be a positive integer")
	ErrInvalidDate      = errors.New("date is not a valid calendar date")
)

// User - пользователь и его журнал упражнений.
// Count всегда равен len(Log) после любой мутации через AppendExercise.
type User struct {
	ID       string
	Username string
	Count    int
	Log      []Exercise
}

// NewUser создает пользователя с пустым журналом.
func NewUser(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &User{Username: username, Log: []Exercise{}}, nil
}

// AppendExercise добавляет упражнение в конец журнала и увеличивает счетчик.
func (u *User) AppendExercise(e Exercise) {
	u.Log = append(u.Log, e)
	u.Count++
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Log = make([]Exercise, len(u.Log))
	copy(c.Log, u.Log)
	return &c
}
