package entities

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout - формат даты в ответах API: день недели, месяц, день, год.
const DisplayLayout = "Mon Jan 02 2006"

// InvalidDate - представление даты, которую не удалось разобрать.
const InvalidDate = "Invalid Date"

// Форматы, которые браузеры и клиенты обычно присылают в from, to и date.
// Числовая дата с косой чертой читается как месяц/день/год.
var parseLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DisplayLayout,
	"Mon Jan 2 2006",
	"2006/01/02",
	"1/2/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// Exercise - одна запись журнала.
// Нулевое значение Date означает дату, которую не удалось разобрать.
type Exercise struct {
	Description string
	Duration    int
	Date        time.Time
}

// ParseDate разбирает дату и округляет ее до календарного дня в UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// Day отбрасывает время суток, сохраняя календарную дату.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate форматирует дату для ответа API.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.Format(DisplayLayout)
}

// NewExercise проверяет поля и создает упражнение.
// Пустая дата заменяется на now.
func NewExercise(description string, duration int, date string, now time.Time) (Exercise, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Exercise{}, ErrEmptyDescription
	}
	if duration <= 0 {
		return Exercise{}, ErrInvalidDuration
	}

	day := Day(now)
	if strings.TrimSpace(date) != "" {
		parsed, ok := ParseDate(date)
		if !ok {
			return Exercise{}, ErrInvalidDate
		}
		day = parsed
	}

	return Exercise{Description: description, Duration: duration, Date: day}, nil
}

// ParseDuration разбирает длительность как parseInt: "30", "30.5" и "30min" дают 30.
func ParseDuration(s string) (int, error) {
	n, ok := ParseLeadingInt(s)
	if !ok {
		return 0, ErrInvalidDuration
	}
	return n, nil
}

// ParseLeadingInt читает знак и ведущие цифры, остаток строки игнорируется.
// ok=false, если цифр нет. Слишком большие значения насыщаются до границ int.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}
