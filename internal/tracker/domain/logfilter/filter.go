// Package logfilter отбирает записи журнала по диапазону дат и лимиту.
//
// Границы from и to включительные и независимы друг от друга: каждая
// применяется ко всему журналу, порядок применения не влияет на результат.
// Неразобранная граница или запись с неразобранной датой никогда не
// удовлетворяет условию, то есть такие записи исключаются. Лимит берет
// первые записи в порядке журнала, сортировки нет.
package logfilter

import (
	"strings"
	"time"

	"exercisetracker/internal/tracker/domain/entities"
)

// Bound - граница диапазона. Valid=false означает неразобранную дату.
type Bound struct {
	At    time.Time
	Valid bool
}

// Query - параметры отбора. nil означает, что параметр не задан.
type Query struct {
	From  *Bound
	To    *Bound
	Limit *int

	// Legacy воспроизводит старое поведение: если задан только to,
	// фильтр применяется к пустому набору и результат пуст.
	Legacy bool
}

// NewBound разбирает дату границы.
func NewBound(s string) *Bound {
	at, ok := entities.ParseDate(s)
	return &Bound{At: at, Valid: ok}
}

// ParseQuery строит Query из строковых параметров запроса.
// Пустая строка означает отсутствие параметра. Лимит читается как
// ведущее целое ("2abc" и "2.5" дают 2). Строка без ведущих цифр дает 0,
// отрицательный лимит тоже ограничивается нулем, записи с конца не отбрасываются.
func ParseQuery(from, to, limit string) Query {
	var q Query
	if strings.TrimSpace(from) != "" {
		q.From = NewBound(from)
	}
	if strings.TrimSpace(to) != "" {
		q.To = NewBound(to)
	}
	if strings.TrimSpace(limit) != "" {
		n, ok := entities.ParseLeadingInt(limit)
		if !ok || n < 0 {
			n = 0
		}
		q.Limit = &n
	}
	return q
}

// Empty сообщает, что отбор не задан и журнал возвращается как есть.
func (q Query) Empty() bool {
	return q.From == nil && q.To == nil && q.Limit == nil
}

// Apply возвращает отобранные записи. Исходный срез не изменяется.
func Apply(log []entities.Exercise, q Query) []entities.Exercise {
	if q.Empty() {
		return log
	}

	out := make([]entities.Exercise, 0, len(log))
	if !(q.Legacy && q.From == nil && q.To != nil) {
		for _, e := range log {
			if onOrAfter(e.Date, q.From) && onOrBefore(e.Date, q.To) {
				out = append(out, e)
			}
		}
	}

	if q.Limit != nil && *q.Limit < len(out) {
		out = out[:*q.Limit]
	}
	return out
}

func onOrAfter(d time.Time, b *Bound) bool {
	if b == nil {
		return true
	}
	return b.Valid && !d.IsZero() && !entities.Day(d).Before(b.At)
}

func onOrBefore(d time.Time, b *Bound) bool {
	if b == nil {
		return true
	}
	return b.Valid && !d.IsZero() && !entities.Day(d).After(b.At)
}
