package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength - предел длины идентификатора, принятого от клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NormalizeRequestID возвращает идентификатор, пригодный для логов и
// заголовка ответа. Пустой, слишком длинный или содержащий пробелы и
// управляющие символы идентификатор заменяется новым UUID.
func NormalizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return GenerateRequestID()
		}
	}
	return id
}

// NewRequestIDContext кладет в контекст нормализованный идентификатор запроса.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, NormalizeRequestID(requestID))
}

// GetRequestID возвращает идентификатор запроса, если он есть.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID закрепляет request_id за копией логгера.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
