package contract

import (
	"context"

	"report-service-be/internal/entity"
	"report-service-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Update(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	// FindLatest returns the newest message for the session with the given
	// role, ordered by (created_at, id) descending, or nil when none exists.
	// The id tie-break keeps the target deterministic under rapid writes.
	FindLatest(ctx context.Context, sessionId uuid.UUID, role string) (*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
