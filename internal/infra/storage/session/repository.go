package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

const keyPrefix = "court_booking:session:"

// Repository хранилище сессий выбора в Redis с TTL
// Каждое сохранение продлевает срок жизни сессии
type Repository struct {
	client   redis.UniversalClient
	ttl      time.Duration
	location *time.Location
}

// NewRepository создает репозиторий; location - часовой пояс площадок
func NewRepository(client redis.UniversalClient, ttl time.Duration, location *time.Location) *Repository {
	if location == nil {
		location = time.UTC
	}
	return &Repository{client: client, ttl: ttl, location: location}
}

func key(id string) string {
	return keyPrefix + id
}

// Get получает сессию по ID
func (r *Repository) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - id=%s: %v", ErrStorage, id, err)
	}

	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: Get - id=%s: %v", ErrDecode, id, err)
	}

	return dto.toDomain(r.location), nil
}

// Save сохраняет сессию и продлевает TTL
func (r *Repository) Save(ctx context.Context, s *domain.BookingSession) error {
	data, err := json.Marshal(toDTO(s))
	if err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrEncode, s.ID, err)
	}

	if err := r.client.Set(ctx, key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrStorage, s.ID, err)
	}

	return nil
}

// Delete удаляет сессию; отсутствие сессии не является ошибкой
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - id=%s: %v", ErrStorage, id, err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrStorage, err)
	}
	return nil
}
