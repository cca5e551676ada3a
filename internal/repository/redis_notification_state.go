package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simibol/planpoint/internal/domain"
)

const (
	notificationStateKeyPrefix = "planpoint:notification:"
	notificationIndexKey       = "planpoint:notifications"

	// Marks outlive every reminder window; snoozes past it extend the TTL.
	notificationStateTTL = 14 * 24 * time.Hour
)

type notificationStateRecord struct {
	ID           string     `json:"id"`
	DismissedAt  *time.Time `json:"dismissed_at,omitempty"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"`
}

type redisNotificationStateRepo struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisNotificationStateRepo stores notification marks as JSON records with
// a set of ids for listing.
func NewRedisNotificationStateRepo(client *redis.Client) NotificationStateRepo {
	return &redisNotificationStateRepo{
		client: client,
		now:    time.Now,
	}
}

func (r *redisNotificationStateRepo) Get(ctx context.Context, id string) (*domain.NotificationState, error) {
	data, err := r.client.Get(ctx, notificationStateKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("notification state %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading notification state %s: %w", id, err)
	}

	st, err := decodeNotificationState(data)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *redisNotificationStateRepo) List(ctx context.Context) ([]domain.NotificationState, error) {
	ids, err := r.client.SMembers(ctx, notificationIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing notification ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = notificationStateKeyPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading notification states: %w", err)
	}

	var out []domain.NotificationState
	var expired []interface{}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		st, err := decodeNotificationState([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, notificationIndexKey, expired...).Err(); err != nil {
			return nil, fmt.Errorf("pruning notification ids: %w", err)
		}
	}
	return out, nil
}

func (r *redisNotificationStateRepo) Upsert(ctx context.Context, st domain.NotificationState) error {
	if st.ID == "" {
		return errors.New("notification state: empty id")
	}

	data, err := json.Marshal(notificationStateRecord{
		ID:           st.ID,
		DismissedAt:  st.DismissedAt,
		SnoozedUntil: st.SnoozedUntil,
	})
	if err != nil {
		return fmt.Errorf("encoding notification state %s: %w", st.ID, err)
	}

	ttl := notificationStateTTL
	if st.SnoozedUntil != nil {
		if until := st.SnoozedUntil.Sub(r.now()) + notificationStateTTL; until > ttl {
			ttl = until
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, notificationStateKeyPrefix+st.ID, data, ttl)
	pipe.SAdd(ctx, notificationIndexKey, st.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing notification state %s: %w", st.ID, err)
	}
	return nil
}

func decodeNotificationState(data []byte) (domain.NotificationState, error) {
	var rec notificationStateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.NotificationState{}, fmt.Errorf("decoding notification state: %w", err)
	}
	return domain.NotificationState{
		ID:           rec.ID,
		DismissedAt:  rec.DismissedAt,
		SnoozedUntil: rec.SnoozedUntil,
	}, nil
}
