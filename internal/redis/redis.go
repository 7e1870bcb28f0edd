package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"careerai/internal/models"
)

// ErrUnknownSession is returned when a chat session has no stored history.
var ErrUnknownSession = errors.New("unknown chat session")

type RedisClient struct {
	Client *redis.Client
}

func New(ctx context.Context, connectionString string) (*RedisClient, error) {
	opt, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("unable to establish a connection to redis: %w", err)
	}

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}

// HistoryStore keeps chat conversations keyed by session id.
type HistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryStore(client *redis.Client, ttl time.Duration) *HistoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HistoryStore{client: client, ttl: ttl}
}

func (s *HistoryStore) Load(ctx context.Context, sessionID string) ([]models.Message, error) {
	data, err := s.client.Get(ctx, historyKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrUnknownSession)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	var history []models.Message
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}
	return history, nil
}

// Save replaces the stored conversation and refreshes its TTL.
func (s *HistoryStore) Save(ctx context.Context, sessionID string, history []models.Message) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}
	if err := s.client.Set(ctx, historyKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist chat history: %w", err)
	}
	return nil
}

// Append adds msgs to the end of the session's history, starting a new
// history when the session is unknown, and returns the stored result.
func (s *HistoryStore) Append(ctx context.Context, sessionID string, msgs ...models.Message) ([]models.Message, error) {
	history, err := s.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrUnknownSession) {
		return nil, err
	}

	history = append(history, msgs...)
	if err := s.Save(ctx, sessionID, history); err != nil {
		return nil, err
	}
	return history, nil
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat:%s", sessionID)
}
