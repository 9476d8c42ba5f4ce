package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"flightbook/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis adapters keep one key per record plus an id set per collection, so a
// write never rewrites the whole collection.

const flightIDsKey = "flights:ids"

func flightKey(id string) string {
	return "flight:" + id
}

type RedisFlightRepository struct {
	client *redis.Client
}

func NewRedisFlightRepository(client *redis.Client) *RedisFlightRepository {
	return &RedisFlightRepository{client: client}
}

func (r *RedisFlightRepository) loadAll(ctx context.Context) ([]domain.Flight, error) {
	ids, err := r.client.SMembers(ctx, flightIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Flight{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, flightKey(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}

	flights := make([]domain.Flight, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var f domain.Flight
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("failed to decode flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func (r *RedisFlightRepository) save(ctx context.Context, flight *domain.Flight) error {
	data, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("failed to encode flight: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, flightKey(flight.ID), data, 0)
	pipe.SAdd(ctx, flightIDsKey, flight.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store flight: %w", err)
	}
	return nil
}

func (r *RedisFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	flights, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].CreatedAt.After(flights[j].CreatedAt)
	})
	return flights, nil
}

func (r *RedisFlightRepository) Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error) {
	flights, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	from := strings.ToLower(params.FromCity)
	to := strings.ToLower(params.ToCity)
	matched := make([]domain.Flight, 0)
	for _, f := range flights {
		if f.SeatsAvailable <= 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(f.FromCity), from) {
			continue
		}
		if !strings.Contains(strings.ToLower(f.ToCity), to) {
			continue
		}
		matched = append(matched, f)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PriceCents < matched[j].PriceCents
	})
	return matched, nil
}

func (r *RedisFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	raw, err := r.client.Get(ctx, flightKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}
	var f domain.Flight
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, fmt.Errorf("failed to decode flight: %w", err)
	}
	return &f, nil
}

func (r *RedisFlightRepository) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	flight, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if flight == nil {
		return nil
	}
	flight.SeatsAvailable = seatsAvailable
	flight.UpdatedAt = time.Now().UTC()
	return r.save(ctx, flight)
}

func (r *RedisFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if flight.CreatedAt.IsZero() {
		flight.CreatedAt = now
	}
	flight.UpdatedAt = now
	return r.save(ctx, flight)
}

func (r *RedisFlightRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, flightKey(id))
	pipe.SRem(ctx, flightIDsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}
	return nil
}

var _ FlightRepository = (*RedisFlightRepository)(nil)
