package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Store backed by Redis hashes, one hash per
// job under prefix+id. Job state survives process restarts.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) key(id string) string {
	return s.prefix + id
}

func (s *redisStore) Save(ctx context.Context, job Job) error {
	fields := map[string]interface{}{
		"id":         job.ID,
		"media_path": job.MediaPath,
		"status":     string(job.Status),
		"error":      job.Error,
		"created_at": job.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": job.UpdatedAt.Format(time.RFC3339Nano),
	}
	if err := s.client.HSet(ctx, s.key(job.ID), fields).Err(); err != nil {
		return fmt.Errorf("redis HSET %s: %w", s.key(job.ID), err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (Job, error) {
	vals, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return Job{}, fmt.Errorf("redis HGETALL %s: %w", s.key(id), err)
	}
	if len(vals) == 0 {
		return Job{}, ErrNotFound
	}
	return jobFromHash(vals), nil
}

func (s *redisStore) List(ctx context.Context) ([]Job, error) {
	var jobs []Job
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		vals, err := s.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("redis HGETALL %s: %w", iter.Val(), err)
		}
		if len(vals) == 0 {
			continue
		}
		jobs = append(jobs, jobFromHash(vals))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis SCAN %s*: %w", s.prefix, err)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func jobFromHash(vals map[string]string) Job {
	job := Job{
		ID:        vals["id"],
		MediaPath: vals["media_path"],
		Status:    Status(vals["status"]),
		Error:     vals["error"],
	}
	if t, err := time.Parse(time.RFC3339Nano, vals["created_at"]); err == nil {
		job.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, vals["updated_at"]); err == nil {
		job.UpdatedAt = t
	}
	return job
}
