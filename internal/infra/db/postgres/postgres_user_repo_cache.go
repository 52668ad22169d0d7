package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/repository"
	"fitness-tracker/internal/infra/metrics"
	red "fitness-tracker/internal/infra/redis"
)

var _ repository.UserRepository = (*userRepoCacheDecorator)(nil)

// userRepoCacheDecorator adds a read-through cache on the two point lookups
// (by ID, by email). Scans and searches always go to the store.
type userRepoCacheDecorator struct {
	inner repository.UserRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewUserRepoCacheDecorator(inner repository.UserRepository, cache red.RedisClient, ttl time.Duration) repository.UserRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &userRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func userIDKey(id string) string       { return fmt.Sprintf("user:id:%s", id) }
func userEmailKey(email string) string { return fmt.Sprintf("user:email:%s", email) }

// For write operations, we must invalidate all possible keys for that user.
// The stored row may carry a different email than the incoming one, so its
// key has to be dropped as well or a stale entry survives until TTL.
func (d *userRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if prev, err := d.inner.FindByID(ctx, tx, u.ID); err == nil && prev != nil && prev.Email != u.Email {
		_ = d.cache.Del(ctx, userEmailKey(prev.Email))
	}
	_ = d.cache.Del(ctx, userIDKey(u.ID))
	_ = d.cache.Del(ctx, userEmailKey(u.Email))
	return d.inner.Save(ctx, tx, u)
}

func (d *userRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	// Fetch first so the email key can be dropped too; a miss is fine.
	if u, err := d.inner.FindByID(ctx, tx, id); err == nil && u != nil {
		_ = d.cache.Del(ctx, userEmailKey(u.Email))
	}
	_ = d.cache.Del(ctx, userIDKey(id))
	return d.inner.Delete(ctx, tx, id)
}

func (d *userRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if tx != nil {
		// Inside a transaction the caller needs the store's view, not a
		// possibly stale cached one.
		return d.inner.FindByID(ctx, tx, id)
	}
	key := userIDKey(id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			metrics.IncCacheRequest("user", "hit")
			return &user, nil
		}
	}

	metrics.IncCacheRequest("user", "miss")
	user, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	d.warm(ctx, user)
	return user, nil
}

func (d *userRepoCacheDecorator) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	if tx != nil {
		return d.inner.FindByEmail(ctx, tx, email)
	}
	key := userEmailKey(email)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			metrics.IncCacheRequest("user", "hit")
			return &user, nil
		}
	}

	metrics.IncCacheRequest("user", "miss")
	user, err := d.inner.FindByEmail(ctx, tx, email)
	if err != nil {
		return nil, err
	}
	d.warm(ctx, user)
	return user, nil
}

// warm sets both keys so a lookup by the other dimension hits too.
func (d *userRepoCacheDecorator) warm(ctx context.Context, user *model.User) {
	if user == nil {
		return
	}
	bytes, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = d.cache.Set(ctx, userIDKey(user.ID), bytes, d.ttl)
	_ = d.cache.Set(ctx, userEmailKey(user.Email), bytes, d.ttl)
}

// Pass-through methods that don't need caching
func (d *userRepoCacheDecorator) SearchByEmailFragment(ctx context.Context, tx repository.Tx, fragment string) ([]*model.User, error) {
	return d.inner.SearchByEmailFragment(ctx, tx, fragment)
}

func (d *userRepoCacheDecorator) FindBornBefore(ctx context.Context, tx repository.Tx, cutoff time.Time) ([]*model.User, error) {
	return d.inner.FindBornBefore(ctx, tx, cutoff)
}

func (d *userRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.User, error) {
	return d.inner.ListAll(ctx, tx)
}

func (d *userRepoCacheDecorator) Exists(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	return d.inner.Exists(ctx, tx, id)
}
