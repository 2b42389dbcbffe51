package repository

import (
	"context"
	"fmt"
	"time"

	"goshorturl/models"

	redigo "github.com/gomodule/redigo/redis"
)

// incrementScript bumps clicks only when the hash already exists, so a
// redirect for an unknown code never creates a partial record.
const incrementScript = `
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HINCRBY', KEYS[1], 'clicks', 1)
return 1
`

// hashRecord is the flat form of models.ShortLink kept in a redis hash.
type hashRecord struct {
	ID          string `redis:"id"`
	OriginalURL string `redis:"original_url"`
	CreatedAt   string `redis:"created_at"`
	ExpiresAt   string `redis:"expires_at"`
	Clicks      int64  `redis:"clicks"`
}

func toHashRecord(link *models.ShortLink) hashRecord {
	return hashRecord{
		ID:          link.ID,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:   link.ExpiresAt.UTC().Format(time.RFC3339Nano),
		Clicks:      link.Clicks,
	}
}

func (h hashRecord) toShortLink() (*models.ShortLink, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, h.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}
	return &models.ShortLink{
		ID:          h.ID,
		OriginalURL: h.OriginalURL,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		Clicks:      h.Clicks,
	}, nil
}

type redisRepository struct {
	pool   *redigo.Pool
	prefix string
	incr   *redigo.Script
}

// NewRedisRepo stores every link as a hash under "<dbName>:<container>:<id>".
// password is sent with AUTH when non-empty.
func NewRedisRepo(addr, password, dbName, container string) Repository {
	pool := &redigo.Pool{
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", addr, redigo.DialPassword(password))
		},

		// Periodic check
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return newRedisRepoWithPool(pool, dbName, container)
}

func newRedisRepoWithPool(pool *redigo.Pool, dbName, container string) *redisRepository {
	return &redisRepository{
		pool:   pool,
		prefix: fmt.Sprintf("%s:%s:", dbName, container),
		incr:   redigo.NewScript(1, incrementScript),
	}
}

func (r *redisRepository) key(id string) string {
	return r.prefix + id
}

func (r *redisRepository) Upsert(ctx context.Context, link *models.ShortLink) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	args := redigo.Args{}.Add(r.key(link.ID)).AddFlat(toHashRecord(link))
	if _, err := conn.Do("HSET", args...); err != nil {
		return fmt.Errorf("call HSET: %w", err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()
	return r.get(conn, id)
}

func (r *redisRepository) get(conn redigo.Conn, id string) (*models.ShortLink, error) {
	values, err := redigo.Values(conn.Do("HGETALL", r.key(id)))
	if err != nil {
		return nil, fmt.Errorf("call HGETALL: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrRecordNotFound
	}

	var rec hashRecord
	if err := redigo.ScanStruct(values, &rec); err != nil {
		return nil, fmt.Errorf("scan hash: %w", err)
	}
	return rec.toShortLink()
}

func (r *redisRepository) IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	found, err := redigo.Bool(r.incr.Do(conn, r.key(id)))
	if err != nil {
		return nil, fmt.Errorf("call increment script: %w", err)
	}
	if !found {
		return nil, ErrRecordNotFound
	}
	return r.get(conn, id)
}
