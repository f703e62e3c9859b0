package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheRepository implements CacheRepository on Redis. Each cached
// list is a hash (payload + engagement counters) whose TTL matches the
// row's expiry window, so expiry is native and PurgeExpired has nothing
// left to do. A per-subject key set supports ClearForSubject.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(addr string) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisCacheRepository{client: client}, nil
}

func redisCacheKey(subjectKey string, typ Type, sourceBookID int) string {
	return fmt.Sprintf("rec:%s:%s:%d", subjectKey, typ, sourceBookID)
}

func redisSubjectSetKey(subjectKey string) string {
	return fmt.Sprintf("rec-subject:%s", subjectKey)
}

func (r *RedisCacheRepository) Get(subjectKey string, typ Type, sourceBookID int) (Cached, bool, error) {
	ctx := context.Background()
	fields, err := r.client.HGetAll(ctx, redisCacheKey(subjectKey, typ, sourceBookID)).Result()
	if err != nil {
		return Cached{}, false, err
	}
	payload, ok := fields["payload"]
	if !ok {
		return Cached{}, false, nil
	}

	var entry Cached
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return Cached{}, false, err
	}
	if entry.Expired(time.Now()) {
		// TTL should have removed the key already; treat as a miss
		return Cached{}, false, nil
	}
	entry.Views = atoiField(fields, "views")
	entry.Clicks = atoiField(fields, "clicks")
	entry.Conversions = atoiField(fields, "conversions")
	return entry, true, nil
}

func (r *RedisCacheRepository) Save(entry Cached) error {
	if len(entry.Entries) == 0 {
		return nil
	}
	entry = prepareCached(entry)

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ctx := context.Background()
	key := redisCacheKey(entry.SubjectKey, entry.Type, entry.SourceBookID)
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "payload", string(payload), "views", 0, "clicks", 0, "conversions", 0)
	pipe.Expire(ctx, key, ttl)
	if entry.SubjectKey != "" {
		pipe.SAdd(ctx, redisSubjectSetKey(entry.SubjectKey), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// PurgeExpired is a no-op on Redis: key TTLs expire rows natively.
func (r *RedisCacheRepository) PurgeExpired() (int64, error) {
	return 0, nil
}

func (r *RedisCacheRepository) ClearForSubject(subjectKey string) error {
	ctx := context.Background()
	setKey := redisSubjectSetKey(subjectKey)
	keys, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, setKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Track uses HINCRBY so concurrent tracking calls never lose updates.
func (r *RedisCacheRepository) Track(subjectKey string, typ Type, sourceBookID int, event TrackEvent) error {
	var field string
	switch event {
	case EventView:
		field = "views"
	case EventClick:
		field = "clicks"
	case EventConversion:
		field = "conversions"
	default:
		return nil
	}
	ctx := context.Background()
	key := redisCacheKey(subjectKey, typ, sourceBookID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return err
	}
	return r.client.HIncrBy(ctx, key, field, 1).Err()
}

func atoiField(fields map[string]string, name string) int {
	v, _ := strconv.Atoi(fields[name])
	return v
}
