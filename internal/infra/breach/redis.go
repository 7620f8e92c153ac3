package breach

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "passwise:breach:sha256"

// RedisLookup checks membership in a Redis set of digests.
type RedisLookup struct {
	Client redis.UniversalClient
	Key    string
}

func NewRedisLookup(client redis.UniversalClient, key string) *RedisLookup {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisLookup{Client: client, Key: key}
}

func (r *RedisLookup) Contains(ctx context.Context, password string) (bool, error) {
	ok, err := r.Client.SIsMember(ctx, r.Key, Digest(password)).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember: %w", err)
	}
	return ok, nil
}

// ImportBatchSize is the number of digests sent per SADD.
const ImportBatchSize = 500

// Import streams a corpus into the set in batches. A batch Redis rejects is
// dropped and reported; the rest of the corpus is still loaded. n counts
// digests Redis accepted.
func (r *RedisLookup) Import(ctx context.Context, src io.Reader) (int, error) {
	var (
		stored int
		failed *multierror.Error
		batch  = make([]interface{}, 0, ImportBatchSize)
	)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.Client.SAdd(ctx, r.Key, batch...).Err(); err != nil {
			failed = multierror.Append(failed, fmt.Errorf("redis sadd: dropped batch of %d digests after %d stored: %w", len(batch), stored, err))
		} else {
			stored += len(batch)
		}
		batch = batch[:0]
	}

	_, err := ReadCorpus(src, func(digest string) error {
		batch = append(batch, digest)
		if len(batch) >= ImportBatchSize {
			flush()
		}
		return nil
	})
	flush()
	if err != nil {
		failed = multierror.Append(failed, err)
	}
	return stored, failed.ErrorOrNil()
}

func (r *RedisLookup) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
