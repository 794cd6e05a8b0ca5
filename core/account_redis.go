package core

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix = "account:"
	accountIDCounter = "account:next_id"
	accountIDIndex   = "account:ids"
)

// RedisAccountStore implements AccountStore on a redis key-value layout:
// one hash per account, an INCR counter for id assignment, and a set of ids
// for listing and existence checks.
type RedisAccountStore struct {
	client *redis.Client
}

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

func NewRedisAccountStore(client *redis.Client) *RedisAccountStore {
	return &RedisAccountStore{client: client}
}

func accountKey(id int64) string {
	return accountKeyPrefix + strconv.FormatInt(id, 10)
}

func (s *RedisAccountStore) Create(ctx context.Context, req AccountRequest) (Account, error) {
	id, err := s.client.Incr(ctx, accountIDCounter).Result()
	if err != nil {
		return Account{}, err
	}
	a := Account{ID: id, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	if err := s.writeHash(ctx, a); err != nil {
		return Account{}, err
	}
	if err := s.client.SAdd(ctx, accountIDIndex, id).Err(); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *RedisAccountStore) FindByID(ctx context.Context, id int64) (Account, error) {
	fields, err := s.client.HGetAll(ctx, accountKey(id)).Result()
	if err != nil {
		return Account{}, err
	}
	if len(fields) == 0 {
		return Account{}, ErrAccountNotFound
	}
	return Account{
		ID:        id,
		FirstName: fields["first_name"],
		LastName:  fields["last_name"],
		Email:     fields["email"],
	}, nil
}

func (s *RedisAccountStore) FindAll(ctx context.Context) ([]Account, error) {
	members, err := s.client.SMembers(ctx, accountIDIndex).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		a, err := s.FindByID(ctx, id)
		if errors.Is(err, ErrAccountNotFound) {
			// Index entry for a hash deleted concurrently; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RedisAccountStore) Update(ctx context.Context, id int64, req AccountRequest) (Account, error) {
	exists, err := s.ExistsByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if !exists {
		return Account{}, ErrAccountNotFound
	}
	a := Account{ID: id, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	if err := s.writeHash(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// deleteScript removes the id from the index and its hash in one step so a
// concurrent FindAll never sees a half-deleted account.
var deleteScript = redis.NewScript(`
if redis.call('SREM', KEYS[1], ARGV[1]) == 1 then
  redis.call('DEL', KEYS[2])
  return 1
end
return 0
`)

func (s *RedisAccountStore) Delete(ctx context.Context, id int64) error {
	removed, err := deleteScript.Run(ctx, s.client,
		[]string{accountIDIndex, accountKey(id)}, strconv.FormatInt(id, 10)).Int()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *RedisAccountStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.client.SIsMember(ctx, accountIDIndex, id).Result()
}

func (s *RedisAccountStore) writeHash(ctx context.Context, a Account) error {
	return s.client.HSet(ctx, accountKey(a.ID), map[string]interface{}{
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"email":      a.Email,
	}).Err()
}
