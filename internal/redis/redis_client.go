package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	activeUsersKey = "active_users"
	allRoomsKey    = "all_rooms"
	roomKeyPrefix  = "room:"
)

// RedisClient keeps presence sets (active users, per-room membership) that
// back the HTTP query surface across server instances.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient(redisURL string) (*RedisClient, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, ctx: ctx}, nil
}

// AddActiveUser adds a user to the active users set.
func (r *RedisClient) AddActiveUser(identity string) error {
	return r.client.SAdd(r.ctx, activeUsersKey, identity).Err()
}

// RemoveActiveUser removes a user from the active users set.
func (r *RedisClient) RemoveActiveUser(identity string) error {
	return r.client.SRem(r.ctx, activeUsersKey, identity).Err()
}

// GetActiveUsers retrieves all active users.
func (r *RedisClient) GetActiveUsers() ([]string, error) {
	return r.client.SMembers(r.ctx, activeUsersKey).Result()
}

// IsUserActive reports whether a user is in the active users set.
func (r *RedisClient) IsUserActive(identity string) (bool, error) {
	return r.client.SIsMember(r.ctx, activeUsersKey, identity).Result()
}

// AddRoomMember records a user in a room set and tracks the room itself.
func (r *RedisClient) AddRoomMember(room, identity string) error {
	if err := r.client.SAdd(r.ctx, roomKeyPrefix+room, identity).Err(); err != nil {
		return err
	}
	return r.client.SAdd(r.ctx, allRoomsKey, room).Err()
}

// RemoveRoomMember removes a user from a room set, dropping the room from
// the all-rooms set once empty.
func (r *RedisClient) RemoveRoomMember(room, identity string) error {
	key := roomKeyPrefix + room
	if err := r.client.SRem(r.ctx, key, identity).Err(); err != nil {
		return err
	}

	count, err := r.client.SCard(r.ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 0 {
		return r.client.SRem(r.ctx, allRoomsKey, room).Err()
	}
	return nil
}

// RoomMembers lists identities currently recorded in a room.
func (r *RedisClient) RoomMembers(room string) ([]string, error) {
	return r.client.SMembers(r.ctx, roomKeyPrefix+room).Result()
}

// AllRooms lists rooms with at least one recorded member.
func (r *RedisClient) AllRooms() ([]string, error) {
	return r.client.SMembers(r.ctx, allRoomsKey).Result()
}

// FlushAll clears the entire database. Test helper.
func (r *RedisClient) FlushAll() error {
	return r.client.FlushAll(r.ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
