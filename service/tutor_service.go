package service

import (
	"fmt"
	"strings"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/internal/nats"
	"github.com/PunithVT/livekit-voice-agent/internal/redis"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

// TutorService defines the interface
type TutorService interface {
	RelayEvent(ev domain.Event) error
	RecordJoin(room, identity string, remoteHandler func(domain.Event)) error
	RecordLeave(room, identity string) error
	DropRoom(room string)

	ActiveUsers() ([]string, error)
	IsUserActive(identity string) (bool, error)
	RoomMembers(room string) ([]string, error)
	ActiveRooms() ([]string, error)
}

type tutorService struct {
	natsClient  *nats.NATSClient
	redisClient *redis.RedisClient
	instanceID  string
	logger      logger.Logger
}

func NewTutorService(nc *nats.NATSClient, rc *redis.RedisClient, instanceID string, logg logger.Logger) TutorService {
	return &tutorService{
		natsClient:  nc,
		redisClient: rc,
		instanceID:  instanceID,
		logger:      logg,
	}
}

// RelayEvent tags the event with this instance's origin and publishes it on
// the room's subject. If ev.Room is empty the global subject is used.
func (s *tutorService) RelayEvent(ev domain.Event) error {
	ev.Origin = s.instanceID
	room := strings.TrimSpace(ev.Room)

	if err := s.natsClient.PublishRoom(room, ev); err != nil {
		s.logger.Errorf("RelayEvent error: %v", err)
		return err
	}
	return nil
}

// RecordJoin updates presence and ensures this instance receives the room's
// remote events. remoteHandler is invoked for events other instances publish.
func (s *tutorService) RecordJoin(room, identity string, remoteHandler func(domain.Event)) error {
	if room == "" || identity == "" {
		return fmt.Errorf("room and identity cannot be empty")
	}

	if err := s.redisClient.AddActiveUser(identity); err != nil {
		return fmt.Errorf("failed to record active user: %w", err)
	}
	if err := s.redisClient.AddRoomMember(room, identity); err != nil {
		return fmt.Errorf("failed to record room member: %w", err)
	}

	if err := s.natsClient.SubscribeRoom(room, s.instanceID, remoteHandler); err != nil {
		return fmt.Errorf("failed to subscribe to room: %w", err)
	}
	return nil
}

// RecordLeave removes presence entries. The NATS subscription stays until the
// last local participant leaves; the registry tracks that.
func (s *tutorService) RecordLeave(room, identity string) error {
	if room == "" || identity == "" {
		return fmt.Errorf("room and identity cannot be empty")
	}

	if err := s.redisClient.RemoveActiveUser(identity); err != nil {
		s.logger.Errorf("failed to remove active user %s: %v", identity, err)
	}
	if err := s.redisClient.RemoveRoomMember(room, identity); err != nil {
		return fmt.Errorf("failed to remove room member: %w", err)
	}

	s.logger.Infof("%s left room %s", identity, room)
	return nil
}

// DropRoom unsubscribes this instance from a room's subject. Called when the
// last local participant disconnects.
func (s *tutorService) DropRoom(room string) {
	if err := s.natsClient.UnsubscribeRoom(room); err != nil {
		s.logger.Errorf("failed to unsubscribe from room %s: %v", room, err)
	}
}

// Presence
func (s *tutorService) ActiveUsers() ([]string, error) {
	return s.redisClient.GetActiveUsers()
}

func (s *tutorService) IsUserActive(identity string) (bool, error) {
	active, err := s.redisClient.IsUserActive(identity)
	if err != nil {
		s.logger.Errorf("failed to check user presence: %v", err)
		return false, err
	}
	return active, nil
}

func (s *tutorService) RoomMembers(room string) ([]string, error) {
	return s.redisClient.RoomMembers(room)
}

func (s *tutorService) ActiveRooms() ([]string, error) {
	return s.redisClient.AllRooms()
}
