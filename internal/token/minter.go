package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 2 * time.Hour

// VideoGrant describes media room permissions embedded in an access token.
type VideoGrant struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

type grantClaims struct {
	jwt.RegisteredClaims
	Name     string     `json:"name,omitempty"`
	Metadata string     `json:"metadata,omitempty"`
	Video    VideoGrant `json:"video"`
}

// AccessToken is a minted room credential.
type AccessToken struct {
	JWT       string
	Room      string
	URL       string
	Identity  string
	ExpiresAt time.Time
}

// Minter signs media room access tokens with the configured API key pair.
type Minter struct {
	apiKey    string
	apiSecret string
	url       string
	ttl       time.Duration
	now       func() time.Time
}

func NewMinter(apiKey, apiSecret, url string, ttlHours int, now func() time.Time) (*Minter, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("media server credentials not configured")
	}
	ttl := defaultTTL
	if ttlHours > 0 {
		ttl = time.Duration(ttlHours) * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &Minter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		url:       url,
		ttl:       ttl,
		now:       now,
	}, nil
}

// Mint issues a signed join token for an identity and room. Metadata is
// carried opaquely for the media server.
func (m *Minter) Mint(identity, room, metadata string) (AccessToken, error) {
	if identity == "" {
		return AccessToken{}, fmt.Errorf("identity is required")
	}
	if room == "" {
		room = GenerateRoomName()
	}

	now := m.now().UTC()
	expires := now.Add(m.ttl)

	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.apiKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Name:     identity,
		Metadata: metadata,
		Video: VideoGrant{
			RoomJoin:       true,
			Room:           room,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.apiSecret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return AccessToken{
		JWT:       signed,
		Room:      room,
		URL:       m.url,
		Identity:  identity,
		ExpiresAt: expires,
	}, nil
}

// Verify parses a minted token and returns its room grant. Used by tests and
// diagnostic tooling; the media server does its own validation.
func (m *Minter) Verify(raw string) (identity, room string, err error) {
	var claims grantClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.apiSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", "", fmt.Errorf("parse access token: %w", err)
	}
	return claims.Subject, claims.Video.Room, nil
}

// GenerateRoomName returns a fresh room identifier.
func GenerateRoomName() string {
	return "room-" + uuid.NewString()[:8]
}
