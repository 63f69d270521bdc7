package ws

import (
	"errors"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
)

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Conn is the handle the registry fans out to. The concrete transport lives
// behind it so tests can register fakes and inject send failures.
type Conn interface {
	Send(ev domain.Event) error
	Close() error
}
