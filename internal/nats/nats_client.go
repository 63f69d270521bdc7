package nats

import (
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

type NATSClient struct {
	Conn       *nats.Conn
	SubMapping map[string]*nats.Subscription // one subscription per room
	mu         sync.Mutex
}

func NewNATSClient(url string) (*NATSClient, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSClient{
		Conn:       nc,
		SubMapping: make(map[string]*nats.Subscription),
	}, nil
}

func (c *NATSClient) Close() {
	c.CleanupSubscriptions()
	c.Conn.Close()
}
