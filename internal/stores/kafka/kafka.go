// Package kafka produces the storefront's order events. Publishing is
// fire-and-forget from the caller's point of view: a missing broker
// configuration disables the producer rather than failing the request path.
package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
)

const TopicOrderPaid = "storefront.order-paid"

type Conf struct {
	client *kgo.Client
}

// NewConf builds a producer from a comma-separated broker list. An empty
// list yields a nil Conf, which Produce treats as a no-op.
func NewConf(brokersCSV string) (*Conf, error) {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}
	return &Conf{client: client}, nil
}

func (c *Conf) ProduceMessage(ctx context.Context, topic string, key, value []byte) error {
	if c == nil {
		return nil
	}
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("producing to %s: %w", topic, err)
	}
	return nil
}

func (c *Conf) Close() {
	if c != nil {
		c.client.Close()
	}
}
