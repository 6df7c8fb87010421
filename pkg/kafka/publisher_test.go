package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"type":"quest.accepted"}` {
			return errors.New("unexpected message")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPublisherWithProducer("questd", []string{"localhost:9092"}, producer)

	err := p.Publish(context.Background(), "quest-events", &pubsub.Pack{
		Key: []byte("q1"),
		Msg: []byte(`{"type":"quest.accepted"}`),
	})
	require.NoError(t, err)

	err = p.Publish(context.Background(), "quest-events", &pubsub.Pack{Key: []byte("q1")})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, p.Stop(context.Background()))
}
