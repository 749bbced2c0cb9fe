package rabbitmq

import (
	"sync"

	"github.com/streadway/amqp"
)

// Subscription is one live consume on the lane exchange. Deliveries carries
// raw message bodies; Closed fires when the broker connection drops.
type Subscription struct {
	Deliveries <-chan []byte
	Closed     <-chan *amqp.Error
}

// Source abstracts the push channel so the transport supervisor can be
// exercised with a fake broker in tests.
type Source interface {
	Subscribe() (*Subscription, error)
	Close()
}

// AMQPSource subscribes to the lane's fanout exchange with an exclusive
// auto-delete queue, so each kiosk process gets its own copy of every
// message and leaves nothing behind on shutdown.
type AMQPSource struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	done    chan struct{}
}

// NewAMQPSource creates a push source for the given broker URL and exchange.
func NewAMQPSource(amqpURL, exchange string) *AMQPSource {
	return &AMQPSource{url: amqpURL, exchange: exchange}
}

// Subscribe dials the broker and begins consuming. It replaces any previous
// connection this source held.
func (s *AMQPSource) Subscribe() (*Subscription, error) {
	s.Close()

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = ch.ExchangeDeclare(
		s.exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	queue, err := ch.QueueDeclare(
		"", // broker-named
		false,
		true, // auto-delete
		true, // exclusive
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	if err := ch.QueueBind(queue.Name, "", s.exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	deliveries, err := ch.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.conn = conn
	s.channel = ch
	s.done = done
	s.mu.Unlock()

	bodies := bridgeDeliveries(deliveries, done)

	closed := make(chan *amqp.Error, 1)
	conn.NotifyClose(closed)

	return &Subscription{Deliveries: bodies, Closed: closed}, nil
}

// bridgeDeliveries copies delivery bodies onto a plain byte channel. The done
// channel unblocks a pending send when the consumer stops reading before the
// broker connection is torn down.
func bridgeDeliveries(deliveries <-chan amqp.Delivery, done <-chan struct{}) <-chan []byte {
	bodies := make(chan []byte)
	go func() {
		defer close(bodies)
		for d := range deliveries {
			select {
			case bodies <- d.Body:
			case <-done:
				return
			}
		}
	}()
	return bodies
}

// Close tears down the current connection, if any. Safe to call repeatedly.
func (s *AMQPSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.channel != nil {
		s.channel.Close()
		s.channel = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
