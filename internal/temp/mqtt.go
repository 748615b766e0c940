package temp

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultStaleAfter bounds how old a broker reading may be before it is
// reported as a failed read.
const DefaultStaleAfter = 2 * time.Minute

// MQTTSource serves temperature readings published to MQTT topics as
// plain decimal degrees Celsius. It subscribes to a topic on first use
// and keeps only the most recent value per topic.
type MQTTSource struct {
	client     paho.Client
	staleAfter time.Duration
	now        func() time.Time

	mu     sync.Mutex
	topics map[string]reading
	subs   map[string]bool
}

type reading struct {
	value float64
	at    time.Time
}

// NewMQTTSource creates a source connected to the given broker.
func NewMQTTSource(broker string) (*MQTTSource, error) {
	s := &MQTTSource{
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		topics:     make(map[string]reading),
		subs:       make(map[string]bool),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("tempmon").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(s.resubscribe)

	s.client = paho.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return s, nil
}

// Read returns the last value observed on the topic. Topics that have
// never delivered a value, or whose last value has gone stale, fail.
func (s *MQTTSource) Read(topic string) (float64, error) {
	if err := s.ensureSubscribed(topic); err != nil {
		return 0, err
	}

	s.mu.Lock()
	r, ok := s.topics[topic]
	s.mu.Unlock()

	if !ok {
		return 0, fmt.Errorf("no reading received on %q yet", topic)
	}
	if age := s.now().Sub(r.at); age > s.staleAfter {
		return 0, fmt.Errorf("reading on %q is stale (%v old)", topic, age.Round(time.Second))
	}
	return r.value, nil
}

// Close disconnects from the broker.
func (s *MQTTSource) Close() error {
	s.client.Disconnect(1000) // 1 second timeout
	return nil
}

func (s *MQTTSource) ensureSubscribed(topic string) error {
	s.mu.Lock()
	done := s.subs[topic]
	s.mu.Unlock()
	if done {
		return nil
	}

	token := s.client.Subscribe(topic, 0, s.store)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe %q: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %q: %w", topic, err)
	}

	s.mu.Lock()
	s.subs[topic] = true
	s.mu.Unlock()
	return nil
}

// store is the message handler shared by all subscriptions.
func (s *MQTTSource) store(_ paho.Client, msg paho.Message) {
	v, err := parsePayload(msg.Payload())
	if err != nil {
		log.Printf("temp: ignoring payload on %s: %v", msg.Topic(), err)
		return
	}

	s.mu.Lock()
	s.topics[msg.Topic()] = reading{value: v, at: s.now()}
	s.mu.Unlock()
}

// resubscribe re-establishes subscriptions after a reconnect. The
// broker drops them with the session; the cache survives here.
func (s *MQTTSource) resubscribe(client paho.Client) {
	s.mu.Lock()
	topics := make([]string, 0, len(s.subs))
	for t := range s.subs {
		topics = append(topics, t)
	}
	s.mu.Unlock()

	for _, t := range topics {
		token := client.Subscribe(t, 0, s.store)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("temp: resubscribe %s: timeout", t)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("temp: resubscribe %s: %v", t, err)
		}
	}
}

func parsePayload(b []byte) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
}
