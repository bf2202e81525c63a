package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"career-service/internal/models"
	"career-service/internal/repository"

	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Consumer interface {
	Start() error
	Close() error
}

// EventConsumer provisions an empty student profile whenever the auth
// service announces a registered user, so students always have a document
// to amend.
type EventConsumer struct {
	conn            *amqp091.Connection
	channel         *amqp091.Channel
	queueName       string
	profileRepo     *repository.ProfileRepository
	applicationRepo *repository.ApplicationRepository
	shutdown        chan struct{}
	wg              sync.WaitGroup
	enabled         bool
}

type ExchangeConfig struct {
	Name       string
	Type       string
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Args       amqp091.Table
}

type BindingConfig struct {
	Exchange   string
	RoutingKey string
}

func NewEventConsumer(rabbitURI string, profileRepo *repository.ProfileRepository, applicationRepo *repository.ApplicationRepository) (*EventConsumer, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event consumption is disabled")
		return &EventConsumer{
			profileRepo:     profileRepo,
			applicationRepo: applicationRepo,
			shutdown:        make(chan struct{}),
			enabled:         false,
		}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &EventConsumer{
		conn:            conn,
		channel:         channel,
		queueName:       "career-service-events",
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
		shutdown:        make(chan struct{}),
		enabled:         true,
	}, nil
}

func (c *EventConsumer) Start() error {
	if !c.enabled {
		log.Println("Event consumption is disabled, not starting consumer")
		return nil
	}

	exchanges := []ExchangeConfig{
		{
			Name:    "user-events",
			Type:    "topic",
			Durable: true,
		},
	}

	for _, exchange := range exchanges {
		err := c.channel.ExchangeDeclare(
			exchange.Name,
			exchange.Type,
			exchange.Durable,
			exchange.AutoDelete,
			exchange.Internal,
			exchange.NoWait,
			exchange.Args,
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange.Name, err)
		}
		log.Printf("Declared exchange: %s", exchange.Name)
	}

	_, err := c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	log.Printf("Declared queue: %s", c.queueName)

	bindings := []BindingConfig{
		{Exchange: "user-events", RoutingKey: "user.#"},
	}

	for _, binding := range bindings {
		err := c.channel.QueueBind(
			c.queueName,
			binding.RoutingKey,
			binding.Exchange,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue to exchange %s with key %s: %w",
				binding.Exchange, binding.RoutingKey, err)
		}
		log.Printf("Bound queue %s to exchange %s with routing key %s",
			c.queueName, binding.Exchange, binding.RoutingKey)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consume(msgs)
	}()

	log.Println("Event consumer started")
	return nil
}

func (c *EventConsumer) consume(msgs <-chan amqp091.Delivery) {
	for {
		select {
		case <-c.shutdown:
			log.Println("Stopping event consumer")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("Message channel closed, reconnecting...")
				time.Sleep(5 * time.Second)
				return
			}

			err := c.processMessage(msg)
			if err != nil {
				log.Printf("Error processing message: %v", err)
				if err := msg.Nack(false, true); err != nil {
					log.Printf("Error NACKing message: %v", err)
				}
			} else {
				if err := msg.Ack(false); err != nil {
					log.Printf("Error ACKing message: %v", err)
				}
			}
		}
	}
}

func (c *EventConsumer) processMessage(msg amqp091.Delivery) error {
	routingKey := msg.RoutingKey

	log.Printf("Processing message from exchange '%s' with routing key: %s", msg.Exchange, routingKey)

	switch routingKey {
	case "user.registered":
		return c.handleUserRegistered(msg.Body)
	case "user.updated":
		return c.handleUserUpdated(msg.Body)
	default:
		log.Printf("Unknown routing key: %s from exchange: %s", routingKey, msg.Exchange)
		return nil // Acknowledge the message to avoid requeuing
	}
}

func (c *EventConsumer) handleUserRegistered(body []byte) error {
	var event models.UserRegisterEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal user registered event: %w", err)
	}

	if event.Role != "" && event.Role != string(models.RoleStudent) {
		log.Printf("Skipping profile provisioning for non-student user %s (role %s)", event.UserID, event.Role)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	displayName := event.DisplayName
	if displayName == "" {
		displayName = event.Username
	}

	profile := &models.StudentProfile{
		UserID:      event.UserID,
		DisplayName: displayName,
		Email:       event.Email,
	}

	if _, err := c.profileRepo.New(ctx, profile); err != nil {
		return fmt.Errorf("failed to provision profile for user %s: %w", event.UserID, err)
	}

	log.Printf("Provisioned empty student profile for user %s", event.UserID)
	return nil
}

// handleUserUpdated renames the profile and re-joins the denormalized
// student name on the user's applications.
func (c *EventConsumer) handleUserUpdated(body []byte) error {
	var event models.UserUpdatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal user updated event: %w", err)
	}

	if event.DisplayName == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.profileRepo.UpdateDisplayName(ctx, event.UserID, event.DisplayName); err != nil {
		if err == mongo.ErrNoDocuments {
			log.Printf("No profile to rename for user %s, skipping", event.UserID)
			return nil
		}
		return fmt.Errorf("failed to rename profile for user %s: %w", event.UserID, err)
	}

	updated, err := c.applicationRepo.SyncStudentName(ctx, event.UserID, event.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to sync application names for user %s: %w", event.UserID, err)
	}

	log.Printf("Renamed user %s, %d applications reconciled", event.UserID, updated)
	return nil
}

func (c *EventConsumer) Close() error {
	if !c.enabled {
		return nil
	}

	close(c.shutdown)
	c.wg.Wait()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}

	return nil
}
