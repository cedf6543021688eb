package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/Recepcion-api/internal/application/inventory"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// EventStockReceived tipo del evento publicado tras cada recepción confirmada.
const EventStockReceived = "stock.received"

// Ensure Publisher implements inventory.EventPublisher.
var _ inventory.EventPublisher = (*Publisher)(nil)

// messageWriter subconjunto de *kafka.Writer usado por el publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StockReceivedEvent payload JSON del evento.
type StockReceivedEvent struct {
	EventID            string    `json:"eventId"`
	Type               string    `json:"type"`
	IDProductWarehouse int       `json:"idProductWarehouse"`
	IDOrder            int       `json:"idOrder"`
	IDProduct          int       `json:"idProduct"`
	IDWarehouse        int       `json:"idWarehouse"`
	Amount             int       `json:"amount"`
	TotalPrice         string    `json:"totalPrice"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Publisher publica eventos de recepción en un tópico Kafka.
type Publisher struct {
	writer messageWriter
}

// NewPublisher crea el writer hacia brokers/topic. Balanceo LeastBytes como el resto de servicios.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// PublishStockReceived serializa el movimiento y lo escribe con el contexto de traza en los headers.
func (p *Publisher) PublishStockReceived(ctx context.Context, movement entity.StockMovement) error {
	msg, err := BuildMessage(ctx, movement)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close vacía los mensajes pendientes y cierra las conexiones.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// BuildMessage arma el mensaje: clave = id de la orden (mismo orden por orden en la partición).
func BuildMessage(ctx context.Context, movement entity.StockMovement) (kafka.Message, error) {
	event := StockReceivedEvent{
		EventID:            uuid.NewString(),
		Type:               EventStockReceived,
		IDProductWarehouse: movement.ID,
		IDOrder:            movement.OrderID,
		IDProduct:          movement.ProductID,
		IDWarehouse:        movement.WarehouseID,
		Amount:             movement.Amount,
		TotalPrice:         movement.TotalPrice.StringFixed(2),
		CreatedAt:          movement.CreatedAt.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("serializar evento: %w", err)
	}

	carrier := headerCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	return kafka.Message{
		Key:     []byte(strconv.Itoa(movement.OrderID)),
		Value:   payload,
		Headers: carrier.headers(),
	}, nil
}

// headerCarrier adapta propagation.TextMapCarrier a headers de Kafka.
type headerCarrier map[string]string

func (c headerCarrier) Get(key string) string { return c[key] }
func (c headerCarrier) Set(key, value string) { c[key] = value }
func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

func (c headerCarrier) headers() []kafka.Header {
	if len(c) == 0 {
		return nil
	}
	out := make([]kafka.Header, 0, len(c))
	for k, v := range c {
		out = append(out, kafka.Header{Key: k, Value: []byte(v)})
	}
	return out
}
