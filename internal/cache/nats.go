package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

type invalidationMsg struct {
	Origin string   `json:"origin"`
	Tables []string `json:"tables"`
}

// Broadcast сбрасывает локальный кэш и рассылает имена таблиц другим экземплярам через NATS.
type Broadcast struct {
	Store

	conn    *nats.Conn
	subject string
	origin  string
	sub     *nats.Subscription
	log     zerolog.Logger
}

func NewBroadcast(local Store, conn *nats.Conn, subject string, log zerolog.Logger) *Broadcast {
	return &Broadcast{
		Store:   local,
		conn:    conn,
		subject: subject,
		origin:  uuid.NewString(),
		log:     log,
	}
}

func (b *Broadcast) Invalidate(ctx context.Context, tables ...string) error {
	if err := b.Store.Invalidate(ctx, tables...); err != nil {
		return err
	}

	data, err := json.Marshal(invalidationMsg{Origin: b.origin, Tables: tables})
	if err != nil {
		return err
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		// Локальный кэш уже сброшен; остальные экземпляры догонят по TTL.
		b.log.Warn().Err(err).Strs("tables", tables).Msg("publish cache invalidation")
	}
	return nil
}

// Subscribe применяет инвалидации, пришедшие от других экземпляров.
func (b *Broadcast) Subscribe() error {
	sub, err := b.conn.Subscribe(b.subject, b.handle)
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", b.subject, err)
	}
	b.sub = sub
	return nil
}

func (b *Broadcast) handle(msg *nats.Msg) {
	var m invalidationMsg
	if err := json.Unmarshal(msg.Data, &m); err != nil {
		b.log.Warn().Err(err).Msg("bad cache invalidation message")
		return
	}
	if m.Origin == b.origin {
		return
	}
	if err := b.Store.Invalidate(context.Background(), m.Tables...); err != nil {
		b.log.Warn().Err(err).Strs("tables", m.Tables).Msg("apply remote invalidation")
	}
}

func (b *Broadcast) Close() error {
	if b.sub != nil {
		if err := b.sub.Unsubscribe(); err != nil {
			return err
		}
	}
	return nil
}
