package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hiring-service/internal/config"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client
}

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, Message{To: "r1@example.com", Subject: "hi"}.Validate())
	assert.Error(t, Message{To: " "}.Validate())
	assert.Error(t, Message{To: "r1@example.com\r\nBcc: x@example.com"}.Validate())
	assert.Error(t, Message{To: "r1@example.com", Subject: "a\nb"}.Validate())
}

func TestRedisQueueFIFO(t *testing.T) {
	ctx := context.Background()
	q := NewRedisQueue(newTestRedis(t), "test:outbox")

	require.NoError(t, q.Send(ctx, Message{To: "a@example.com", Subject: "first"}))
	require.NoError(t, q.Send(ctx, Message{To: "b@example.com", Subject: "second"}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	msg, ok, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", msg.Subject)

	msg, ok, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", msg.Subject)
}

func TestRedisQueueRejectsInvalidMessages(t *testing.T) {
	ctx := context.Background()
	q := NewRedisQueue(newTestRedis(t), "test:outbox")

	assert.Error(t, q.Send(ctx, Message{}))
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisQueueDequeueTimeout(t *testing.T) {
	q := NewRedisQueue(newTestRedis(t), "test:outbox")

	_, ok, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSMTPMailerComposesMessage(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 2525,
		Username: "user",
		Password: "pass",
		From:     "noreply@example.com",
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	err := m.Send(context.Background(), Message{To: "r1@example.com", Subject: "New Application for Engineer", Body: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"r1@example.com"}, gotTo)
	body := string(gotBody)
	assert.Contains(t, body, "Subject: New Application for Engineer\r\n")
	assert.True(t, strings.HasSuffix(body, "line1\r\nline2"))
}

func TestSMTPMailerWrapsTransportErrors(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "localhost", SMTPPort: 25, From: "noreply@example.com"})
	boom := errors.New("connection refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := m.Send(context.Background(), Message{To: "r1@example.com"})
	assert.ErrorIs(t, err, boom)
}

func TestSMTPMailerHonoursCancelledContext(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "localhost", SMTPPort: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{To: "r1@example.com"}), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewLogMailer(zap.New(core))

	require.NoError(t, m.Send(context.Background(), Message{To: "r1@example.com", Subject: "s"}))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "r1@example.com", entries[0].ContextMap()["to"])
}
