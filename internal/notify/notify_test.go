package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error, completed bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if completed {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool { <-t.done; return true }

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mqtt.Client
	token *fakeToken

	mu           sync.Mutex
	sent         []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
}

func (c *fakeClient) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestMQTTNotifier_Publish(t *testing.T) {
	client := &fakeClient{token: newFakeToken(nil, true)}
	n := NewMQTTNotifier(client, "")
	n.clock = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	toast := maintenance.Toast{Title: "Task completed", Variant: maintenance.ToastDefault}
	require.NoError(t, n.Publish(context.Background(), toast))

	require.Len(t, client.sent, 1)
	assert.Equal(t, DefaultTopic, client.sent[0].topic)
	assert.Equal(t, byte(1), client.sent[0].qos)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &got))
	assert.Equal(t, "Task completed", got["title"])
	assert.Equal(t, "default", got["variant"])
	assert.Equal(t, "2024-05-01T09:00:00Z", got["sent_at"])

	n.Close()
	assert.True(t, client.disconnected)
}

func TestMQTTNotifier_PublishErrors(t *testing.T) {
	toast := maintenance.Toast{Title: "x", Variant: maintenance.ToastDestructive}

	t.Run("broker error", func(t *testing.T) {
		n := NewMQTTNotifier(&fakeClient{token: newFakeToken(errors.New("not authorized"), true)}, "t")
		defer n.Close()
		assert.EqualError(t, n.Publish(context.Background(), toast), "not authorized")
	})

	t.Run("timeout", func(t *testing.T) {
		n := NewMQTTNotifier(&fakeClient{token: newFakeToken(nil, false)}, "t")
		defer n.Close()
		n.timeout = 10 * time.Millisecond
		assert.ErrorIs(t, n.Publish(context.Background(), toast), ErrPublishTimeout)
	})

	t.Run("cancelled", func(t *testing.T) {
		n := NewMQTTNotifier(&fakeClient{token: newFakeToken(nil, false)}, "t")
		defer n.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, n.Publish(ctx, toast), context.Canceled)
	})
}

func TestMQTTNotifier_NotifySwallowsErrors(t *testing.T) {
	client := &fakeClient{token: newFakeToken(errors.New("down"), true)}
	n := NewMQTTNotifier(client, "t")
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), maintenance.Toast{Title: "x"})
	})
	n.Close()
	assert.Equal(t, 1, client.sentCount())
}

func TestMQTTNotifier_NotifyDoesNotWaitForBroker(t *testing.T) {
	token := newFakeToken(nil, false)
	client := &fakeClient{token: token}
	n := NewMQTTNotifier(client, "t")

	start := time.Now()
	for i := 0; i < 3; i++ {
		n.Notify(context.Background(), maintenance.Toast{Title: "Task completed"})
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Eventually(t, func() bool { return client.sentCount() == 1 }, time.Second, 5*time.Millisecond)

	close(token.done)
	n.Close()
	assert.Equal(t, 3, client.sentCount())
	assert.True(t, client.disconnected)
}

func TestMQTTNotifier_DropsWhenQueueFull(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	token := newFakeToken(nil, false)
	client := &fakeClient{token: token}
	n := NewMQTTNotifier(client, "t")

	for i := 0; i < queueSize+2; i++ {
		n.Notify(context.Background(), maintenance.Toast{Title: "burst"})
	}
	var dropped int
	for _, e := range hook.AllEntries() {
		if e.Message == "Toast queue full, dropping toast" {
			dropped++
		}
	}
	assert.GreaterOrEqual(t, dropped, 1)

	close(token.done)
	n.Close()
	assert.Equal(t, queueSize+2-dropped, client.sentCount())

	n.Close()
	n.Notify(context.Background(), maintenance.Toast{Title: "late"})
	assert.Equal(t, queueSize+2-dropped, client.sentCount())
}

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := &LogNotifier{Entry: log.NewEntry(logger)}

	n.Notify(context.Background(), maintenance.Toast{Title: "Maintenance scheduled", Variant: maintenance.ToastDefault})
	n.Notify(context.Background(), maintenance.Toast{Title: "Failed", Description: "boom", Variant: maintenance.ToastDestructive})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, log.InfoLevel, entries[0].Level)
	assert.Equal(t, "Maintenance scheduled", entries[0].Data["title"])
	assert.NotContains(t, entries[0].Data, "description")
	assert.Equal(t, log.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].Data["description"])
}

func TestMulti(t *testing.T) {
	var got []string
	record := func(name string) maintenance.Notifier {
		return maintenance.NotifierFunc(func(_ context.Context, t maintenance.Toast) {
			got = append(got, name+":"+t.Title)
		})
	}
	Multi{record("a"), record("b")}.Notify(context.Background(), maintenance.Toast{Title: "hi"})
	assert.Equal(t, []string{"a:hi", "b:hi"}, got)
}
