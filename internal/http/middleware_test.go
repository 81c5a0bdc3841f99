package httpapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiterPerHost(t *testing.T) {
	l := newClientLimiter(0.001, 1)

	assert.True(t, l.allow("10.0.0.1:1000"))
	assert.False(t, l.allow("10.0.0.1:2000"), "same host on another port shares the bucket")
	assert.True(t, l.allow("10.0.0.2:1000"))
	assert.Len(t, l.clients, 2)
}

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	l := newClientLimiter(0.001, 1)
	l.ttl = time.Minute
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1:1000"))
	assert.True(t, l.allow("10.0.0.2:1000"))
	assert.Len(t, l.clients, 2)

	now = now.Add(30 * time.Second)
	assert.False(t, l.allow("10.0.0.2:1000"))

	// 10.0.0.1 has been idle a full minute, 10.0.0.2 only half of one.
	now = now.Add(30 * time.Second)
	assert.True(t, l.allow("10.0.0.3:1000"))
	assert.Len(t, l.clients, 2)
	assert.NotContains(t, l.clients, "10.0.0.1")
	assert.Contains(t, l.clients, "10.0.0.2")

	// An evicted client starts over with a full bucket.
	assert.True(t, l.allow("10.0.0.1:1000"))
}
