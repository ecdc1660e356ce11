package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestSetGet(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := New(true)
	defer c.Close()

	etag := c.Set("regions", []byte(`[]`), time.Minute)
	data, got, ok := c.Get("regions")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), data)
	assert.Equal(t, etag, got)
	assert.Equal(t, ComputeETag([]byte(`[]`)), etag)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("k", []byte("v"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)

	c.evict(time.Now())
	assert.Equal(t, 0, c.Stats()["total_keys"])
}

func TestDisabledCache(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := New(false)
	defer c.Close()

	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestFlushPrefix(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("trainers:kanto", []byte("a"), time.Minute)
	c.Set("trainers:johto", []byte("b"), time.Minute)
	c.Set("regions", []byte("c"), time.Minute)

	assert.Equal(t, 2, c.Flush("trainers:"))
	_, _, ok := c.Get("regions")
	assert.True(t, ok)

	assert.Equal(t, 1, c.Flush(""))
	assert.Equal(t, 2, c.Stats()["flushes"])
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.False(t, CheckETagMatch("", etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch(`W/"other", `+etag, etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}

func TestCloseIdempotent(t *testing.T) {
	c := New(true)
	c.Close()
	assert.NotPanics(t, c.Close)
}
