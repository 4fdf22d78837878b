package ratelimit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowKeyDerivedFromRateWindow(t *testing.T) {
	l := NewRedisLimiter(nil, "driveline")

	minuteKey := l.windowKey("ip:10.0.0.5", time.Minute)
	hourKey := l.windowKey("ip:10.0.0.5", time.Hour)

	assert.True(t, strings.HasPrefix(minuteKey, "driveline:ratelimit:ip:10.0.0.5:"))
	assert.NotEqual(t, minuteKey, hourKey,
		"keys for different windows must not collide")
}

func TestWindowKeySeparatesCallers(t *testing.T) {
	l := NewRedisLimiter(nil, "driveline")

	assert.NotEqual(t,
		l.windowKey("ip:10.0.0.5", time.Minute),
		l.windowKey("ip:10.0.0.6", time.Minute))
}
