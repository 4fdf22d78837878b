package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyIfNil(t *testing.T) {
	normalized := emptyIfNil(nil)
	assert.NotNil(t, normalized)
	assert.Empty(t, normalized)

	actions := []string{"LOGIN", "LOGOUT"}
	assert.Equal(t, actions, emptyIfNil(actions))

	empty := []string{}
	assert.Equal(t, empty, emptyIfNil(empty))
}
