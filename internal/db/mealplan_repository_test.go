package db

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardDocID(t *testing.T) {
	for _, owner := range []string{
		"64f1c2a9e4b0a1b2c3d4e5f6", // database-internal id
		"auth0|65a1b2c3d4",         // provider subject
		"google-oauth2/1234",       // contains a path separator
	} {
		id := guardDocID(owner)
		assert.NotContains(t, id, "/")
		assert.False(t, strings.HasPrefix(id, "__"))

		decoded, err := base64.RawURLEncoding.DecodeString(id)
		assert.NoError(t, err)
		assert.Equal(t, owner, string(decoded))
	}
	assert.NotEqual(t, guardDocID("a"), guardDocID("b"))
}
