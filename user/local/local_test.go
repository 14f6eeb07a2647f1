package local

import (
	"testing"

	"github.com/drakos74/free-coin-cross/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ api.User = (*User)(nil)

func TestUser_Send(t *testing.T) {
	user := NewUser()
	require.NoError(t, user.Send(api.NewMessage("first")))
	require.NoError(t, user.Send(api.NewMessage("second").AddLine("line")))

	sent := user.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "second\nline", sent[1].Text)
}
