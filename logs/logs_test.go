package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactHidesSecrets(t *testing.T) {
	out := redact([]any{"user", "ana", "token", "abc.def.ghi", "Password", "123456", "dangling"})

	assert.Equal(t, []any{"user", "ana", "token", "[REDACTED]", "Password", "[REDACTED]", "dangling"}, out)
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client.log")

	require.NoError(t, Init("prod", path))
	Info("hola", "token", "secreto")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hola")
	assert.NotContains(t, string(data), "secreto")
}
