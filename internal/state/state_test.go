package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGet_Missing(t *testing.T) {
	m := setupTestManager(t)

	v, ok, err := m.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get() = %q, %v; want \"\", false", v, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.Set("music-favorites", `[{"id":"1"}]`))
	v, ok, err := m.Get("music-favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// Overwrite
	require.NoError(t, m.Set("music-favorites", `[]`))
	v, _, _ = m.Get("music-favorites")
	assert.Equal(t, `[]`, v)

	_, ok, err = m.UpdatedAt("music-favorites")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetEmptyValue(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.Set("k", ""))
	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok, "empty value is still a stored key")
	assert.Empty(t, v)
}

func TestDelete(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.Set("k", "v"))
	require.NoError(t, m.Delete("k"))
	require.NoError(t, m.Delete("k"), "deleting a missing key is a no-op")

	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetMany(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, m.SetMany(map[string]string{"a": "1", "b": "2"}))
	for k, want := range map[string]string{"a": "1", "b": "2"} {
		got, ok, err := m.Get(k)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestOpenPath_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jamwaves.db")

	m, err := OpenPath(path)
	require.NoError(t, err)
	require.NoError(t, m.Set("k", "v"))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is safe")

	m, err = OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSchemaVersion(t *testing.T) {
	m := setupTestManager(t)

	var version int
	err := m.DB().QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	// Re-running is idempotent.
	require.NoError(t, initSchema(m.DB()))
}

func TestLastfmSession(t *testing.T) {
	for name, kv := range map[string]Interface{
		"sqlite": setupTestManager(t),
		"mock":   NewMock(),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := GetLastfmSession(kv)
			require.NoError(t, err)
			assert.Nil(t, s)

			require.NoError(t, SaveLastfmSession(kv, "alice", "sk-123"))
			s, err = GetLastfmSession(kv)
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, "alice", s.Username)
			assert.Equal(t, "sk-123", s.SessionKey)
			assert.False(t, s.LinkedAt.IsZero())

			require.NoError(t, DeleteLastfmSession(kv))
			s, err = GetLastfmSession(kv)
			require.NoError(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestLastfmSession_Corrupt(t *testing.T) {
	kv := NewMock()
	require.NoError(t, kv.Set(lastfmSessionKey, "{broken"))

	_, err := GetLastfmSession(kv)
	assert.Error(t, err)
}
