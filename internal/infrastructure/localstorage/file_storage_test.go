package localstorage_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/infrastructure/localstorage"
)

const path = "/data/.caresync/localstorage.json"

func TestFileStorage_ClaveAusente(t *testing.T) {
	s := localstorage.NewFileStorage(afero.NewMemMapFs(), path)

	v, ok, err := s.GetItem("currentUser")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileStorage_SetGetRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := localstorage.NewFileStorage(fs, path)

	require.NoError(t, s.SetItem("currentUser", `{"id":"USR006"}`))
	require.NoError(t, s.SetItem("users", `[]`))

	v, ok, err := s.GetItem("currentUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"USR006"}`, v)

	require.NoError(t, s.RemoveItem("currentUser"))
	_, ok, err = s.GetItem("currentUser")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.GetItem("users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestFileStorage_PersisteEntreInstancias(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, localstorage.NewFileStorage(fs, path).SetItem("users", `[{"email":"a@b.c"}]`))

	v, ok, err := localstorage.NewFileStorage(fs, path).GetItem("users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"email":"a@b.c"}]`, v)
}

func TestFileStorage_NoDejaTemporales(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := localstorage.NewFileStorage(fs, path)
	require.NoError(t, s.SetItem("a", "1"))
	require.NoError(t, s.SetItem("b", "2"))

	entries, err := afero.ReadDir(fs, "/data/.caresync")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "localstorage.json", entries[0].Name())
}

func TestFileStorage_ArchivoCorrupto(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte("{no es json"), 0o644))
	s := localstorage.NewFileStorage(fs, path)

	_, _, err := s.GetItem("users")
	assert.Error(t, err)
	assert.Error(t, s.SetItem("users", "[]"))
}

func TestFileStorage_SoloLectura(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := localstorage.NewFileStorage(fs, path)

	assert.Error(t, s.SetItem("users", "[]"))
}
