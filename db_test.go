package png2vhdl

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpriteDB(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sprites.db")

	db, err := NewSpriteDB(file)
	require.NoError(t, err)

	s, err := db.Find("ship")
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, db.Put(Sprite{Name: "ship", SHA1: "AA", Width: 1, Height: 1, Literal: []byte("\"0\"  --0\n")}))
	require.NoError(t, db.Put(Sprite{Name: "mine2", SHA1: "BB", Width: 2, Height: 1, Literal: []byte("\"01\"  --0\n")}))
	require.NoError(t, db.Put(Sprite{Name: "ship", SHA1: "CC", Width: 1, Height: 1, Literal: []byte("\"1\"  --0\n")}))
	require.NoError(t, db.Close())

	// Reopen to check the catalogue persists
	db, err = NewSpriteDB(file)
	require.NoError(t, err)
	defer db.Close()

	s, err = db.Find("ship")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "CC", s.SHA1)
	assert.Equal(t, "\"1\"  --0\n", string(s.Literal))

	sprites, err := db.Sprites()
	require.NoError(t, err)
	require.Len(t, sprites, 2)
	assert.Equal(t, "mine2", sprites[0].Name)
	assert.Equal(t, 2, sprites[0].Width)
	assert.Equal(t, "ship", sprites[1].Name)
}

func TestSpriteDBEmptyLiteral(t *testing.T) {
	db, err := NewSpriteDB(filepath.Join(t.TempDir(), "sprites.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put(Sprite{Name: "blank"}))
	s, err := db.Find("blank")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Empty(t, s.Literal)
}

func TestSpriteDBRecord(t *testing.T) {
	db, err := NewSpriteDB(filepath.Join(t.TempDir(), "sprites.db"))
	require.NoError(t, err)

	errWrite := errors.New("write failed")
	err = db.Record(Sprite{Name: "tunnel", SHA1: "AA"}, func() error { return errWrite })
	assert.Equal(t, errWrite, err)

	s, err := db.Find("tunnel")
	require.NoError(t, err)
	assert.Nil(t, s, "record must be rolled back")

	called := false
	require.NoError(t, db.Record(Sprite{Name: "tunnel", SHA1: "BB"}, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)

	s, err = db.Find("tunnel")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "BB", s.SHA1)

	require.NoError(t, db.Close())

	called = false
	assert.Error(t, db.Record(Sprite{Name: "ship"}, func() error {
		called = true
		return nil
	}))
	assert.False(t, called, "fn must not run without a record")
}
