package png2vhdl

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Sprite is a converted image as recorded in the SpriteDB.
type Sprite struct {
	Name    string
	SHA1    string
	Width   int
	Height  int
	Literal []byte
}

// SpriteDB is a catalogue of converted sprites backed by SQLite.
type SpriteDB struct {
	db *sql.DB
}

// NewSpriteDB opens or creates the database in file.
func NewSpriteDB(file string) (*SpriteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, literal BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &SpriteDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *SpriteDB) Close() error {
	return db.db.Close()
}

const putSprite = "INSERT OR REPLACE INTO sprite (name, sha1, width, height, literal) VALUES (?, ?, ?, ?, ?)"

func literalOf(s Sprite) []byte {
	if s.Literal == nil {
		return []byte{}
	}
	return s.Literal
}

// Put records s, replacing any sprite with the same name.
func (db *SpriteDB) Put(s Sprite) error {
	if _, err := db.db.Exec(putSprite, s.Name, s.SHA1, s.Width, s.Height, literalOf(s)); err != nil {
		return err
	}
	return nil
}

// Record stores s and then calls fn within the same transaction. s is only
// kept if fn succeeds, and fn is never called if s cannot be stored.
func (db *SpriteDB) Record(s Sprite, fn func() error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(putSprite, s.Name, s.SHA1, s.Width, s.Height, literalOf(s)); err != nil {
		tx.Rollback()
		return err
	}

	if err := fn(); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Find returns the sprite with the given name, or nil if there isn't one.
func (db *SpriteDB) Find(name string) (*Sprite, error) {
	s := Sprite{Name: name}
	switch err := db.db.QueryRow("SELECT sha1, width, height, literal FROM sprite WHERE name = ?", name).Scan(&s.SHA1, &s.Width, &s.Height, &s.Literal); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &s, nil
	default:
		return nil, err
	}
}

// Sprites returns every recorded sprite ordered by name.
func (db *SpriteDB) Sprites() ([]Sprite, error) {
	rows, err := db.db.Query("SELECT name, sha1, width, height, literal FROM sprite ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprites []Sprite
	for rows.Next() {
		var s Sprite
		if err := rows.Scan(&s.Name, &s.SHA1, &s.Width, &s.Height, &s.Literal); err != nil {
			return nil, err
		}
		sprites = append(sprites, s)
	}
	return sprites, rows.Err()
}
