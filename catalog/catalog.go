/*
Package catalog implements a SQLite catalog of decoded caverns.

Caverns are stored per source binary, keyed by the checksum of the caverns
region, so importing the same binary twice replaces the earlier import.
*/
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/minerdata"
	"github.com/bodgit/minerdata/sprite"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog is an open catalog database.
type Catalog struct {
	db *sql.DB
}

// Cavern is a catalogued cavern.
type Cavern struct {
	Number int
	Name   string
	Layout []byte
}

func checksumKey(checksum uint64) string {
	return fmt.Sprintf("%016X", checksum)
}

// Open opens, creating if necessary, the catalog in file.
func Open(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, checksum TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS cavern (id INTEGER PRIMARY KEY NOT NULL, source_id INTEGER NOT NULL, number INTEGER NOT NULL, name TEXT NOT NULL, layout BLOB NOT NULL, UNIQUE(source_id, number), FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (cavern_id INTEGER NOT NULL, slot INTEGER NOT NULL, attribute INTEGER NOT NULL, bitmap BLOB NOT NULL, PRIMARY KEY(cavern_id, slot), FOREIGN KEY(cavern_id) REFERENCES cavern(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the catalog.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func addSource(tx *sql.Tx, checksum uint64) (int64, error) {
	key := checksumKey(checksum)

	var id int64
	switch err := tx.QueryRow("SELECT id FROM source WHERE checksum = ?", key).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO source (checksum) VALUES (?)", key)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := tx.Exec("DELETE FROM tile WHERE cavern_id IN (SELECT id FROM cavern WHERE source_id = ?)", id); err != nil {
			return 0, err
		}
		if _, err := tx.Exec("DELETE FROM cavern WHERE source_id = ?", id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// Import stores every cavern and tile in gd, replacing any earlier import of
// the same data.
func (c *Catalog) Import(gd *minerdata.GameData) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}

	if err := importGameData(tx, gd); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func importGameData(tx *sql.Tx, gd *minerdata.GameData) error {
	source, err := addSource(tx, gd.Checksum)
	if err != nil {
		return err
	}

	for i, cav := range gd.Caverns {
		result, err := tx.Exec("INSERT INTO cavern (source_id, number, name, layout) VALUES (?, ?, ?, ?)", source, i, cav.Name, cav.Layout.Bytes())
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		for slot, s := range cav.Tiles {
			if _, err := tx.Exec("INSERT INTO tile (cavern_id, slot, attribute, bitmap) VALUES (?, ?, ?, ?)", id, slot, s.Attribute().Byte(), s.Bitmap()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Caverns returns the catalogued caverns for the given checksum in file
// order. No caverns and no error are returned if the checksum is unknown.
func (c *Catalog) Caverns(checksum uint64) ([]Cavern, error) {
	rows, err := c.db.Query("SELECT c.number, c.name, c.layout FROM cavern AS c JOIN source AS s ON c.source_id = s.id WHERE s.checksum = ? ORDER BY c.number", checksumKey(checksum))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var caverns []Cavern
	for rows.Next() {
		var cav Cavern
		if err := rows.Scan(&cav.Number, &cav.Name, &cav.Layout); err != nil {
			return nil, err
		}
		caverns = append(caverns, cav)
	}
	return caverns, rows.Err()
}

// Tiles returns the tile sprites of a catalogued cavern in slot order.
func (c *Catalog) Tiles(checksum uint64, number int) ([]*sprite.Sprite, error) {
	rows, err := c.db.Query("SELECT t.attribute, t.bitmap FROM tile AS t JOIN cavern AS c ON t.cavern_id = c.id JOIN source AS s ON c.source_id = s.id WHERE s.checksum = ? AND c.number = ? ORDER BY t.slot", checksumKey(checksum), number)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprites []*sprite.Sprite
	for rows.Next() {
		var attr byte
		var bitmap []byte
		if err := rows.Scan(&attr, &bitmap); err != nil {
			return nil, err
		}
		s, err := sprite.Decode(sprite.Width, sprite.Height, append([]byte{attr}, bitmap...))
		if err != nil {
			return nil, err
		}
		sprites = append(sprites, s)
	}
	return sprites, rows.Err()
}
