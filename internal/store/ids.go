package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NextID generates a fresh id for the given entity kind (board, col,
// proj, link, comment). IDs are globally unique across the whole tree
// and immutable once assigned.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failed or we keep colliding; a full UUID suffix cannot
	// realistically collide with the 40-bit space above.
	return prefix + "-" + uuid.NewString()
}

// NextActivityID returns a collision-resistant id for activity records.
// Activity logs are append-only and unbounded, so these skip the tree
// scan entirely.
func NextActivityID() string {
	return uuid.NewString()
}

func idExists(db *DB, id string) bool {
	for bi := range db.Boards {
		b := &db.Boards[bi]
		if b.ID == id {
			return true
		}
		for ci := range b.Columns {
			c := &b.Columns[ci]
			if c.ID == id {
				return true
			}
			for pi := range c.Projects {
				p := &c.Projects[pi]
				if p.ID == id {
					return true
				}
				for _, l := range p.Links {
					if l.ID == id {
						return true
					}
				}
				for _, cm := range p.Comments {
					if cm.ID == id {
						return true
					}
				}
			}
		}
	}
	return false
}
