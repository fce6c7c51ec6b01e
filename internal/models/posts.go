package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxPhotos is the number of photo slots a post carries.
const MaxPhotos = 3

// PhotoList is a slot-ordered list of up to MaxPhotos relative file paths
// (forward slashes, rooted at the public dir). Stored as JSONB.
type PhotoList []string

func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		p = PhotoList{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	// string, not []byte: the pgx stdlib driver would ship []byte as bytea,
	// which does not coerce to jsonb.
	return string(b), nil
}

func (p *PhotoList) Scan(src any) error {
	if src == nil {
		*p = PhotoList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into PhotoList", src)
	}
	return json.Unmarshal(b, p)
}

type Post struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Photos    PhotoList `db:"photos" json:"photos"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
