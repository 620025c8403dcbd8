package model

import "time"

// ExemptionsDocument is the persisted record, one per company number.
type ExemptionsDocument struct {
	ID      string            `bson:"_id" json:"id"`
	Created *Created          `bson:"created,omitempty" json:"created,omitempty"`
	Data    CompanyExemptions `bson:"data" json:"data"`
	DeltaAt string            `bson:"delta_at,omitempty" json:"delta_at,omitempty"`
	Updated Updated           `bson:"updated" json:"updated"`
}

// Created marks the first-ever insert for a company number. Set once, copied
// forward on every later update, never advanced.
type Created struct {
	At time.Time `bson:"at" json:"at"`
}

type Updated struct {
	At time.Time `bson:"at" json:"at"`
	By string    `bson:"by,omitempty" json:"by,omitempty"`
}
