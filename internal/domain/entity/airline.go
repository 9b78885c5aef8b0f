package entity

import (
	"time"
)

// CodeSource records where an entity's identifying code came from.
type CodeSource string

const (
	CodeSourceProvided  CodeSource = "provided"  // supplied by the flight data payload
	CodeSourceMapped    CodeSource = "mapped"    // derived from the static code tables
	CodeSourceLookup    CodeSource = "lookup"    // returned by the airport info provider
	CodeSourceSynthetic CodeSource = "synthetic" // fabricated fallback, not authoritative
)

// Airline represents an airline entity
type Airline struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	Name       string     `bson:"name" json:"name"`
	IATACode   string     `bson:"iataCode" json:"iataCode"`
	ICAOCode   string     `bson:"icaoCode,omitempty" json:"icaoCode,omitempty"`
	LogoURL    string     `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	CodeSource CodeSource `bson:"codeSource" json:"codeSource"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}
