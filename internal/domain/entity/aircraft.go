package entity

import "time"

// TailSource records whether a tail number is a real registration.
type TailSource string

const (
	TailSourceProvided  TailSource = "provided"
	TailSourceSynthetic TailSource = "synthetic"
)

// Photo is an aircraft photo found by image search. SourceID is unique per aircraft.
type Photo struct {
	URL          string    `bson:"url" json:"url"`
	Photographer string    `bson:"photographer" json:"photographer"`
	SourceID     string    `bson:"sourceId" json:"sourceId"`
	License      string    `bson:"license" json:"license"`
	AddedAt      time.Time `bson:"addedAt" json:"addedAt"`
}

// Aircraft represents a physical airframe keyed by its tail number.
type Aircraft struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	TailNumber       string     `bson:"tailNumber" json:"tailNumber"`
	AirlineID        string     `bson:"airlineId,omitempty" json:"airlineId,omitempty"`
	AircraftType     string     `bson:"aircraftType" json:"aircraftType"`
	Manufacturer     string     `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model            string     `bson:"model,omitempty" json:"model,omitempty"`
	Photos           []Photo    `bson:"photos" json:"photos"`
	PhotoLastUpdated *time.Time `bson:"photoLastUpdated,omitempty" json:"photoLastUpdated,omitempty"`
	TailSource       TailSource `bson:"tailSource" json:"tailSource"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// HasPhoto reports whether a photo with the given source id is already attached.
func (a *Aircraft) HasPhoto(sourceID string) bool {
	for _, p := range a.Photos {
		if p.SourceID == sourceID {
			return true
		}
	}
	return false
}

// ImageQuery is the input to an aircraft image search.
type ImageQuery struct {
	Registration string
	Type         string
	Airline      string
}

// ImageResult is a single hit returned by an image searcher.
type ImageResult struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	AttributionText string `json:"attributionText"`
	License         string `json:"license,omitempty"`
}
