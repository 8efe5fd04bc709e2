package models

import "time"

// Direction is the predicted price direction of an instrument.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionNeutral:
		return true
	}
	return false
}

// DirectionMeta holds display metadata for a prediction direction.
type DirectionMeta struct {
	Label string
	Arrow string
	Tone  string
}

var directionMeta = map[Direction]DirectionMeta{
	DirectionUp:      {Label: "Bullish", Arrow: "▲", Tone: "positive"},
	DirectionDown:    {Label: "Bearish", Arrow: "▼", Tone: "negative"},
	DirectionNeutral: {Label: "Neutral", Arrow: "►", Tone: "muted"},
}

// Meta returns display metadata for the direction. Unknown directions
// fall back to neutral metadata so rendering never breaks.
func (d Direction) Meta() DirectionMeta {
	if m, ok := directionMeta[d]; ok {
		return m
	}
	return directionMeta[DirectionNeutral]
}

// Timeframe is the horizon a prediction applies to.
type Timeframe string

const (
	Timeframe1D Timeframe = "1d"
	Timeframe1W Timeframe = "1w"
	Timeframe1M Timeframe = "1m"
	Timeframe3M Timeframe = "3m"
)

// Prediction is a directional forecast attached to an instrument.
type Prediction struct {
	Direction   Direction `json:"direction"`
	Confidence  float64   `json:"confidence"`
	TargetPrice float64   `json:"targetPrice"`
	Timeframe   Timeframe `json:"timeframe"`
	Accuracy    float64   `json:"accuracy"`
}

// Instrument is one tradable entity with an attached prediction.
// Change and ChangePercent are producer-maintained: the query pipeline
// never recomputes them.
type Instrument struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Symbol        string     `json:"symbol" gorm:"index"`
	Name          string     `json:"name"`
	CurrentPrice  float64    `json:"currentPrice"`
	PreviousClose float64    `json:"previousClose"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"changePercent"`
	Volume        int64      `json:"volume"`
	MarketCap     float64    `json:"marketCap"`
	Sector        string     `json:"sector" gorm:"index"`
	LastUpdated   time.Time  `json:"lastUpdated"`
	Prediction    Prediction `json:"prediction" gorm:"embedded;embeddedPrefix:prediction_"`
}
