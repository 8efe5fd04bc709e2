package query

import (
	"time"

	"TrendBoard/internal/domain/models"
)

// fixture instruments shared by the pipeline tests.

var testBase = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func inst(symbol, name, sector string, price, changePct, confidence float64, dir models.Direction, age time.Duration) models.Instrument {
	prev := price / (1 + changePct/100)
	return models.Instrument{
		ID:            symbol,
		Symbol:        symbol,
		Name:          name,
		Sector:        sector,
		CurrentPrice:  price,
		PreviousClose: prev,
		Change:        price - prev,
		ChangePercent: changePct,
		Volume:        1_000_000,
		MarketCap:     1e9,
		LastUpdated:   testBase.Add(-age),
		Prediction: models.Prediction{
			Direction:   dir,
			Confidence:  confidence,
			TargetPrice: price * 1.1,
			Timeframe:   models.Timeframe1M,
			Accuracy:    60,
		},
	}
}

func testInstruments() []models.Instrument {
	return []models.Instrument{
		inst("AAPL", "Apple Inc", "Technology", 192, 1.3, 78, models.DirectionUp, time.Hour),
		inst("XYZ", "Apple Orchards Holdings", "Consumer", 24, -0.8, 55, models.DirectionDown, 48*time.Hour),
		inst("MSFT", "Microsoft Corporation", "Technology", 421, 0.7, 82, models.DirectionUp, 2*time.Hour),
		inst("JPM", "JPMorgan Chase & Co", "Finance", 207, 1.1, 64, models.DirectionUp, 26*time.Hour),
		inst("PFE", "Pfizer Inc", "Healthcare", 28, 0.4, 45, models.DirectionNeutral, 72*time.Hour),
		inst("XOM", "Exxon Mobil Corp", "Energy", 114, -1.9, 64, models.DirectionDown, 60*time.Hour),
	}
}
