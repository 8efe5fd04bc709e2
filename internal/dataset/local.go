// Package dataset bundles the demo instrument collection used as the
// local fallback when the remote source is unavailable, and as the seed
// for the server-side store. The collection is built once and only ever
// handed out as copies.
package dataset

import (
	"sort"
	"sync"
	"time"

	"TrendBoard/internal/domain/models"
)

var (
	once sync.Once
	all  []models.Instrument
)

type seed struct {
	symbol, name, sector string
	price, prev          float64
	volume               int64
	mcapB                float64
	ageHours             int
	dir                  models.Direction
	confidence, target   float64
	tf                   models.Timeframe
	accuracy             float64
}

var seeds = []seed{
	{"AAPL", "Apple Inc", "Technology", 192.40, 189.90, 54_200_000, 2980, 2, models.DirectionUp, 78, 205.00, models.Timeframe1M, 71},
	{"MSFT", "Microsoft Corporation", "Technology", 421.15, 418.30, 21_800_000, 3130, 3, models.DirectionUp, 82, 445.00, models.Timeframe3M, 74},
	{"GOOGL", "Alphabet Inc", "Technology", 168.20, 171.05, 27_400_000, 2100, 5, models.DirectionDown, 61, 158.00, models.Timeframe1W, 63},
	{"AMZN", "Amazon.com Inc", "Consumer", 186.90, 184.10, 39_100_000, 1940, 8, models.DirectionUp, 69, 199.00, models.Timeframe1M, 66},
	{"NVDA", "NVIDIA Corporation", "Technology", 118.75, 112.60, 312_000_000, 2920, 1, models.DirectionUp, 91, 140.00, models.Timeframe3M, 79},
	{"META", "Meta Platforms Inc", "Technology", 504.30, 509.80, 14_600_000, 1280, 12, models.DirectionNeutral, 52, 505.00, models.Timeframe1W, 58},
	{"TSLA", "Tesla Inc", "Consumer", 214.60, 222.45, 96_500_000, 684, 4, models.DirectionDown, 67, 195.00, models.Timeframe1M, 60},
	{"JPM", "JPMorgan Chase & Co", "Finance", 207.85, 205.20, 8_900_000, 597, 26, models.DirectionUp, 64, 218.00, models.Timeframe3M, 69},
	{"BAC", "Bank of America Corp", "Finance", 41.32, 41.90, 32_700_000, 321, 30, models.DirectionDown, 55, 38.50, models.Timeframe1M, 57},
	{"GS", "Goldman Sachs Group", "Finance", 486.10, 479.55, 2_100_000, 156, 48, models.DirectionUp, 71, 512.00, models.Timeframe3M, 68},
	{"V", "Visa Inc", "Finance", 281.45, 280.10, 6_300_000, 571, 20, models.DirectionNeutral, 49, 283.00, models.Timeframe1W, 54},
	{"MA", "Mastercard Inc", "Finance", 462.70, 458.35, 2_800_000, 430, 22, models.DirectionUp, 66, 480.00, models.Timeframe1M, 65},
	{"JNJ", "Johnson & Johnson", "Healthcare", 152.30, 154.15, 7_200_000, 367, 50, models.DirectionDown, 58, 145.00, models.Timeframe1M, 62},
	{"PFE", "Pfizer Inc", "Healthcare", 28.15, 27.80, 41_900_000, 159, 72, models.DirectionNeutral, 45, 28.00, models.Timeframe1W, 51},
	{"UNH", "UnitedHealth Group", "Healthcare", 506.80, 498.90, 3_400_000, 466, 18, models.DirectionUp, 73, 540.00, models.Timeframe3M, 70},
	{"MRK", "Merck & Co Inc", "Healthcare", 126.45, 128.10, 9_800_000, 320, 96, models.DirectionDown, 62, 118.00, models.Timeframe1M, 64},
	{"ABBV", "AbbVie Inc", "Healthcare", 171.90, 169.75, 5_600_000, 304, 40, models.DirectionUp, 69, 182.00, models.Timeframe3M, 67},
	{"XOM", "Exxon Mobil Corp", "Energy", 114.25, 116.40, 15_700_000, 453, 60, models.DirectionDown, 64, 105.00, models.Timeframe1M, 59},
	{"CVX", "Chevron Corporation", "Energy", 156.70, 155.05, 7_800_000, 288, 66, models.DirectionNeutral, 50, 157.00, models.Timeframe1W, 55},
	{"COP", "ConocoPhillips", "Energy", 108.90, 106.35, 6_100_000, 127, 80, models.DirectionUp, 60, 117.00, models.Timeframe3M, 61},
	{"SLB", "Schlumberger NV", "Energy", 42.85, 44.20, 11_200_000, 61, 110, models.DirectionDown, 57, 39.00, models.Timeframe1M, 56},
	{"WMT", "Walmart Inc", "Consumer", 68.40, 67.55, 17_300_000, 551, 14, models.DirectionUp, 65, 73.00, models.Timeframe3M, 68},
	{"PG", "Procter & Gamble Co", "Consumer", 168.55, 169.30, 6_900_000, 397, 36, models.DirectionNeutral, 47, 169.00, models.Timeframe1W, 53},
	{"KO", "Coca-Cola Company", "Consumer", 63.20, 62.45, 12_400_000, 272, 44, models.DirectionUp, 59, 66.50, models.Timeframe1M, 63},
	{"NKE", "Nike Inc", "Consumer", 76.85, 79.60, 13_600_000, 116, 56, models.DirectionDown, 68, 70.00, models.Timeframe1M, 61},
	{"ORCL", "Oracle Corporation", "Technology", 139.60, 136.85, 8_700_000, 385, 10, models.DirectionUp, 75, 152.00, models.Timeframe3M, 72},
	{"CRM", "Salesforce Inc", "Technology", 252.30, 256.90, 5_200_000, 244, 28, models.DirectionDown, 63, 238.00, models.Timeframe1M, 58},
	{"INTC", "Intel Corporation", "Technology", 21.45, 22.10, 68_400_000, 91, 34, models.DirectionDown, 70, 18.50, models.Timeframe3M, 65},
	{"AMD", "Advanced Micro Devices", "Technology", 144.80, 141.25, 47_900_000, 234, 6, models.DirectionUp, 77, 162.00, models.Timeframe3M, 73},
	{"DIS", "Walt Disney Company", "Consumer", 92.15, 92.60, 10_800_000, 168, 90, models.DirectionNeutral, 48, 92.00, models.Timeframe1W, 52},
}

func build() []models.Instrument {
	now := time.Now().UTC().Truncate(time.Minute)
	out := make([]models.Instrument, 0, len(seeds))
	for _, s := range seeds {
		change := round2(s.price - s.prev)
		pct := round2(change / s.prev * 100)
		out = append(out, models.Instrument{
			ID:            s.symbol,
			Symbol:        s.symbol,
			Name:          s.name,
			CurrentPrice:  s.price,
			PreviousClose: s.prev,
			Change:        change,
			ChangePercent: pct,
			Volume:        s.volume,
			MarketCap:     s.mcapB * 1e9,
			Sector:        s.sector,
			LastUpdated:   now.Add(-time.Duration(s.ageHours) * time.Hour),
			Prediction: models.Prediction{
				Direction:   s.dir,
				Confidence:  s.confidence,
				TargetPrice: s.target,
				Timeframe:   s.tf,
				Accuracy:    s.accuracy,
			},
		})
	}
	return out
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

// Instruments returns a fresh copy of the bundled collection. Callers
// may sort or slice the copy freely; the shared backing array is never
// exposed.
func Instruments() []models.Instrument {
	once.Do(func() { all = build() })
	out := make([]models.Instrument, len(all))
	copy(out, all)
	return out
}

// Sectors returns the distinct sectors present in the collection,
// sorted ascending.
func Sectors() []string {
	seen := make(map[string]struct{})
	for _, in := range Instruments() {
		seen[in.Sector] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
