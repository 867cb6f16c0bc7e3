// Package trend synthesizes the 24-hour price-trend series shown when the
// provider's analytics are unavailable, plus summary statistics for the
// displayed collection.
package trend

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/skyfare/skyfare/internal/models"
)

const seriesLength = 24

// Series builds an hourly price series ending at now, centered on the mean
// price of flights: a sinusoidal swing of up to 15% plus up to 10% noise.
// Empty input yields an empty series.
func Series(flights []models.FlightOffer, now time.Time, rng *rand.Rand) []models.TrendPoint {
	if len(flights) == 0 {
		return nil
	}

	base := meanPrice(flights)

	points := make([]models.TrendPoint, 0, seriesLength)
	for i := 0; i < seriesLength; i++ {
		hour := now.Add(-time.Duration(seriesLength-1-i) * time.Hour)

		variation := math.Sin(float64(i)*0.5)*0.15 + rng.Float64()*0.1
		price := int(math.Round(base * (1 + variation)))

		points = append(points, models.TrendPoint{
			Time:      fmt.Sprintf("%02d:00", hour.Hour()),
			Price:     price,
			AvgPrice:  int(math.Round(base * 1.1)),
			LowPrice:  int(math.Round(float64(price) * 0.9)),
			HighPrice: int(math.Round(float64(price) * 1.2)),
		})
	}

	return points
}

// Stats summarizes flights; nil when the collection is empty. Current is the
// first flight's price, matching the displayed order.
func Stats(flights []models.FlightOffer) *models.PriceStats {
	if len(flights) == 0 {
		return nil
	}

	stats := &models.PriceStats{
		Min:     flights[0].Price,
		Max:     flights[0].Price,
		Current: flights[0].Price,
	}
	sum := 0
	for _, f := range flights {
		if f.Price < stats.Min {
			stats.Min = f.Price
		}
		if f.Price > stats.Max {
			stats.Max = f.Price
		}
		sum += f.Price
	}
	stats.Avg = int(math.Round(float64(sum) / float64(len(flights))))
	return stats
}

func meanPrice(flights []models.FlightOffer) float64 {
	sum := 0
	for _, f := range flights {
		sum += f.Price
	}
	return float64(sum) / float64(len(flights))
}
