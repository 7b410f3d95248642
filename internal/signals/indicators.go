// Package signals provides technical indicator calculations.
// All functions take bars ordered oldest first.
package signals

import (
	"math"
	"sort"

	"github.com/jwhittle/stockscout/internal/models"
)

// SMA calculates Simple Moving Average over the most recent period
func SMA(bars []models.Bar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// RSI calculates Relative Strength Index
func RSI(bars []models.Bar, period int) float64 {
	if len(bars) < period+1 {
		return 50 // Neutral default
	}

	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Momentum calculates the percent change in close over the last period days
func Momentum(bars []models.Bar, period int) float64 {
	if len(bars) < period+1 {
		return 0
	}

	past := bars[len(bars)-period-1].Close
	if past == 0 {
		return 0
	}
	current := bars[len(bars)-1].Close
	return (current - past) / past * 100
}

// AnnualizedVolatility calculates the annualized standard deviation of
// daily returns over the most recent period, as a percentage.
func AnnualizedVolatility(bars []models.Bar, period int) float64 {
	if len(bars) < period+1 {
		return 0
	}

	returns := make([]float64, 0, period)
	for i := len(bars) - period; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (bars[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(252) * 100
}

// AverageVolume calculates average volume over the most recent period
func AverageVolume(bars []models.Bar, period int) int64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	var sum int64
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Volume
	}
	return sum / int64(period)
}

// VolumeRatio calculates current volume as ratio of average
func VolumeRatio(currentVolume int64, bars []models.Bar, period int) float64 {
	avg := AverageVolume(bars, period)
	if avg == 0 {
		return 1.0
	}
	return float64(currentVolume) / float64(avg)
}

// RangePercent returns where price sits within [low, high] as 0..1
func RangePercent(price, low, high float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (price - low) / (high - low)
	return math.Max(0, math.Min(1, pos))
}

// Level is a price level with the number of times price touched it
type Level struct {
	Price   float64
	Touches int
}

// DetectSupportResistance finds clustered support and resistance levels
// from local extrema. Nearby extrema within tolerance (as a fraction of
// price) merge into one level; levels need at least two touches.
// Returns the nearest support below and resistance above currentPrice,
// zero when none qualifies.
func DetectSupportResistance(bars []models.Bar, currentPrice, tolerance float64) (support, resistance float64) {
	if len(bars) < 5 {
		return 0, 0
	}

	var lows, highs []float64
	for i := 2; i < len(bars)-2; i++ {
		if bars[i].Low < bars[i-1].Low && bars[i].Low < bars[i-2].Low &&
			bars[i].Low < bars[i+1].Low && bars[i].Low < bars[i+2].Low {
			lows = append(lows, bars[i].Low)
		}
		if bars[i].High > bars[i-1].High && bars[i].High > bars[i-2].High &&
			bars[i].High > bars[i+1].High && bars[i].High > bars[i+2].High {
			highs = append(highs, bars[i].High)
		}
	}

	for _, level := range clusterLevels(lows, tolerance) {
		if level.Touches >= 2 && level.Price < currentPrice && level.Price > support {
			support = level.Price
		}
	}
	for _, level := range clusterLevels(highs, tolerance) {
		if level.Touches >= 2 && level.Price > currentPrice &&
			(resistance == 0 || level.Price < resistance) {
			resistance = level.Price
		}
	}

	return support, resistance
}

// clusterLevels merges sorted prices within tolerance into averaged levels
func clusterLevels(prices []float64, tolerance float64) []Level {
	if len(prices) == 0 {
		return nil
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var levels []Level
	clusterSum := sorted[0]
	clusterCount := 1

	for _, p := range sorted[1:] {
		mean := clusterSum / float64(clusterCount)
		if mean > 0 && (p-mean)/mean <= tolerance {
			clusterSum += p
			clusterCount++
			continue
		}
		levels = append(levels, Level{Price: clusterSum / float64(clusterCount), Touches: clusterCount})
		clusterSum = p
		clusterCount = 1
	}
	levels = append(levels, Level{Price: clusterSum / float64(clusterCount), Touches: clusterCount})

	return levels
}

// DetectCrossover detects SMA crossovers between the last two sessions.
// Returns "golden_cross", "death_cross", or "none".
func DetectCrossover(bars []models.Bar, shortPeriod, longPeriod int) string {
	if len(bars) < longPeriod+1 {
		return "none"
	}

	shortSMA := SMA(bars, shortPeriod)
	longSMA := SMA(bars, longPeriod)

	prev := bars[:len(bars)-1]
	prevShortSMA := SMA(prev, shortPeriod)
	prevLongSMA := SMA(prev, longPeriod)

	if prevShortSMA <= prevLongSMA && shortSMA > longSMA {
		return "golden_cross"
	}
	if prevShortSMA >= prevLongSMA && shortSMA < longSMA {
		return "death_cross"
	}

	return "none"
}

// ClassifyRSI classifies RSI value
func ClassifyRSI(rsi float64) string {
	if rsi >= 70 {
		return "overbought"
	}
	if rsi <= 30 {
		return "oversold"
	}
	return "neutral"
}

// ClassifyVolume classifies volume based on ratio
func ClassifyVolume(ratio float64) string {
	if ratio >= 2.0 {
		return "spike"
	}
	if ratio <= 0.5 {
		return "low"
	}
	return "normal"
}

// DistanceToSMA calculates percentage distance from current price to SMA
func DistanceToSMA(currentPrice, sma float64) float64 {
	if sma == 0 {
		return 0
	}
	return ((currentPrice - sma) / sma) * 100
}
