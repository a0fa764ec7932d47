package service

import "math"

// simpleReturns computes per-period simple returns from a price series.
// Periods with a zero previous price are skipped.
func simpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// linearFit fits an ordinary least squares line of y against the index
// 0..len(y)-1 and returns the slope, intercept and Pearson correlation
// coefficient. A series with zero variance in y yields a flat line with
// correlation 0.
func linearFit(y []float64) (slope, intercept, correlation float64) {
	n := float64(len(y))
	if n == 0 {
		return 0, 0, 0
	}
	if n == 1 {
		return 0, y[0], 0
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
		sumYY += v * v
	}

	denomX := n*sumXX - sumX*sumX
	if denomX == 0 {
		return 0, sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denomX
	intercept = (sumY - slope*sumX) / n

	denomY := n*sumYY - sumY*sumY
	if denomY <= 0 {
		// Constant y, the line is exact but carries no directional information.
		return 0, sumY / n, 0
	}

	correlation = (n*sumXY - sumX*sumY) / math.Sqrt(denomX*denomY)
	return slope, intercept, correlation
}
