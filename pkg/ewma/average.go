// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ewma

// Average is an exponentially weighted moving average of float samples that
// also tracks the variance of the samples.
type Average struct {
	alpha       float64
	initialized bool
	average     float64
	variance    float64
}

// NewAverage returns an Average giving weight alpha to each new sample.
func NewAverage(alpha float64) *Average {
	return &Average{alpha: alpha}
}

// Update adds a sample.
func (a *Average) Update(sample float64) {
	if !a.initialized {
		a.average = sample
		a.initialized = true

		return
	}
	delta := sample - a.average
	a.average = a.alpha*sample + (1-a.alpha)*a.average
	a.variance = (1-a.alpha)*a.variance + a.alpha*(1-a.alpha)*(delta*delta)
}

// Value returns the current average, zero before the first sample.
func (a *Average) Value() float64 {
	return a.average
}

// Variance returns the current variance.
func (a *Average) Variance() float64 {
	return a.variance
}
