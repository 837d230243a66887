// Package horizon validates the time horizon of a model: the mandatory run
// period and the optional warm-up and cool-down periods, each given as years.
//
// Validate collects every problem it can find instead of stopping at the
// first one. The only exception is a missing run period, reported as an
// error value because no model can be built without it.
package horizon
