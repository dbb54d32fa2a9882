// Package dda implements the DDA-Atmos (Density Dimension Algorithm for
// atmospheric profiling) cloud and aerosol mask pipeline for vertically
// resolved lidar backscatter data, following the two-pass threading
// described in the ICESat-2 ATL04/09 ATBD part 2.
//
// The pipeline operates on (n, m) fields where rows are profiles
// (time/location samples) and columns are range bins (height gates):
//
//  1. Convolve the backscatter field with a Gaussian kernel, renormalising
//     for missing data, to produce a density field (CalcDensity).
//  2. Derive a per-profile cloud threshold from a moving quantile of the
//     density field (CalcThresholds).
//  3. Threshold the density field into a boolean cloud mask (CalcCloudMask).
//  4. Repeat with a second kernel/threshold parameterisation, optionally
//     backfilling first-pass clouds with synthetic noise (ReplaceWithNoise),
//     and OR the passes together (CombineMasks), discarding small clusters.
//  5. Strip the ground-return band from the combined mask (RemoveGround),
//     yielding a cleaned cloud mask and a separate ground mask.
//
// Ground bin indices are supplied by the caller; estimating them from a
// digital elevation model is the job of an upstream routine and is outside
// this package. Layer-boundary extraction downstream of the cleaned mask is
// likewise out of scope.
//
// All functions treat their inputs as read-only and return freshly
// allocated results, so callers may share input grids across goroutines.
package dda
