// Package recon reconstructs continuous-intensity density images from
// sparse event-count images (e.g. single-molecule localization data) by
// Gaussian kernel density estimation.
//
// Responsibilities: source grid access, per-pixel windowed density
// estimation, the parallel reduction that populates the density field,
// and intensity normalization into the 16-bit output range.
// Key types: SourceGrid, DensityField, KernelParams, OutputGrid.
//
// No image decoding or database code is allowed in this package.
package recon
