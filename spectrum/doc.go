// Package spectrum derives an absorption spectrum from the AB data block and
// its "AB Data Parameter" group.
//
// The wavenumber axis is not stored in the file. It is regenerated from the
// parameters FXV (first x-value), LXV (last x-value) and NPT (point count) as
// an evenly spaced sequence running from FXV to LXV inclusive, in the order
// of the stored intensities.
package spectrum
