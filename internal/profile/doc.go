// Package profile assembles the JSON film profile for one stock folder:
// metadata inferred from the folder slug, the RGB-to-raw matrix, the dye
// density table, and the raw sensitometry and spectral curves.
package profile
