// Package grid samples images into normalized intensity grids.
//
// A Grid holds rows×cols luminance values in [0, 1]. Row 0 is the top row of
// the source image and column 0 its leftmost column. Images are converted to
// single-channel luminance, resampled to the requested size and divided by
// 255. Supported encodings are PNG, JPEG, GIF and BMP.
package grid
