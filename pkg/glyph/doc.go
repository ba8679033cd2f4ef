// Package glyph turns raw glyph images into compositing units.
//
// Two operations live here:
//
//   - Trim crops a digit glyph to the tight horizontal span of its ink, keeping
//     every row. A pixel is ink when its intensity exceeds InkThreshold; a
//     boundary is widened by one column when the neighbouring pixel exceeds
//     EdgeThreshold so that soft antialiased edges are not cut off.
//   - ScaleBar resamples a vertical bar glyph to a target length and turns it
//     horizontal, producing a fraction bar of controlled width.
//
// Glyphs carry their Class (digit 0-9 or ClassBar) and the file they were read
// from so batch reports can name the inputs behind a failed sample.
package glyph
