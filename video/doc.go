// Package video implements the frame-level redaction engine.
//
// The engine consumes decoded planar YCbCr frames in presentation-time order
// and obscures the rectangular regions named by the active redaction tracks,
// leaving every other pixel untouched:
//
//	YUV Input → Compositor → [Solid | Pixelate | Blur] per active track → YUV Output
//
// A Compositor owns the per-session state: the track timeline, the retained
// previous output frame, and the random stream feeding the blur's grain and
// temporal blend. Each input frame is copied once, the active tracks are
// applied to the copy in timeline order (later tracks win where boxes
// overlap), and the copy is both emitted and retained for the next frame's
// temporal blend.
//
// Three obscuration methods do real work:
//
//   - SolidFill blends a constant color over the box, honoring the color's
//     alpha channel.
//   - Pixelate collapses each 64-pixel block intersecting the box to the
//     sample at the block's top-left corner. Blocks align to the frame
//     origin, not the box, so adjacent boxes tile seamlessly.
//   - Blur runs a two-pass rolling-average box blur over each plane, adds
//     integer grain to every sample, then feathers the result into an
//     ellipse inscribed in the box, blending per pixel between the source,
//     the blurred output, and the previous frame's output. The random blend
//     keeps the blur visually stable across frames without ever repeating
//     exactly.
//
// InversePixelate is accepted for forward compatibility and applies no
// transformation.
//
// Processing is strictly sequential: one frame is fully redacted and emitted
// before the next is accepted, and a Compositor must not be shared between
// goroutines.
package video
