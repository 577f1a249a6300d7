// Package noise provides deterministic pseudo-random value streams for
// redaction effects.
//
// Every perceptual random quantity in the redaction pipeline (blur grain,
// temporal blend weights, generated dither) is drawn from a Stream. A single
// master Stream is seeded from the track file, and each consumer splits off
// its own child with Fork, so two runs over the same input with the same seed
// produce byte-identical output.
//
// # Determinism
//
// Fork derives the child seed by hashing the parent seed together with a
// caller-supplied label using BLAKE2b-256. Because the derivation depends
// only on the parent seed and the label, never on how many values the parent
// has already produced, the video and audio pipelines can consume their
// streams in any interleaving without perturbing one another:
//
//	master := noise.NewStream(seed)
//	videoRand := master.Fork("video")
//	audioRand := master.Fork("audio")
//
// Streams with the same seed yield identical sequences; streams forked with
// different labels are statistically independent.
//
// # Thread Safety
//
// A Stream is NOT safe for concurrent use. Each goroutine should fork its
// own child stream; concurrent draws from a shared Stream would also destroy
// the reproducibility the package exists to provide.
package noise
