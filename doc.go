// Package framery ingests directories of raw image files and turns
// them into an ordered, keyed collection of multidimensional numeric
// frames ready for downstream distributed processing.
//
// Three source formats are supported, each handled by a dedicated
// decoder selected once from configuration:
//
//   - flat binary stacks of a configured shape and element type,
//     optionally subdivided into fixed-size plane groups
//   - multipage containers holding an unknown number of 2-D pages,
//     decoded through an injected page codec
//   - single-image files, one frame per file
//
// Records are decoded independently and in parallel; the global frame
// order is carried entirely by the keys, never by execution order.
//
// # Quick Start
//
// Load a directory of int16 binary stacks, three planes per frame:
//
//	loader := framery.New(framery.WithWorkers(8))
//	src := recordsource.NewLocal("/data/run42", recordsource.WithExt("stack"))
//	coll, err := loader.FromStack(ctx, src, dtype.Int16,
//	    frame.Dimensions{512, 512, 30}, decode.WithPlanesPerFrame(3))
//
// Load multipage containers with a caller-supplied page codec:
//
//	loader := framery.New(framery.WithPageCodec(mycodec))
//	coll, err := loader.FromMultipage(ctx, src, decode.WithPlanesPerFrame(2))
//
// A decode failure on any record aborts the whole run: there is no
// per-record skip or retry at this layer. Callers needing resilience
// must pre-filter bad files upstream.
package framery
