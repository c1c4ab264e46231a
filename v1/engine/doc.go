// Package engine is the surface the host database engine binds against.
//
// An Engine is an explicit context object owning the client registry, the
// shared execution bridge, and the operation façades. The host constructs
// one Engine per session (or one per process, its choice) and calls:
//
//	eng := engine.New()
//	defer eng.Close()
//
//	err := eng.Register("default", config.Input{Raw: "openai::text-embedding-3-small"})
//	vec, err := eng.EmbedOne(ctx, "default", "some text")
//	vecs, err := eng.EmbedMany(ctx, "default", []string{"a", "b"})
//	res, err := eng.ProcessMultimodal(ctx, "default", images)
//
// All registered clients and the bridge are torn down together by Close;
// there is no per-client destroy.
//
// MultimodalResult marshals to the JSON record the host hands back to SQL
// callers: an ordered list of per-item results (embedding or error
// marker) and a six-field statistics record.
package engine
