// Package config resolves heterogeneous client configuration inputs into
// canonical, validated descriptors.
//
// # Overview
//
// A client configuration names a provider/model/credential combination. It
// can arrive in three surface forms, tried in a fixed precedence order:
//
//  1. A structured key/value descriptor (Input.Options), already canonical.
//  2. A JSON object with fields provider, model, key, api_key,
//     vision_model, endpoint.
//  3. A compact string: "provider::model", "provider:credential", or a
//     bare provider tag. Compact forms without an inline model reuse the
//     registration name as the model identifier.
//
// All three forms produce the same ClientDescriptor type:
//
//	resolver := config.NewResolver()
//	desc, err := resolver.Resolve(config.Input{
//	    Name: "text-embedding-3-small",
//	    Raw:  "openai:sk-...",
//	})
//
// # Credential fallback
//
// When the configuration carries no credential, the resolver consults a
// provider-scoped environment variable (OPENAI_API_KEY, CO_API_KEY, and so
// on). Local providers (ollama, llamafile) require no credential at all.
// A provider that requires one and has none fails resolution with
// ErrMissingCredential — at registration time, not on first embedding call.
//
// # Errors
//
// Resolution fails with one of three sentinel errors, each matchable with
// errors.Is: ErrUnknownProvider, ErrMalformedInput, ErrMissingCredential.
//
// Credentials never leak: Credential redacts itself in both String and
// MarshalJSON.
package config
