// Package recipes wraps the recipe, favorite and review resources of the
// recipe API.
//
// Recipe payloads arrive in several historical shapes. Normalize folds them
// into one canonical {success, data} envelope using ordered synonym lookup
// (first listed key wins) and never fails; the Decode* helpers build typed
// views on top of that for presentation code. The services take an
// api.Requester in their constructor and do not retry.
package recipes
