// Package spline is a small client for the Spline.design REST API.
//
// Every call goes through Client.Request, which attaches the bearer
// credential, encodes GET payloads as query parameters and everything else
// as JSON, and turns any non-2xx response or transport failure into an
// *APIError carrying the upstream status and message.
//
// The named methods (GetScene, CreateObject, ApplyMaterial, ...) are fixed
// shape wrappers around Request. There is no retry or backoff.
//
// Usage:
//
//	client := spline.NewClient(spline.Config{APIKey: key})
//	scene, err := client.GetScene(ctx, "abc123")
//	if spline.IsNotFound(err) {
//		...
//	}
package spline
