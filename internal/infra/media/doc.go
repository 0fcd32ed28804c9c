// Package media stores article attachments in Cloudinary.
//
// CloudinaryStore talks to the provider. Guarded wraps any Store with
// throttling, a circuit breaker and delete retries, and records metrics for
// every call. ExtractPublicID recovers the provider id from a stored URL.
package media
