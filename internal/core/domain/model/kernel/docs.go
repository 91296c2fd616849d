// Package kernel contains the shared value objects of the routing domain:
// identifiers, geographic points, and time windows. All types here are
// immutable, validated at construction, and safe for concurrent use.
//
// The zero value of every kernel type is invalid; construction goes through
// the New… factory functions, and ConstructorGuard makes zero values
// detectable via Validate().
package kernel
