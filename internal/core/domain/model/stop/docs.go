// Package stop contains the Stop aggregate: a single order visit (pickup or
// delivery) that moves through the delivery lifecycle and may be linked into
// a route by planning or manual assignment.
package stop
