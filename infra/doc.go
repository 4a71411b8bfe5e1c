// Package infra contains the technical adapters of the tracker: metrics
// sinks, preference stores and the zerolog logger. These packages depend
// only on interfaces defined in the core packages and register themselves
// with the core factories from init.
package infra
