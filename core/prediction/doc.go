// Package prediction derives the views shown by the tracker from an
// immutable collection of predictions: category and status facets,
// filtered and sorted lists, timeline groupings and aggregate accuracy
// figures. Every function is pure; inputs are never mutated.
package prediction
