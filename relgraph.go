// Package relgraph harvests a professional relationship graph from a
// rendered web source into local storage and answers natural-language
// queries over that graph with ranked, explainable results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package relgraph
