// Package ledge extracts climbable ledge paths from vertex-color markup on a
// triangle mesh.
//
// The pipeline is a chain of pure transforms over the input mesh:
//
//	FindBoundaryEdges -> Partition -> Deduplicate -> Assemble -> BuildRibbon
//
// Each stage returns a new structure; nothing is mutated in place, so the
// whole pipeline can be re-run on the same mesh with identical results.
//
// Meshes must be manifold: an edge shared by three or more triangles
// breaks boundary detection and yields an incorrect boundary set. This is
// not detected.
package ledge
