// Package glow builds a rim glow + highlight window surface effect for a mesh.
//
// # Overview
//
// The effect has two parts that are blended additively:
//   - a view-dependent rim term that peaks at silhouette edges, computed per vertex
//   - a soft-edged rectangle (the highlight window) placed in the mesh's
//     local bounding box, computed per fragment
//
// glow does not own a draw loop. It extracts the mesh bounds once, describes a
// translucent, additively blended, double-sided material and injects WGSL into a
// host shader program through the [ProgramBuilder] interface. The host compiles
// the program and evaluates it during its normal draw pass.
//
// # Quick Start
//
//	import "github.com/gogpu/glow"
//
//	mesh := glow.NewUVSphere(1, 32, 16)
//	fx := glow.New(
//	    glow.WithMesh(mesh),
//	    glow.WithWindow(0.2, 0.8, 0.2, 0.8),
//	    glow.WithSoftness(0.05),
//	)
//
//	prog := shader.NewProgram(shader.Options{Skinning: fx.Material().Skinning})
//	if err := fx.AttachStages(prog); err != nil {
//	    // unknown injection point in a custom host program
//	}
//
// # Coordinates
//
// The highlight window is given in normalized surface coordinates: the mesh's
// local position rescaled into [0, 1] along the two axes of the chosen [Plane],
// relative to the mesh bounding box. Window values are passed through as given;
// use [Config.Validate] to check them.
//
// # Packages
//
//   - glow: configuration, bounds, material, stage code, CPU reference math
//   - glow/shader: reference WGSL host program and naga compilation
//   - glow/gpu: render pipeline creation on a wgpu HAL device
//   - glow/preview: CPU preview of the effect on a sphere
package glow
