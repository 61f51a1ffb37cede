// Package wide provides SIMD-friendly wide types for batch pixel processing.
//
// F32x8 holds 8 float32 lanes in a fixed-size array. Operations are written
// as simple loops over the array so the Go compiler can auto-vectorize them
// on architectures with SSE, AVX or NEON.
//
// The splat rasterizer walks each tile row in chunks of 8 pixels and keeps
// the per-pixel compositing state (transmittance, accumulated color) in
// F32x8 lanes.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
package wide

// Lanes is the number of elements in an F32x8.
const Lanes = 8
