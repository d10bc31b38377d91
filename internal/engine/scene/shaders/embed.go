// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PlanetVertexShader is the vertex shader for planet surface rendering.
//
//go:embed planet.vert
var PlanetVertexShader string

// PlanetFragmentShader is the fragment shader for planet surface rendering.
//
//go:embed planet.frag
var PlanetFragmentShader string

// LineVertexShader is the vertex shader for debug line rendering.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug line rendering.
//
//go:embed line.frag
var LineFragmentShader string
