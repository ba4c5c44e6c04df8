package material

// Uniform names shared by every program in the family.
const (
	UniformViewProjection = "u_viewprojection"
	UniformCameraPosition = "u_camera_position"
	UniformModel          = "u_model"
	UniformColor          = "u_color"
	UniformTexture        = "u_texture"
	UniformLight1         = "u_lights_position_1"
	UniformLight2         = "u_lights_position_2"
)

// Texture units. The numbering is part of the shader contract: pbr.fs
// declares its samplers against these units.
const (
	SlotTexture = 0 // base texture and environment level 0

	SlotEnvFirst = 0
	SlotEnvLast  = 5
	SlotBRDF     = 6

	SlotAlbedo    = 7
	SlotRoughness = 8
	SlotMetallic  = 9
	SlotNormal    = 10
	SlotOpacity   = 11
	SlotEmission  = 12
	SlotOcclusion = 13
	SlotHeight    = 14
)

// Shader stage paths, resolved by the shader source.
const (
	VertexBasic        = "basic.vs"
	FragmentFlat       = "flat.fs"
	FragmentReflective = "reflective.fs"
	FragmentPhong      = "phong.fs"
	FragmentPBR        = "pbr.fs"
	FragmentCubemap    = "cubemap.fs"
)

// envUniforms names the sampler for each environment level.
var envUniforms = [EnvLevels]string{
	"u_texture",
	"u_texture_prem_0",
	"u_texture_prem_1",
	"u_texture_prem_2",
	"u_texture_prem_3",
	"u_texture_prem_4",
}
