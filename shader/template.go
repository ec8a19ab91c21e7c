package shader

import (
	"strings"
	"text/template"
)

// Marker lines in the stage templates. Code injected at a point is inserted on
// the line after its marker.
const (
	markerPrefix   = "//#include <"
	markerVaryings = "varyings"
)

func marker(name string) string {
	return markerPrefix + name + ">"
}

// MaxBones is the size of the bone matrix block in skinned programs.
const MaxBones = 64

// templateData feeds the stage templates.
type templateData struct {
	Skinning  bool
	MaxBones  int
	BaseColor string
}

// vertexTemplate is the host vertex stage. Bind group 0 holds the camera,
// group 1 the bone matrices of skinned programs.
var vertexTemplate = template.Must(template.New("vertex").Parse(`struct Camera {
    model: mat4x4<f32>,
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
    normal: mat4x4<f32>,
}
@group(0) @binding(0) var<uniform> camera: Camera;
{{if .Skinning}}
struct Skin {
    bones: array<mat4x4<f32>, {{.MaxBones}}>,
}
@group(1) @binding(0) var<uniform> skin: Skin;
{{end}}
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
{{- if .Skinning}}
    @location(2) joints: vec4<u32>,
    @location(3) weights: vec4<f32>,
{{- end}}
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    //#include <varyings>
}

@vertex
fn vs_main(vin: VertexInput) -> VertexOutput {
    var vs_out: VertexOutput;
    var transformed = vin.position;
    var object_normal = vin.normal;
{{- if .Skinning}}
    let skin_matrix = skin.bones[vin.joints.x] * vin.weights.x
        + skin.bones[vin.joints.y] * vin.weights.y
        + skin.bones[vin.joints.z] * vin.weights.z
        + skin.bones[vin.joints.w] * vin.weights.w;
    transformed = (skin_matrix * vec4<f32>(transformed, 1.0)).xyz;
    object_normal = (skin_matrix * vec4<f32>(object_normal, 0.0)).xyz;
{{- end}}
    let normal_matrix = mat3x3<f32>(camera.normal[0].xyz, camera.normal[1].xyz, camera.normal[2].xyz);
    //#include <begin_vertex>
    vs_out.clip_position = camera.projection * camera.view * camera.model * vec4<f32>(transformed, 1.0);
    return vs_out;
}
`))

// fragmentTemplate is the host fragment stage.
var fragmentTemplate = template.Must(template.New("fragment").Parse(`struct FragmentInput {
    @builtin(position) frag_position: vec4<f32>,
    //#include <varyings>
}

@fragment
fn fs_main(fs_in: FragmentInput) -> @location(0) vec4<f32> {
    var frag_color = vec4<f32>({{.BaseColor}}, 1.0);
    //#include <dithering_fragment>
    return frag_color;
}
`))

// render executes a stage template. The templates are fixed and their data has
// no user-controlled strings, so execution cannot fail.
func render(t *template.Template, data templateData) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic("shader: template " + t.Name() + ": " + err.Error())
	}
	return b.String()
}
