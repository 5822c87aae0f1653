package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// Lit shader: directional diffuse + ambient + Blinn-Phong specular, tinted by colDiffuse.
// Attribute names match raylib meshes (vertexPosition, vertexTexCoord, vertexNormal).
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)

// Lighting defaults shared by every primitive.
var (
	ambientColor = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor   = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// setLitShaderUniforms uploads view and light state. Values are copied into local arrays (cgo-safe).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	light := lightColor
	amb := ambientColor
	setVec := func(name string, v []float32, typ rl.ShaderUniformDataType) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, 1)
		}
	}
	setVec("viewPos", viewPos[:], rl.ShaderUniformVec3)
	setVec("lightDir", lightDir[:], rl.ShaderUniformVec3)
	setVec("lightColor", light[:], rl.ShaderUniformVec3)
	setVec("ambient", amb[:], rl.ShaderUniformVec4)
	setVec("lightIntensity", []float32{lightIntensity}, rl.ShaderUniformFloat)
	setVec("specularPower", []float32{specularPower}, rl.ShaderUniformFloat)
	setVec("specularStrength", []float32{specularStrength}, rl.ShaderUniformFloat)
}
