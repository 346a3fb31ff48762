package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// maxPointLights is the size of the point light arrays in litFS.
const maxPointLights = 4

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// litFS: ambient + one directional + up to maxPointLights point lights. Point lights fade
	// to zero at pointRange (0 = no falloff). useTexture picks albedoMap over colDiffuse alone.
	litFS = `#version 330
#define MAX_POINTS 4
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float useTexture;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 dirToLight;
uniform vec3 dirColor;
uniform float pointCount;
uniform vec3 pointPos[MAX_POINTS];
uniform vec3 pointColor[MAX_POINTS];
uniform float pointRange[MAX_POINTS];
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;

vec3 shade(vec3 N, vec3 V, vec3 L, vec3 color, vec3 albedo) {
  float NdotL = max(dot(N, L), 0.0);
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  return albedo * NdotL * color + color * spec * (NdotL > 0.0 ? 1.0 : 0.0);
}

void main() {
  vec4 tint = colDiffuse;
  if (useTexture > 0.5) {
    tint *= texture(texture0, fragTexCoord);
  }
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 c = ambient * tint.rgb;
  c += shade(N, V, normalize(dirToLight), dirColor, tint.rgb);
  for (int i = 0; i < MAX_POINTS; i++) {
    if (float(i) >= pointCount) break;
    vec3 d = pointPos[i] - fragPosition;
    float dist = length(d);
    float att = 1.0;
    if (pointRange[i] > 0.0) {
      att = clamp(1.0 - dist / pointRange[i], 0.0, 1.0);
      att *= att;
    }
    c += shade(N, V, d / max(dist, 1e-4), pointColor[i], tint.rgb) * att;
  }
  finalColor = vec4(c, tint.a);
}
`
)

// litShader is the lit program with its uniform locations looked up once.
type litShader struct {
	shader rl.Shader
	loc    map[string]int32
}

var litUniforms = []string{
	"useTexture", "viewPos", "ambient", "dirToLight", "dirColor",
	"pointCount", "pointPos", "pointColor", "pointRange",
	"specularPower", "specularStrength",
}

func loadLitShader() (*litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return nil, false
	}
	s := &litShader{shader: sh, loc: make(map[string]int32, len(litUniforms))}
	for _, name := range litUniforms {
		s.loc[name] = rl.GetShaderLocation(sh, name)
	}
	return s, true
}

func (s *litShader) setFloat(name string, v float32) {
	if loc := s.loc[name]; loc >= 0 {
		rl.SetShaderValue(s.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (s *litShader) setVec3(name string, v ...float32) {
	if loc := s.loc[name]; loc >= 0 && len(v) >= 3 {
		rl.SetShaderValueV(s.shader, loc, v, rl.ShaderUniformVec3, int32(len(v)/3))
	}
}

func (s *litShader) setFloats(name string, v []float32) {
	if loc := s.loc[name]; loc >= 0 && len(v) > 0 {
		rl.SetShaderValueV(s.shader, loc, v, rl.ShaderUniformFloat, int32(len(v)))
	}
}
