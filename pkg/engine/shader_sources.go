package engine

// maxLights must match MAX_LIGHTS in meshFragmentShader
const maxLights = 4

// Lit mesh vertex shader; normals and light directions are in world space
const meshVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform mat3 normalMatrix;

out vec3 vNormal;
out float vDepth;

void main() {
    vec4 viewPos = view * model * vec4(aPos, 1.0);
    vNormal = normalize(normalMatrix * aNormal);
    vDepth = -viewPos.z;
    gl_Position = projection * viewPos;
}
`

// Lambert diffuse plus emissive, with exponential squared fog
const meshFragmentShader = `
#version 410 core
#define MAX_LIGHTS 4

in vec3 vNormal;
in float vDepth;
out vec4 FragColor;

uniform vec3 baseColor;
uniform vec3 emissive;

uniform int lightCount;
uniform vec3 lightDir[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];

uniform vec3 fogColor;
uniform float fogDensity;

void main() {
    vec3 n = normalize(vNormal);

    vec3 diffuse = vec3(0.0);
    for (int i = 0; i < lightCount; i++) {
        diffuse += lightColor[i] * max(dot(n, -lightDir[i]), 0.0);
    }

    vec3 color = baseColor * diffuse + emissive;

    float d = fogDensity * vDepth;
    float fog = 1.0 - clamp(exp(-d * d), 0.0, 1.0);
    FragColor = vec4(mix(color, fogColor, fog), 1.0);
}
`

// Vertex shader for the full-screen filter pass
const postProcessVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

// contrast(c) then hue-rotate, each clamped like the CSS filter chain
const postProcessFragmentShader = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D screenTexture;
uniform float contrast;
uniform mat3 hueMatrix;

void main() {
    vec3 c = texture(screenTexture, TexCoord).rgb;
    c = clamp((c - 0.5) * contrast + 0.5, 0.0, 1.0);
    c = clamp(hueMatrix * c, 0.0, 1.0);
    FragColor = vec4(c, 1.0);
}
`
