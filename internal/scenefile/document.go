package scenefile

// document mirrors the on-disk layout shared by YAML, JSON and TOML scene
// files. Angles are in degrees.
type document struct {
	Global    globalDoc           `yaml:"globalData" toml:"globalData"`
	Camera    cameraDoc           `yaml:"cameraData" toml:"cameraData"`
	Templates map[string]*nodeDoc `yaml:"templates" toml:"templates"`
	Root      *nodeDoc            `yaml:"root" toml:"root"`
}

type globalDoc struct {
	Ambient     float64 `yaml:"ambientCoeff" toml:"ambientCoeff"`
	Diffuse     float64 `yaml:"diffuseCoeff" toml:"diffuseCoeff"`
	Specular    float64 `yaml:"specularCoeff" toml:"specularCoeff"`
	Transparent float64 `yaml:"transparentCoeff" toml:"transparentCoeff"`
}

type cameraDoc struct {
	Position    []float64 `yaml:"position" toml:"position"`
	Look        []float64 `yaml:"look" toml:"look"`
	Focus       []float64 `yaml:"focus" toml:"focus"`
	Up          []float64 `yaml:"up" toml:"up"`
	HeightAngle float64   `yaml:"heightAngle" toml:"heightAngle"`
	Aperture    float64   `yaml:"aperture" toml:"aperture"`
	FocalLength float64   `yaml:"focalLength" toml:"focalLength"`
}

type nodeDoc struct {
	Name       string         `yaml:"name" toml:"name"`
	Use        string         `yaml:"use" toml:"use"`
	Translate  []float64      `yaml:"translate" toml:"translate"`
	Rotate     []float64      `yaml:"rotate" toml:"rotate"`
	Scale      []float64      `yaml:"scale" toml:"scale"`
	Transforms []transformDoc `yaml:"transforms" toml:"transforms"`
	Primitives []primitiveDoc `yaml:"primitives" toml:"primitives"`
	Lights     []lightDoc     `yaml:"lights" toml:"lights"`
	Children   []*nodeDoc     `yaml:"children" toml:"children"`
}

// transformDoc holds exactly one of its fields.
type transformDoc struct {
	Translate []float64 `yaml:"translate" toml:"translate"`
	Rotate    []float64 `yaml:"rotate" toml:"rotate"`
	Scale     []float64 `yaml:"scale" toml:"scale"`
}

type primitiveDoc struct {
	Type        string    `yaml:"type" toml:"type"`
	Ambient     []float64 `yaml:"ambient" toml:"ambient"`
	Diffuse     []float64 `yaml:"diffuse" toml:"diffuse"`
	Specular    []float64 `yaml:"specular" toml:"specular"`
	Shininess   float64   `yaml:"shininess" toml:"shininess"`
	TextureFile string    `yaml:"textureFile" toml:"textureFile"`
	TextureU    float64   `yaml:"textureU" toml:"textureU"`
	TextureV    float64   `yaml:"textureV" toml:"textureV"`
}

type lightDoc struct {
	ID          int       `yaml:"id" toml:"id"`
	Type        string    `yaml:"type" toml:"type"`
	Color       []float64 `yaml:"color" toml:"color"`
	Attenuation []float64 `yaml:"attenuationCoeff" toml:"attenuationCoeff"`
	Direction   []float64 `yaml:"direction" toml:"direction"`
	Angle       float64   `yaml:"angle" toml:"angle"`
	Penumbra    float64   `yaml:"penumbra" toml:"penumbra"`
}
