package settings

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/tickblend/tickblend/xerror"
)

// Settings contains all configuration for the interpolation system. The struct is
// mutable at runtime through the facade; changes take effect on the next update.
type Settings struct {
	// Enabled is the master gate. When false, updates and pose queries behave as if
	// no entities were tracked.
	Enabled bool
	// TargetFPS is the presentation rate the host aims for. It is informational and
	// only consumed by hosts to derive the interpolation factor.
	TargetFPS int
	// InterpPosition, InterpRotation and InterpScale toggle blending of the
	// respective channels. A disabled channel passes the current tick's pose
	// through unchanged.
	InterpPosition bool
	InterpRotation bool
	InterpScale    bool
	// InterpCamera tells the host whether camera-class entities should be driven
	// through the interpolation path. The blend itself is identical for any entity.
	InterpCamera bool
	// BlendSharpness biases the blend curve toward a snap. Zero is pure linear
	// interpolation, one snaps straight to the current pose.
	BlendSharpness float32
}

// Default returns the settings the system starts with: a 60 fps presentation
// target with every channel enabled and a linear blend.
func Default() Settings {
	return Settings{
		Enabled:        true,
		TargetFPS:      60,
		InterpPosition: true,
		InterpRotation: true,
		InterpScale:    true,
		InterpCamera:   true,
	}
}

// Load reads settings from the TOML file at the given path. If the file does not
// exist, it is created with defaults and those defaults are returned.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s := Default()
		if err := Save(path, s); err != nil {
			return s, err
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), xerror.New("settings: read %s: %v", path, err)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), xerror.New("settings: decode %s: %v", path, err)
	}
	return s, nil
}

// Save writes settings to the TOML file at the given path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return xerror.New("settings: encode: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return xerror.New("settings: write %s: %v", path, err)
	}
	return nil
}
