// Package settings holds the export settings of an animated entity project.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Supported modding SDKs.
const (
	SDKForge  = "Forge 1.12 - 1.16"
	SDKFabric = "Fabric 1.15 - 1.16"
)

// SDKs lists the supported modding SDKs in display order.
var SDKs = []string{SDKForge, SDKFabric}

// ErrUnknownSDK is returned when the imports header is requested for an unsupported SDK.
var ErrUnknownSDK = errors.New("unrecognized mod SDK")

// ExportSettings describes the code generation target of a project.
type ExportSettings struct {
	ModSDK            string `json:"modSDK" yaml:"modSDK"`
	EntityType        string `json:"entityType" yaml:"entityType"`
	JavaPackage       string `json:"javaPackage" yaml:"javaPackage"`
	AnimFileNamespace string `json:"animFileNamespace" yaml:"animFileNamespace"`
	AnimFilePath      string `json:"animFilePath" yaml:"animFilePath"`
}

// Default returns the settings of a new project.
func Default() ExportSettings {
	return ExportSettings{
		ModSDK:            SDKForge,
		EntityType:        "Entity",
		JavaPackage:       "com.example.mod",
		AnimFileNamespace: "MODID",
		AnimFilePath:      "animations/ANIMATIONFILE.json",
	}
}

// Imports returns the Java import block for the configured SDK.
func (s ExportSettings) Imports() (string, error) {
	switch s.ModSDK {
	case SDKForge:
		return "import net.minecraft.util.ResourceLocation;\n" +
			"import software.bernie.geckolib.animation.model.AnimatedEntityModel;\n" +
			"import software.bernie.geckolib.animation.render.AnimatedModelRenderer;", nil
	case SDKFabric:
		return "import software.bernie.geckolib.forgetofabric.ResourceLocation;\n" +
			"import software.bernie.geckolib.animation.model.AnimatedEntityModel;\n" +
			"import software.bernie.geckolib.animation.model.AnimatedModelRenderer;", nil
	}
	return "", fmt.Errorf("settings: imports for %q: %w", s.ModSDK, ErrUnknownSDK)
}

// Load restores settings persisted with a project.
// Absent or malformed data yields the defaults. Keys missing from a valid object keep their defaults.
func Load(raw json.RawMessage) ExportSettings {
	s := Default()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return s
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default()
	}
	return s
}

// Attach returns the settings in their persisted form.
func (s ExportSettings) Attach() (json.RawMessage, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("settings: attach: %w", err)
	}
	return b, nil
}

// Apply merges submitted form values into s. Unknown keys are ignored.
func (s *ExportSettings) Apply(form map[string]string) {
	for k, v := range form {
		switch k {
		case "modSDK":
			s.ModSDK = v
		case "entityType":
			s.EntityType = v
		case "javaPackage":
			s.JavaPackage = v
		case "animFileNamespace":
			s.AnimFileNamespace = v
		case "animFilePath":
			s.AnimFilePath = v
		}
	}
}
