package codec_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecko-animutils/internal/codec"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/settings"
	"gecko-animutils/internal/tmpl"
)

func TestF(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3, "3.0F"},
		{-3, "-3.0F"},
		{0, "0.0F"},
		{100, "100.0F"},
		{0.5, "0.5F"},
		{-0.00001, "-0.00001F"},
		{math.Copysign(0, -1), "0.0F"},
		{1.23456, "1.23456F"},
		{-0.7853981633974483, "-0.7853982F"},
		{0.1, "0.1F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, codec.F(tc.in), "%g", tc.in)
	}
}

func TestI(t *testing.T) {
	assert.Equal(t, "2", codec.I(2.9))
	assert.Equal(t, "-2", codec.I(-2.9))
	assert.Equal(t, "16", codec.I(16))
}

func TestIdentifier(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"gecko", "gecko"},
		{"my entity-model", "my_entity_model"},
		{"big  -- beast", "big_beast"},
		{"", "animated_entity_model"},
	}
	for _, tc := range cases {
		p := model.New(tc.name)
		assert.Equal(t, tc.want, codec.Identifier(p))
	}
	assert.Equal(t, "gecko.java", codec.FileName(model.New("gecko")))
}

func geckoModel() *model.Project {
	p := model.New("gecko")
	body := model.NewBone("body", mathutil.Vec3{0, 12, 0})
	p.AddRoot(body)
	c := model.NewCube("torso", mathutil.Vec3{-4, 12, -2}, mathutil.Vec3{4, 24, 2})
	c.UVOffset = [2]float64{0, 16}
	body.AddCube(c)

	head := model.NewBone("head", mathutil.Vec3{0, 24, 0})
	head.Rotation = mathutil.Vec3{45, 0, 0}
	body.AddBone(head)
	c = model.NewCube("skull", mathutil.Vec3{-4, 24, -4}, mathutil.Vec3{4, 32, 4})
	c.Inflate = 0.5
	head.AddCube(c)
	return p
}

func TestCompile(t *testing.T) {
	t.Run("should render bones in traversal order", func(t *testing.T) {
		got, err := codec.Compile(geckoModel(), settings.Default(), codec.Options{})
		require.NoError(t, err)
		want := strings.Join([]string{
			"\t\ttextureHeight = 32;",
			"\t\tbody = new AnimatedModelRenderer(this);",
			"\t\tbody.setRotationPoint(0.0F, 12.0F, 0.0F);",
			"\t\tbody.setTextureOffset(0, 16).addBox(-4.0F, -12.0F, -2.0F, 8.0F, 12.0F, 4.0F, 0.0F, false);",
			"\t\tbody.setModelRendererName(\"body\");",
			"\t\tthis.registerModelRenderer(body);",
			"",
			"\t\thead = new AnimatedModelRenderer(this);",
			"\t\thead.setRotationPoint(0.0F, -12.0F, 0.0F);",
			"\t\tbody.addChild(head);",
			"\t\tsetRotationAngle(head, -0.7853982F, 0.0F, 0.0F);",
			"\t\thead.setTextureOffset(0, 0).addBox(-4.0F, -8.0F, -4.0F, 8.0F, 8.0F, 8.0F, 0.5F, false);",
			"\t\thead.setModelRendererName(\"head\");",
			"\t\tthis.registerModelRenderer(head);",
			"",
			"\t\tthis.rootBones.add(body);",
			"\t\tthis.rootBones.add(head);",
			"\t}",
		}, "\n")
		assert.Contains(t, got, want)
		assert.Contains(t, got, "\tprivate final AnimatedModelRenderer body;\n\tprivate final AnimatedModelRenderer head;\n")
		assert.Contains(t, got, "// Made with Blockbench 3.6.6\n")
		assert.Contains(t, got, "package com.example.mod;\n")
		assert.Contains(t, got, "public class gecko extends AnimatedEntityModel<Entity> {")
		assert.Contains(t, got, `return new ResourceLocation("MODID", "animations/ANIMATIONFILE.json");`)
		assert.NotContains(t, got, "%(")
		assert.NotContains(t, got, "?(")
	})
	t.Run("should put loose cubes into a main bone", func(t *testing.T) {
		p := model.New("rock")
		p.AddLooseCube(model.NewCube("rock", mathutil.Vec3{-1, 0, -1}, mathutil.Vec3{1, 2, 1}))
		got, err := codec.Compile(p, settings.Default(), codec.Options{EditorVersion: "4.0"})
		require.NoError(t, err)
		assert.Contains(t, got, "bb_main.setRotationPoint(0.0F, 24.0F, 0.0F);")
		assert.Contains(t, got, "bb_main.setTextureOffset(0, 0).addBox(-1.0F, -2.0F, -1.0F, 2.0F, 2.0F, 2.0F, 0.0F, false);")
		assert.Contains(t, got, "// Made with Blockbench 4.0\n")
	})
	t.Run("should skip bones and cubes that are not exported", func(t *testing.T) {
		p := geckoModel()
		head, _ := p.Bone("head")
		head.Export = false
		body, _ := p.Bone("body")
		body.Cubes[0].Export = false
		got, err := codec.Compile(p, settings.Default(), codec.Options{})
		require.NoError(t, err)
		assert.NotContains(t, got, "head")
		assert.NotContains(t, got, "addBox")
	})
	t.Run("should fail for unknown sdk", func(t *testing.T) {
		s := settings.Default()
		s.ModSDK = "Rift"
		_, err := codec.Compile(geckoModel(), s, codec.Options{})
		assert.ErrorIs(t, err, settings.ErrUnknownSDK)
	})
	t.Run("should fail for unknown template version", func(t *testing.T) {
		p := geckoModel()
		p.ModdedEntityVersion = "1.12"
		_, err := codec.Compile(p, settings.Default(), codec.Options{})
		assert.ErrorIs(t, err, tmpl.ErrUnknownVersion)
	})
	t.Run("should use fabric imports", func(t *testing.T) {
		s := settings.Default()
		s.ModSDK = settings.SDKFabric
		s.EntityType = "PigEntity"
		got, err := codec.Compile(geckoModel(), s, codec.Options{})
		require.NoError(t, err)
		assert.Contains(t, got, "import software.bernie.geckolib.forgetofabric.ResourceLocation;")
		assert.Contains(t, got, "extends AnimatedEntityModel<PigEntity>")
	})
}

// useLegacyTemplates swaps in a set that keeps editor Y, emits integer box sizes
// and registers only root bones.
func useLegacyTemplates(t *testing.T) {
	t.Helper()
	old := codec.Templates
	codec.Templates = tmpl.NewRegistry(tmpl.MustSet("1.12", map[string]any{
		"flip_y":              false,
		"integer_size":        true,
		"root_renderers_only": true,
		"file":                "%(fields)\n%(content)\n%(renderers)",
		"field":               "ModelRenderer %(bone);",
		"bone":                "%(bone).setRotationPoint(%(x), %(y), %(z));\n?(has_cubes)%(cubes)",
		"renderer":            "render(%(bone));",
		"cube":                "%(bone).addBox(%(x), %(y), %(z), %(dx), %(dy), %(dz), %(inflate), %(mirror));",
	}))
	t.Cleanup(func() { codec.Templates = old })
}

func TestCompileLegacyFlags(t *testing.T) {
	t.Run("should keep editor Y without the ground offset", func(t *testing.T) {
		useLegacyTemplates(t)
		got, err := codec.Compile(geckoModel(), settings.Default(), codec.Options{})
		require.NoError(t, err)
		assert.Contains(t, got, "body.setRotationPoint(0.0F, 12.0F, 0.0F);")
		assert.Contains(t, got, "head.setRotationPoint(0.0F, 12.0F, 0.0F);")
		assert.Contains(t, got, "body.addBox(-4.0F, 0.0F, -2.0F, 8, 12, 4, 0.0F, false);")
		assert.Contains(t, got, "head.addBox(-4.0F, 0.0F, -4.0F, 8, 8, 8, 0.5F, false);")
	})
	t.Run("should register only root bones", func(t *testing.T) {
		useLegacyTemplates(t)
		got, err := codec.Compile(geckoModel(), settings.Default(), codec.Options{})
		require.NoError(t, err)
		assert.Contains(t, got, "render(body);")
		assert.NotContains(t, got, "render(head);")
		assert.Contains(t, got, "ModelRenderer head;")
	})
	t.Run("should truncate fractional sizes", func(t *testing.T) {
		useLegacyTemplates(t)
		p := model.New("rock")
		p.AddLooseCube(model.NewCube("rock", mathutil.Vec3{-1, 0, -1}, mathutil.Vec3{1.5, 2.75, 1}))
		got, err := codec.Compile(p, settings.Default(), codec.Options{})
		require.NoError(t, err)
		assert.Contains(t, got, "bb_main.setRotationPoint(0.0F, 0.0F, 0.0F);")
		assert.Contains(t, got, "bb_main.addBox(-1.5F, 0.0F, -1.0F, 2, 2, 2, 0.0F, false);")
		assert.Contains(t, got, "render(bb_main);")
	})
}
