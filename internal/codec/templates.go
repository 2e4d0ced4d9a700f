package codec

import "gecko-animutils/internal/tmpl"

// Template slots.
const (
	slotFile     = "file"
	slotField    = "field"
	slotBone     = "bone"
	slotRenderer = "renderer"
	slotCube     = "cube"

	// flagFlipY negates Y and moves root bones onto the ground plane.
	flagFlipY = "flip_y"
	// flagIntegerSize emits box sizes as integer literals.
	flagIntegerSize = "integer_size"
	// flagRootRenderersOnly registers only root bones as renderers.
	flagRootRenderersOnly = "root_renderers_only"
)

const java115File = `// Made with Blockbench %(bb_version)
			// Exported for Minecraft version 1.12.2 or 1.15.2 (same format for both) for entity models animated with GeckoLib
			// Paste this class into your mod and follow the documentation for GeckoLib to use animations. You can find the documentation here: https://github.com/bernie-g/geckolib
			// Blockbench plugin created by Gecko
			package %(javaPackage);

			%(imports)

			public class %(identifier) extends AnimatedEntityModel<%(entityType)> {

				%(fields)

				public %(identifier)()
				{
					textureWidth = %(texture_width);
					textureHeight = %(texture_height);
					%(content)

					%(renderers)
				}


				@Override
				public ResourceLocation getAnimationFileLocation()
				{
					return new ResourceLocation("%(animFileNamespace)", "%(animFilePath)");
				}
			}`

const java115Bone = `%(bone) = new AnimatedModelRenderer(this);
			%(bone).setRotationPoint(%(x), %(y), %(z));
			?(has_parent)%(parent).addChild(%(bone));
			?(has_rotation)setRotationAngle(%(bone), %(rx), %(ry), %(rz));
			?(has_cubes)%(cubes)
			%(bone).setModelRendererName("%(bone)");
			this.registerModelRenderer(%(bone));`

// Templates holds the Java class templates by modded entity version.
var Templates = tmpl.NewRegistry(
	tmpl.MustSet("1.15", map[string]any{
		flagFlipY:             true,
		flagIntegerSize:       false,
		flagRootRenderersOnly: false,
		slotFile:              java115File,
		slotField:             `private final AnimatedModelRenderer %(bone);`,
		slotBone:              java115Bone,
		slotRenderer:          `this.rootBones.add(%(bone));`,
		slotCube:              `%(bone).setTextureOffset(%(uv_x), %(uv_y)).addBox(%(x), %(y), %(z), %(dx), %(dy), %(dz), %(inflate), %(mirror));`,
	}),
)
