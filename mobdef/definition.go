package mobdef

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"voidwake/mobs/tomlval"
)

// MobDefinition is the canonical, fully-defaulted form of one mob.
// Authored documents are a closed schema: any key that does not land
// in one of these fields fails the entity. Name and Sprite are
// required; everything else falls back to the defaults below.
type MobDefinition struct {
	Name                     string                       `toml:"name" json:"name" jsonschema:"required"`
	Sprite                   string                       `toml:"sprite" json:"sprite" jsonschema:"required"`
	Spawnable                bool                         `toml:"spawnable" json:"spawnable"`
	Health                   int64                        `toml:"health" json:"health" jsonschema:"minimum=1"`
	ZLevel                   float64                      `toml:"z_level" json:"z_level"`
	RotationLocked           bool                         `toml:"rotation_locked" json:"rotation_locked"`
	MaxLinearSpeed           [2]float64                   `toml:"max_linear_speed" json:"max_linear_speed"`
	LinearAcceleration       [2]float64                   `toml:"linear_acceleration" json:"linear_acceleration"`
	LinearDeceleration       [2]float64                   `toml:"linear_deceleration" json:"linear_deceleration"`
	AngularAcceleration      float64                      `toml:"angular_acceleration" json:"angular_acceleration"`
	AngularDeceleration      float64                      `toml:"angular_deceleration" json:"angular_deceleration"`
	MaxAngularSpeed          float64                      `toml:"max_angular_speed" json:"max_angular_speed"`
	Restitution              float64                      `toml:"restitution" json:"restitution" jsonschema:"minimum=0,maximum=1"`
	Friction                 float64                      `toml:"friction" json:"friction" jsonschema:"minimum=0,maximum=10"`
	ColliderDensity          float64                      `toml:"collider_density" json:"collider_density"`
	ProjectileSpeed          float64                      `toml:"projectile_speed" json:"projectile_speed"`
	ProjectileDamage         int64                        `toml:"projectile_damage" json:"projectile_damage"`
	ProjectileRangeSeconds   float64                      `toml:"projectile_range_seconds" json:"projectile_range_seconds"`
	TargetingRange           *float64                     `toml:"targeting_range" json:"targeting_range,omitempty"`
	Colliders                []Collider                   `toml:"colliders" json:"colliders"`
	CollisionLayerMembership []string                     `toml:"collision_layer_membership" json:"collision_layer_membership"`
	CollisionLayerFilter     []string                     `toml:"collision_layer_filter" json:"collision_layer_filter"`
	Decorations              []Decoration                 `toml:"decorations" json:"decorations,omitempty"`
	MobSpawners              map[string]MobSpawner        `toml:"mob_spawners" json:"mob_spawners,omitempty"`
	ProjectileSpawners       map[string]ProjectileSpawner `toml:"projectile_spawners" json:"projectile_spawners,omitempty"`
	JointedMobs              []JointedMob                 `toml:"jointed_mobs" json:"jointed_mobs,omitempty"`
	BehaviorTransmitter      bool                         `toml:"behavior_transmitter" json:"behavior_transmitter"`

	// Behavior carries the raw declarative tree; it stays generic so
	// the editor and the compiler both work off the authored value.
	Behavior *tomlval.Value `toml:"-" json:"-"`
}

type Collider struct {
	Shape    string     `toml:"shape" json:"shape" jsonschema:"required,enum=Rectangle,enum=Circle,enum=Capsule"`
	Width    float64    `toml:"width" json:"width,omitempty"`
	Height   float64    `toml:"height" json:"height,omitempty"`
	Radius   float64    `toml:"radius" json:"radius,omitempty"`
	Length   float64    `toml:"length" json:"length,omitempty"`
	Position [2]float64 `toml:"position" json:"position,omitempty"`
	Rotation float64    `toml:"rotation" json:"rotation,omitempty"`
}

// Decoration is authored as a two-element tuple: sprite name, offset.
type Decoration struct {
	Sprite string
	Offset [2]float64
}

func (d *Decoration) UnmarshalTOML(raw any) error {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return fmt.Errorf("decoration must be [sprite, [x, y]]")
	}
	sprite, ok := pair[0].(string)
	if !ok {
		return fmt.Errorf("decoration sprite must be a string")
	}
	offset, ok := pair[1].([]any)
	if !ok || len(offset) != 2 {
		return fmt.Errorf("decoration offset must be [x, y]")
	}
	d.Sprite = sprite
	for i, elem := range offset {
		n, ok := asFloat(elem)
		if !ok {
			return fmt.Errorf("decoration offset component %d is not numeric", i)
		}
		d.Offset[i] = n
	}
	return nil
}

func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

type MobSpawner struct {
	Timer    float64    `toml:"timer" json:"timer" jsonschema:"required"`
	MobRef   string     `toml:"mob_ref" json:"mob_ref" jsonschema:"required"`
	Position [2]float64 `toml:"position" json:"position,omitempty"`
}

type ProjectileSpawner struct {
	Timer          float64    `toml:"timer" json:"timer" jsonschema:"required"`
	ProjectileType string     `toml:"projectile_type" json:"projectile_type" jsonschema:"required"`
	Faction        string     `toml:"faction" json:"faction" jsonschema:"required"`
	Position       [2]float64 `toml:"position" json:"position,omitempty"`
}

type JointedMob struct {
	Key             string           `toml:"key" json:"key"`
	MobRef          string           `toml:"mob_ref" json:"mob_ref"`
	OffsetPos       [2]float64       `toml:"offset_pos" json:"offset_pos"`
	Anchor1Pos      [2]float64       `toml:"anchor_1_pos" json:"anchor_1_pos"`
	Anchor2Pos      [2]float64       `toml:"anchor_2_pos" json:"anchor_2_pos"`
	AngleLimitRange *AngleLimitRange `toml:"angle_limit_range" json:"angle_limit_range,omitempty"`
	Compliance      *float64         `toml:"compliance" json:"compliance,omitempty"`
	Chain           *Chain           `toml:"chain" json:"chain,omitempty"`
}

type AngleLimitRange struct {
	Min    float64 `toml:"min" json:"min"`
	Max    float64 `toml:"max" json:"max"`
	Torque float64 `toml:"torque" json:"torque"`
}

type Chain struct {
	Length       int64        `toml:"length" json:"length"`
	PosOffset    [2]float64   `toml:"pos_offset" json:"pos_offset"`
	AnchorOffset [2]float64   `toml:"anchor_offset" json:"anchor_offset"`
	RandomChain  *RandomChain `toml:"random_chain" json:"random_chain,omitempty"`
}

type RandomChain struct {
	MinLength int64   `toml:"min_length" json:"min_length"`
	EndChance float64 `toml:"end_chance" json:"end_chance"`
}

// DefaultDefinition returns a definition pre-filled with every
// documented default. Decoding an authored document over it leaves
// unmentioned fields at these values.
func DefaultDefinition() MobDefinition {
	return MobDefinition{
		Spawnable:              true,
		Health:                 50,
		ZLevel:                 0,
		RotationLocked:         true,
		MaxLinearSpeed:         [2]float64{20, 20},
		LinearAcceleration:     [2]float64{0.1, 0.1},
		LinearDeceleration:     [2]float64{0.3, 0.3},
		AngularAcceleration:    0.1,
		AngularDeceleration:    0.1,
		MaxAngularSpeed:        1.0,
		Restitution:            0.5,
		Friction:               0.5,
		ColliderDensity:        1.0,
		ProjectileSpeed:        100,
		ProjectileDamage:       5,
		ProjectileRangeSeconds: 1.0,
		Colliders: []Collider{
			{Shape: "Rectangle", Width: 10, Height: 10},
		},
		CollisionLayerMembership: []string{"EnemyMob"},
		CollisionLayerFilter: []string{
			"AllyMob", "AllyProjectile", "EnemyMob", "Player", "EnemyTentacle",
		},
	}
}

// clone deep-copies the definition so registry snapshots cannot be
// mutated through shared slices or pointers.
func (d MobDefinition) clone() MobDefinition {
	cloned := d
	if d.TargetingRange != nil {
		v := *d.TargetingRange
		cloned.TargetingRange = &v
	}
	cloned.Colliders = append([]Collider(nil), d.Colliders...)
	cloned.CollisionLayerMembership = append([]string(nil), d.CollisionLayerMembership...)
	cloned.CollisionLayerFilter = append([]string(nil), d.CollisionLayerFilter...)
	cloned.Decorations = append([]Decoration(nil), d.Decorations...)
	if d.MobSpawners != nil {
		cloned.MobSpawners = make(map[string]MobSpawner, len(d.MobSpawners))
		for k, v := range d.MobSpawners {
			cloned.MobSpawners[k] = v
		}
	}
	if d.ProjectileSpawners != nil {
		cloned.ProjectileSpawners = make(map[string]ProjectileSpawner, len(d.ProjectileSpawners))
		for k, v := range d.ProjectileSpawners {
			cloned.ProjectileSpawners[k] = v
		}
	}
	if d.JointedMobs != nil {
		cloned.JointedMobs = make([]JointedMob, len(d.JointedMobs))
		for i, jm := range d.JointedMobs {
			cloned.JointedMobs[i] = jm.clone()
		}
	}
	if d.Behavior != nil {
		bh := d.Behavior.Clone()
		cloned.Behavior = &bh
	}
	return cloned
}

func (j JointedMob) clone() JointedMob {
	cloned := j
	if j.AngleLimitRange != nil {
		v := *j.AngleLimitRange
		cloned.AngleLimitRange = &v
	}
	if j.Compliance != nil {
		v := *j.Compliance
		cloned.Compliance = &v
	}
	if j.Chain != nil {
		chain := *j.Chain
		if j.Chain.RandomChain != nil {
			rc := *j.Chain.RandomChain
			chain.RandomChain = &rc
		}
		cloned.Chain = &chain
	}
	return cloned
}

// DecodeDefinition deserializes a merged document into a typed
// definition. The behavior subtree is detached first and carried raw.
func DecodeDefinition(name string, doc tomlval.Value) (MobDefinition, error) {
	working := doc.Clone()
	tab, ok := (&working).Table()
	if !ok {
		return MobDefinition{}, fmt.Errorf("mobdef: %s: document is %s, want table", name, doc.Kind())
	}

	var rawBehavior *tomlval.Value
	if bh, found := tab.Get("behavior"); found {
		detached := bh.Clone()
		rawBehavior = &detached
		tab.Delete("behavior")
	}

	data, err := tomlval.Encode(working)
	if err != nil {
		return MobDefinition{}, fmt.Errorf("mobdef: %s: %w", name, err)
	}

	def := DefaultDefinition()
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return MobDefinition{}, fmt.Errorf("mobdef: %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return MobDefinition{}, fmt.Errorf("mobdef: %s: unknown fields: %s", name, strings.Join(keys, ", "))
	}

	if def.Name == "" {
		return MobDefinition{}, fmt.Errorf("mobdef: %s: missing required field name", name)
	}
	if def.Sprite == "" {
		return MobDefinition{}, fmt.Errorf("mobdef: %s: missing required field sprite", name)
	}

	def.Behavior = rawBehavior
	return def, nil
}
