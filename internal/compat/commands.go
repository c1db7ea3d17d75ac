package compat

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// FoldName case-folds a command/attribute name for lookup. RMS source from
// different mod tools and editions spells command names inconsistently
// (CREATE_LAND, Create_Land, create_land all appear in the wild).
func FoldName(name string) string {
	return foldCaser.String(name)
}

// ArgKind is the structural shape an argument atom must have: a bare word
// (a terrain/object/constant name) or an integer literal. ArgAny means no
// confident per-position data exists yet, and the arg-type lint skips the
// position rather than guess.
type ArgKind uint8

const (
	ArgAny ArgKind = iota
	ArgWord
	ArgNumber
)

// CommandSpec describes one legal command name: its argument arity and the
// compatibility window in which it exists. MaxArgs of -1 means unbounded.
// MaxLevel of NoMax means the command was never removed.
type CommandSpec struct {
	Name       string
	MinArgs    int
	MaxArgs    int
	MinLevel   Level
	MaxLevel   Level
	AllowBlock bool
	// Attributes, when non-nil, is the closed set of attribute names legal
	// inside this command's block. A nil slice with AllowBlock true means
	// any attribute name is accepted (no block-local vocabulary is known).
	Attributes []string
	// ArgKinds gives the expected shape of each positional argument, by
	// index. A nil slice (most entries) means the arg-type lint has
	// nothing to check this command against.
	ArgKinds []ArgKind
}

// commandTable is the static, compile-time data backing unknown-command,
// arg-count, and unknown-attribute. It is intentionally incomplete — the
// real host game ships hundreds of commands — but is shaped so that adding
// one is a single literal entry, per DESIGN NOTES §9.
var commandTable = []CommandSpec{
	{Name: "create_land", MinArgs: 0, MaxArgs: 0, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"terrain_type", "base_size", "land_percent", "number_of_tiles", "number_of_players",
			"left_border", "right_border", "top_border", "bottom_border", "border_fuzziness", "zone", "set_zone_by_team",
			"set_zone_randomly", "other_zone_avoidance_distance", "base_elevation", "land_position", "clumping_factor",
			"assign_to_player", "start_area_alignment", "assign_to", "daylight"}},
	{Name: "create_terrain", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"base_size", "number_of_tiles", "number_of_clumps", "set_scale_by_groups",
			"set_scale_by_size", "percent_of_land", "land_percent", "clumping_factor", "terrain_id", "base_terrain",
			"avoid_player_start_areas"}},
	{Name: "create_object", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"number_of_objects", "number_of_groups", "group_placement_radius", "terrain_to_place_on",
			"set_place_for_every_player", "min_distance_to_players", "max_distance_to_players", "min_distance_group_placement",
			"max_distance_group_placement", "place_on_specific_land_id", "temp_min_distance_group_placement",
			"temp_max_distance_group_placement", "assign_to_player"}},
	{Name: "create_player_lands", MinArgs: 0, MaxArgs: 0, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"terrain_type", "base_size", "land_percent", "number_of_tiles", "start_area_alignment",
			"other_zone_avoidance_distance", "base_elevation", "land_position", "clumping_factor"}},
	{Name: "create_elevation", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"number_of_tiles", "number_of_clumps", "base_terrain"}, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "create_connected_terrain", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"base_terrain", "number_of_clumps", "replace_terrain"}, ArgKinds: []ArgKind{ArgWord}},
	{Name: "create_distinct_terrain", MinArgs: 1, MaxArgs: 1, MinLevel: UserPatch14, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"base_terrain", "number_of_clumps", "radius", "land_percent"}, ArgKinds: []ArgKind{ArgWord}},
	{Name: "base_terrain", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgWord}},
	{Name: "land_percent", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "number_of_tiles", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "number_of_objects", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "effect_percent", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "terrain_state", MinArgs: 1, MaxArgs: 1, MinLevel: Conquerors, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgWord}},
	{Name: "guard_state", MinArgs: 1, MaxArgs: 1, MinLevel: UserPatch15, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "trigger_object_state", MinArgs: 1, MaxArgs: 1, MinLevel: WololoKingdoms, MaxLevel: NoMax, AllowBlock: false, ArgKinds: []ArgKind{ArgNumber}},
	{Name: "create_custom_terrain", MinArgs: 1, MaxArgs: 1, MinLevel: HDEdition, MaxLevel: NoMax, AllowBlock: true,
		Attributes: []string{"base_terrain", "number_of_tiles"}, ArgKinds: []ArgKind{ArgWord}},
	{Name: "enable_waves", MinArgs: 0, MaxArgs: 0, MinLevel: DefinitiveEdition, MaxLevel: NoMax, AllowBlock: false},
	{Name: "resource_delta", MinArgs: 2, MaxArgs: 2, MinLevel: DefinitiveEdition, MaxLevel: NoMax, AllowBlock: false,
		ArgKinds: []ArgKind{ArgWord, ArgNumber}},
}

var commandIndex = buildCommandIndex()

func buildCommandIndex() map[string]CommandSpec {
	idx := make(map[string]CommandSpec, len(commandTable))
	for _, c := range commandTable {
		idx[FoldName(c.Name)] = c
	}
	return idx
}

// LookupCommand returns the spec for name and whether it is known at all,
// regardless of compatibility level. Matching is case-insensitive: RMS
// source from different mod tools spells commands inconsistently.
func LookupCommand(name string) (CommandSpec, bool) {
	c, ok := commandIndex[FoldName(name)]
	return c, ok
}

// AvailableAt reports whether spec c is part of the active vocabulary at
// level l.
func (c CommandSpec) AvailableAt(l Level) bool {
	return Supports(l, c.MinLevel, c.MaxLevel)
}

// zeroArgAttributes are the handful of attribute names that are bare
// toggles rather than name-value pairs. Every other attribute name is
// treated as taking exactly one argument; there is no per-attribute arity
// table beyond this set.
var zeroArgAttributes = map[string]bool{
	"avoid_player_start_areas":   true,
	"set_zone_randomly":          true,
	"set_place_for_every_player": true,
	"set_scale_by_groups":        true,
	"set_scale_by_size":          true,
}

// AttributeArity returns how many argument atoms the named attribute
// structurally consumes: 0 for a known toggle, 1 otherwise. The parser
// uses this to delimit one attribute statement from the next inside a
// command block.
func AttributeArity(name string) int {
	if zeroArgAttributes[name] {
		return 0
	}
	return 1
}
