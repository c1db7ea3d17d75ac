package compat

// ConstSpec describes one built-in, read-only integer constant and the
// compatibility window in which it is defined.
type ConstSpec struct {
	Name     string
	Value    int32
	MinLevel Level
	MaxLevel Level
}

// constantTable is the static data backing the read-only built-in mapping
// in the symbol table. As with commandTable, it is representative rather
// than exhaustive.
var constantTable = []ConstSpec{
	{Name: "GRASS", Value: 0, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "WATER", Value: 1, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "DEEP_WATER", Value: 2, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "FOREST", Value: 10, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "DIRT", Value: 3, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "DESERT", Value: 4, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "BEACH", Value: 2, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "LAND_POSITION_CENTER", Value: 0, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "LAND_POSITION_EDGE", Value: 1, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "LAND_POSITION_MAP_CENTER", Value: 2, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "START_AREA_CIRCLE", Value: 0, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "START_AREA_SQUARE", Value: 1, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "ZONE_RADIAL", Value: 0, MinLevel: UserPatch14, MaxLevel: NoMax},
	{Name: "ZONE_GRID", Value: 1, MinLevel: UserPatch14, MaxLevel: NoMax},
	{Name: "ELEVATION_WATER_LEVEL", Value: 0, MinLevel: Conquerors, MaxLevel: NoMax},
	{Name: "CUSTOM_TERRAIN_MUD", Value: 50, MinLevel: HDEdition, MaxLevel: NoMax},
	{Name: "RESOURCE_WOOD", Value: 0, MinLevel: DefinitiveEdition, MaxLevel: NoMax},
	{Name: "RESOURCE_FOOD", Value: 1, MinLevel: DefinitiveEdition, MaxLevel: NoMax},
}

// BuiltinConstants returns the built-in name-to-value mapping in effect at
// level l. The returned map is freshly allocated and safe to mutate.
func BuiltinConstants(l Level) map[string]int32 {
	out := make(map[string]int32, len(constantTable))
	for _, c := range constantTable {
		if Supports(l, c.MinLevel, c.MaxLevel) {
			out[c.Name] = c.Value
		}
	}
	return out
}
