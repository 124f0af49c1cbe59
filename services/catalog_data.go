package services

// dpwhVolumeIII is the embedded pay item reference dataset (DPWH Volume III,
// Buildings and Other Related Structures). Item numbers keep the published
// "series (subitem) suffix" notation.
var dpwhVolumeIII = []CatalogItem{
	// Part A — Facilities for the Engineer
	{ItemNumber: "A.1.1(8)", Description: "Provision of Field Office for the Engineer", Unit: "month", Category: "general"},
	{ItemNumber: "A.1.2(2)", Description: "Provision of 4x4 Pickup Type Service Vehicle for the Engineer", Unit: "month", Category: "general"},
	{ItemNumber: "B.5", Description: "Project Billboard / Signboard", Unit: "each", Category: "general"},
	{ItemNumber: "B.7(2)", Description: "Occupational Safety and Health Program", Unit: "l.s.", Category: "general"},

	// Part C — Earthwork
	{ItemNumber: "800(2)", Description: "Clearing and Grubbing", Unit: "m2", Category: "earthwork"},
	{ItemNumber: "803(1)a", Description: "Structure Excavation (Common Soil)", Unit: "m3", Category: "earthwork"},
	{ItemNumber: "804(1)a", Description: "Embankment from Structure Excavation", Unit: "m3", Category: "earthwork"},
	{ItemNumber: "804(4)", Description: "Gravel Fill", Unit: "m3", Category: "earthwork"},
	{ItemNumber: "804(7)", Description: "Gravel Bedding", Unit: "m3", Category: "earthwork"},

	// Part D — Reinforced Concrete Works
	{ItemNumber: "900(1)c2", Description: "Structural Concrete, Class A, 28 Days (3000 psi)", Unit: "m3", Category: "concrete"},
	{ItemNumber: "900(1)c4", Description: "Structural Concrete, Class A, 28 Days (4000 psi)", Unit: "m3", Category: "concrete"},
	{ItemNumber: "902(1)a", Description: "Reinforcing Steel, Deformed, Grade 40", Unit: "kg", Category: "steelworks"},
	{ItemNumber: "902(1)b", Description: "Reinforcing Steel, Deformed, Grade 60", Unit: "kg", Category: "steelworks"},
	{ItemNumber: "903(2)", Description: "Formworks and Falseworks", Unit: "m2", Category: "carpentry"},

	// Part E — Finishing and Other Civil Works
	{ItemNumber: "1003(1)a1", Description: "Ceiling, 4.5mm Fiber Cement Board on Metal Frame", Unit: "m2", Category: "carpentry"},
	{ItemNumber: "1005(1)", Description: "Residential Casement Window, Steel", Unit: "m2", Category: "doors_windows"},
	{ItemNumber: "1010(2)b", Description: "Wooden Panel Door", Unit: "m2", Category: "doors_windows"},
	{ItemNumber: "1013(2)a1", Description: "Fabricated Metal Roofing Accessory, Ridge/Hip Rolls", Unit: "m", Category: "roofing"},
	{ItemNumber: "1014(1)b2", Description: "Prepainted Metal Sheets, Rib Type, 0.427mm", Unit: "m2", Category: "roofing"},
	{ItemNumber: "1018(1)", Description: "Glazed Tiles and Trims", Unit: "m2", Category: "tiling"},
	{ItemNumber: "1018(2)", Description: "Unglazed Tiles", Unit: "m2", Category: "tiling"},
	{ItemNumber: "1027(1)", Description: "Cement Plaster Finish", Unit: "m2", Category: "masonry"},
	{ItemNumber: "1032(1)a", Description: "Painting Works, Masonry/Concrete", Unit: "m2", Category: "painting"},
	{ItemNumber: "1032(1)c", Description: "Painting Works, Metal", Unit: "m2", Category: "painting"},
	{ItemNumber: "1046(2)a1", Description: "CHB Non Load Bearing (Including Reinforcing Steel), 100mm", Unit: "m2", Category: "masonry"},
	{ItemNumber: "1047(2)b", Description: "Structural Steel, Trusses", Unit: "kg", Category: "steelworks"},
	{ItemNumber: "1051(6)", Description: "Railing, Stainless Steel", Unit: "m", Category: "steelworks"},

	// Part E — Plumbing (sanitary series)
	{ItemNumber: "1001(8)", Description: "Storm Drainage and Downspout", Unit: "l.s.", Category: "plumbing"},
	{ItemNumber: "1001(11)", Description: "Septic Vault, CHB Lined", Unit: "each", Category: "plumbing"},
	{ItemNumber: "1002(4)", Description: "Plumbing Fixtures and Fittings", Unit: "set", Category: "plumbing"},
	{ItemNumber: "1002(24)", Description: "Cold Water Lines, PPR Pipes and Fittings", Unit: "l.s.", Category: "plumbing"},

	// Part F — Electrical Works
	{ItemNumber: "1100(10)", Description: "Conduits, Boxes and Fittings", Unit: "l.s.", Category: "electrical"},
	{ItemNumber: "1101(33)", Description: "Wires and Wiring Devices", Unit: "l.s.", Category: "electrical"},
	{ItemNumber: "1102(1)", Description: "Panelboard with Main Breaker and Branches", Unit: "set", Category: "electrical"},
	{ItemNumber: "1103(1)", Description: "Lighting Fixtures and Lamps", Unit: "set", Category: "electrical"},

	// Part G — Mechanical Works
	{ItemNumber: "1200(1)", Description: "Ventilating Equipment, Wall Mounted Exhaust Fan", Unit: "unit", Category: "mechanical"},
	{ItemNumber: "1202(6)a1", Description: "Air Conditioning Unit, Window Type, Inverter", Unit: "unit", Category: "mechanical"},
}
