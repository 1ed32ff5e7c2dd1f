package validation

// TopicCategories is the ISO 19115 MD_TopicCategoryCode list.
var TopicCategories = map[string]bool{
	"farming":                          true,
	"biota":                            true,
	"boundaries":                       true,
	"climatologyMeteorologyAtmosphere": true,
	"economy":                          true,
	"elevation":                        true,
	"environment":                      true,
	"geoscientificInformation":         true,
	"health":                           true,
	"imageryBaseMapsEarthCover":        true,
	"intelligenceMilitary":             true,
	"inlandWaters":                     true,
	"location":                         true,
	"oceans":                           true,
	"planningCadastre":                 true,
	"society":                          true,
	"structure":                        true,
	"transportation":                   true,
	"utilitiesCommunication":           true,
}

// MaintenanceFrequencies is the MD_MaintenanceFrequencyCode list.
var MaintenanceFrequencies = map[string]bool{
	"continual":   true,
	"daily":       true,
	"weekly":      true,
	"fortnightly": true,
	"monthly":     true,
	"quarterly":   true,
	"biannually":  true,
	"annually":    true,
	"asNeeded":    true,
	"irregular":   true,
	"notPlanned":  true,
	"unknown":     true,
}

// ScopeCodes is the MD_ScopeCode list.
var ScopeCodes = map[string]bool{
	"attribute":            true,
	"attributeType":        true,
	"collectionHardware":   true,
	"collectionSession":    true,
	"dataset":              true,
	"series":               true,
	"nonGeographicDataset": true,
	"dimensionGroup":       true,
	"feature":              true,
	"featureType":          true,
	"propertyType":         true,
	"fieldSession":         true,
	"software":             true,
	"service":              true,
	"model":                true,
	"tile":                 true,
}
