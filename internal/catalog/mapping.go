package catalog

import "sort"

// TableSet is the ordered list of specification tables a scraper category
// resolves to. Most categories map to a single table; ambiguous aggregate
// categories (bundles such as "Mouse_Keyboard") fan out to several tables
// tried in declared order.
type TableSet struct {
	tables []string
}

// Single maps a category to exactly one specification table.
func Single(table string) TableSet {
	return TableSet{tables: []string{table}}
}

// Union maps a category to an ordered list of candidate tables.
func Union(tables ...string) TableSet {
	return TableSet{tables: append([]string{}, tables...)}
}

// Tables returns the ordered candidate tables.
func (t TableSet) Tables() []string {
	return append([]string{}, t.tables...)
}

// categoryTables maps the free-form category tags the scrapers emit to
// specification tables. Unknown categories produce no match.
var categoryTables = map[string]TableSet{
	"Case":                          Single("CaseSpecifications"),
	"CaseFan":                       Single("CaseFanSpecifications"),
	"CPU":                           Single("CPUSpecifications"),
	"CPUCooler":                     Single("CpuCoolerSpecifications"),
	"CPUCooler_Air":                 Single("CpuCoolerSpecifications"),
	"CPUCooler_Liquid":              Single("CpuCoolerSpecifications"),
	"ExternalStorage":               Single("ExternalStorageSpecifications"),
	"FanController":                 Single("FanControllerSpecifications"),
	"Headphones":                    Single("HeadphoneSpecifications"),
	"Keyboard":                      Single("KeyboardSpecifications"),
	"Memory":                        Single("RamSpecifications"),
	"Monitor":                       Single("MonitorSpecifications"),
	"Motherboard":                   Single("MotherboardSpecifications"),
	"Mouse":                         Single("MouseSpecifications"),
	"OperatingSystem":               Single("OperatingSystemSpecifications"),
	"OpticalDrive":                  Single("OpticalDriveSpecifications"),
	"PowerSupply":                   Single("PowerSupplySpecifications"),
	"SoundCard":                     Single("SoundCardSpecifications"),
	"Speakers":                      Single("SpeakersSpecifications"),
	"Storage":                       Single("InternalStorageSpecifications"),
	"ThermalCompound":               Single("ThermalPasteSpecifications"),
	"UPS":                           Single("UpsSpecifications"),
	"VideoCard":                     Single("GpuSpecifications"),
	"Webcam":                        Single("WebcamSpecifications"),
	"WiredNetworkAdapter":           Single("WiredNetworkAdapterSpecifications"),
	"WirelessNetworkAdapter":        Single("WirelessNetworkAdapterSpecifications"),
	"NetworkAdapter":                Union("WiredNetworkAdapterSpecifications", "WirelessNetworkAdapterSpecifications"),
	"CPU_CPUCooler_ThermalCompound": Union("CPUSpecifications", "CpuCoolerSpecifications", "ThermalPasteSpecifications"),
	"Mouse_Keyboard":                Union("MouseSpecifications", "KeyboardSpecifications"),
	"Storage_ExternalStorage":       Union("InternalStorageSpecifications", "ExternalStorageSpecifications"),
}

// TablesFor resolves a category tag to its ordered candidate tables. The
// second return value is false for unknown categories.
func TablesFor(category string) ([]string, bool) {
	set, ok := categoryTables[category]
	if !ok {
		return nil, false
	}
	return set.Tables(), true
}

// KnownTables returns the sorted set of every specification table the
// mapping can reach. The catalog store creates these on open.
func KnownTables() []string {
	seen := make(map[string]struct{})
	for _, set := range categoryTables {
		for _, table := range set.tables {
			seen[table] = struct{}{}
		}
	}
	tables := make([]string, 0, len(seen))
	for table := range seen {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
