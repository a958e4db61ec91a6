package vendors

import (
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// Tables for Gatan DigitalMicrograph metadata. Source keys sit under the
// flattened ImageList tag-group hierarchy.

var GatanDynamicVarious = &config.Table{
	Name:      "gatan_dynamic_various",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab",
	PrefixSrc: []string{"ImageList/TagGroup0/ImageTags/Microscope Info/"},
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			// Assumption: Voltage is volts, not the formatted kV string.
			rule.ConvertFrom("ebeam_column/electron_source/voltage",
				unit.Must("volt"), "Voltage", unit.Must("volt")),
			rule.ConvertFrom("ebeam_column/electron_source/emission_current",
				unit.Must("ampere"), "Emission Current (µA)", unit.Must("microampere")),
			rule.ConvertFrom("ebeam_column/BEAM[beam]/diameter",
				unit.Must("meter"), "Probe Size (nm)", unit.Must("nanometer")),
			rule.ConvertFrom("OPTICAL_SETUP_EM[optical_setup]/probe_current",
				unit.Must("ampere"), "Probe Current (nA)", unit.Must("nanoampere")),
			rule.ConvertFrom("OPTICAL_SETUP_EM[optical_setup]/field_of_view",
				unit.Must("meter"), "Field of View (µm)", unit.Must("micrometer")),
			rule.Rename("OPTICAL_SETUP_EM[optical_setup]/magnification", "Actual Magnification"),
			rule.ConvertFrom("OPTICAL_SETUP_EM[optical_setup]/camera_length",
				unit.Must("meter"), "STEM Camera Length", unit.Must("meter")),
		}},
		{Verb: "map_to_str", Rules: []rule.Rule{
			rule.Rename("ebeam_column/operation_mode", "Operation Mode"),
			rule.Rename("ebeam_column/electron_source/emitter_type", "Gun Type"),
		}},
	},
}

var GatanStaticVarious = &config.Table{
	Name:      "gatan_static_various",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab",
	PrefixSrc: []string{"ImageList/TagGroup0/ImageTags/Microscope Info/"},
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("FABRICATION[fabrication]/vendor", "Gatan"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("FABRICATION[fabrication]/model", "Name"),
		}},
	},
}

// Gatan groups the Gatan tables in application order.
var Gatan = []*config.Table{
	GatanDynamicVarious,
	GatanStaticVarious,
}
