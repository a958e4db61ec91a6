package vendors

import (
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// Tables for Zeiss TIFF sidecar metadata. Source keys carry the AP_/DP_/SV_
// concept prefixes of the Zeiss glossary.

var ZeissDynamicVarious = &config.Table{
	Name:      "zeiss_dynamic_various",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]",
	PrefixSrc: []string{""},
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			rule.Rename("em_lab/OPTICAL_SYSTEM_EM[optical_system_em]/magnification", "AP_MAG"),
			rule.Convert("em_lab/OPTICAL_SYSTEM_EM[optical_system_em]/working_distance",
				unit.Must("meter"), "AP_WD"),
			rule.Convert("em_lab/EBEAM_COLUMN[ebeam_column]/electron_source/voltage",
				unit.Must("volt"), "AP_MANUALKV"),
		}},
	},
}

var ZeissDynamicStage = &config.Table{
	Name:      "zeiss_dynamic_stage",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab/STAGE_LAB[stage_lab]",
	PrefixSrc: []string{""},
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			// Assumption: stage angles are radians; not stated by the vendor.
			rule.Convert("rotation", unit.Must("radian"), "AP_STAGE_AT_R"),
			rule.Convert("tilt1", unit.Must("radian"), "AP_STAGE_AT_T"),
			rule.ConvertList("position", unit.Must("meter"),
				"AP_STAGE_AT_X", "AP_STAGE_AT_Y", "AP_STAGE_AT_Z"),
		}},
	},
}

var ZeissStaticVarious = &config.Table{
	Name:      "zeiss_static_various",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab",
	PrefixSrc: []string{""},
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("FABRICATION[fabrication]/vendor", "Zeiss"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("FABRICATION[fabrication]/model", "DP_SEM"),
			rule.Rename("FABRICATION[fabrication]/identifier", "SV_SERIAL_NUMBER"),
		}},
	},
}

// Zeiss groups the Zeiss tables in application order.
var Zeiss = []*config.Table{
	ZeissDynamicVarious,
	ZeissDynamicStage,
	ZeissStaticVarious,
}
