package vendors

import (
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// Tables for TESCAN TIFF sidecar metadata.

var TescanVariousDynamic = &config.Table{
	Name:      "tescan_various_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em*]",
	PrefixSrc: []string{""},
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			rule.Rename("em_lab/OPTICAL_SYSTEM_EM[optical_system_em]/magnification", "Magnification"),
			rule.ConvertFrom("em_lab/OPTICAL_SYSTEM_EM[optical_system_em]/working_distance",
				unit.Must("centimeter"), "WD", unit.Must("meter")),
			rule.ConvertFrom("em_lab/EBEAM_COLUMN[ebeam_column]/electron_source/voltage",
				unit.Must("millivolt"), "HV", unit.Must("kilovolt")),
		}},
	},
}

var TescanVariousStatic = &config.Table{
	Name:      "tescan_various_static",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab",
	PrefixSrc: []string{""},
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("FABRICATION[fabrication]/vendor", "TESCAN"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("FABRICATION[fabrication]/model", "Device"),
			rule.Rename("FABRICATION[fabrication]/identifier", "SerialNumber"),
		}},
	},
}

// Tescan groups the TESCAN tables in application order.
var Tescan = []*config.Table{
	TescanVariousDynamic,
	TescanVariousStatic,
}
