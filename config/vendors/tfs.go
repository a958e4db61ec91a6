package vendors

import (
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// Tables for TFS/FEI TIFF sidecar metadata.

var TFSDetectorStatic = &config.Table{
	Name:      "tfs_detector_static",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab/DETECTOR[detector*]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("local_name", "Detectors/Name"),
		}},
	},
}

var TFSApertureStatic = &config.Table{
	Name:      "tfs_aperture_static",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab/EBEAM_COLUMN[ebeam_column]/APERTURE_EM[aperture_em*]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("description", "Beam/Aperture"),
			rule.Convert("value", unit.Must("meter"), "EBeam/ApertureDiameter"),
		}},
	},
}

var TFSVariousStatic = &config.Table{
	Name:      "tfs_various_static",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab",
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("FABRICATION[fabrication]/vendor", "FEI"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("FABRICATION[fabrication]/model", "System/SystemType"),
			rule.Rename("FABRICATION[fabrication]/identifier", "System/BuildNr"),
			rule.Rename("EBEAM_COLUMN[ebeam_column]/electron_source/emitter_type", "System/Source"),
		}},
	},
}

var TFSOpticsDynamic = &config.Table{
	Name:      "tfs_optics_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em*]/em_lab/OPTICAL_SYSTEM_EM[optical_system_em]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Convert("beam_current", unit.Must("ampere"), "EBeam/BeamCurrent"),
			rule.Convert("working_distance", unit.Must("meter"), "EBeam/WD"),
		}},
	},
}

var TFSStageDynamic = &config.Table{
	Name:      "tfs_stage_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em*]/em_lab/STAGE_LAB[stage_lab]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			// Assumption: the instrument reports StageTa/StageTb in radians.
			// The vendor docs do not say; example values are small enough
			// to be either.
			rule.ConvertFrom("tilt1", unit.Must("degree"), "EBeam/StageTa", unit.Must("radian")),
			rule.ConvertFrom("tilt2", unit.Must("degree"), "EBeam/StageTb", unit.Must("radian")),
		}},
	},
}

var TFSScanDynamic = &config.Table{
	Name:      "tfs_scan_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em*]/em_lab/SCANBOX_EM[scanbox_em]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Convert("dwell_time", unit.Must("second"), "Scan/Dwelltime"),
			rule.Rename("scan_schema", "System/Scan"),
		}},
	},
}

var TFSVariousDynamic = &config.Table{
	Name:      "tfs_various_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em*]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("em_lab/DETECTOR[detector*]/mode", "Detectors/Mode"),
			rule.Rename("em_lab/EBEAM_COLUMN[ebeam_column]/operation_mode", "EBeam/UseCase"),
			rule.Convert("em_lab/EBEAM_COLUMN[ebeam_column]/electron_source/voltage", unit.Must("volt"), "EBeam/HV"),
			rule.Rename("event_type", "T1/Signal"),
			rule.Rename("event_type", "T2/Signal"),
			rule.Rename("event_type", "T3/Signal"),
			rule.Rename("event_type", "ETD/Signal"),
		}},
	},
}

// TFS groups the TFS/FEI tables in application order.
var TFS = []*config.Table{
	TFSDetectorStatic,
	TFSApertureStatic,
	TFSVariousStatic,
	TFSOpticsDynamic,
	TFSStageDynamic,
	TFSScanDynamic,
	TFSVariousDynamic,
}
