package vendors

import (
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/rule"
	"github.com/nxharvest/nxmap/unit"
)

// Tables for Velox EMD metadata as flattened by the rosettasciio-based
// decoder.

var VeloxEntry = &config.Table{
	Name:      "velox_entry",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab/control_program",
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("program", "Not reported in original_metadata parsed from Velox EMD"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("program/@version", "Instrument/ControlSoftwareVersion"),
		}},
	},
}

var VeloxEBeamStatic = &config.Table{
	Name:      "velox_ebeam_static",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab/EBEAM_COLUMN[ebeam_column]/electron_source",
	Entries: []config.Entry{
		{Verb: config.VerbUse, Rules: []rule.Rule{
			rule.Use("probe", "electron"),
		}},
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("emitter_type", "Acquisition/SourceType"),
		}},
	},
}

var VeloxFabrication = &config.Table{
	Name:      "velox_fabrication",
	PrefixTrg: "/ENTRY[entry*]/measurement/em_lab/FABRICATION[fabrication]",
	Entries: []config.Entry{
		{Verb: config.VerbMap, Rules: []rule.Rule{
			rule.Rename("identifier", "Instrument/InstrumentId"),
			rule.Rename("model", "Instrument/InstrumentModel"),
			rule.Rename("vendor", "Instrument/Manufacturer"),
		}},
		{Verb: config.VerbJoinStr, Rules: []rule.Rule{
			rule.Gather("model", "Instrument/InstrumentClass", "Instrument/InstrumentModel"),
		}},
	},
}

var VeloxScan = &config.Table{
	Name:      "velox_scan",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab/SCANBOX_EM[scanbox_em]",
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			rule.Convert("dwell_time", unit.Must("second"), "Scan/DwellTime"),
		}},
	},
}

var VeloxOptics = &config.Table{
	Name:      "velox_optics",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab/OPTICAL_SYSTEM_EM[optical_system_em]",
	Entries: []config.Entry{
		{Verb: "map_to_f8", Rules: []rule.Rule{
			rule.Rename("magnification", "Optics/NominalMagnification"),
			rule.Convert("camera_length", unit.Must("meter"), "Optics/CameraLength"),
			rule.Convert("defocus", unit.Must("meter"), "Optics/Defocus"),
			// Assumption: BeamConvergence is the semi convergence angle;
			// needs clarification from the vendor.
			rule.Convert("semi_convergence_angle", unit.Must("radian"), "Optics/BeamConvergence"),
		}},
	},
}

var VeloxStage = &config.Table{
	Name:      "velox_stage",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab/STAGE_LAB[stage_lab]",
	Entries: []config.Entry{
		{Verb: "map_to_str", Rules: []rule.Rule{
			rule.Rename("design", "Stage/HolderType"),
		}},
		{Verb: "map_to_f8", Rules: []rule.Rule{
			// Assumption: AlphaTilt/BetaTilt are radians. All observed
			// instance values are small enough to be either radians or
			// degrees; the vendor does not document it.
			rule.Convert("tilt1", unit.Must("radian"), "Stage/AlphaTilt"),
			rule.Convert("tilt2", unit.Must("radian"), "Stage/BetaTilt"),
			rule.ConvertList("position", unit.Must("meter"),
				"Stage/Position/x", "Stage/Position/y", "Stage/Position/z"),
		}},
	},
}

var VeloxDynamic = &config.Table{
	Name:      "velox_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]",
	Entries: []config.Entry{
		{Verb: config.VerbUnixToISO8601, Rules: []rule.Rule{
			rule.Timestamp("start_time", "Acquisition/AcquisitionStartDatetime/DateTime"),
		}},
	},
}

var VeloxEBeamDynamic = &config.Table{
	Name:      "velox_ebeam_dynamic",
	PrefixTrg: "/ENTRY[entry*]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em*]/em_lab/EBEAM_COLUMN[ebeam_column]",
	Entries: []config.Entry{
		{Verb: config.VerbJoinStr, Rules: []rule.Rule{
			rule.Gather("operation_mode", "Optics/OperatingMode", "Optics/TemOperatingSubMode"),
		}},
		{Verb: "map_to_f8", Rules: []rule.Rule{
			rule.Convert("electron_source/voltage", unit.Must("volt"), "Optics/AccelerationVoltage"),
		}},
	},
}

// Velox groups the Velox tables in application order.
var Velox = []*config.Table{
	VeloxEntry,
	VeloxEBeamStatic,
	VeloxFabrication,
	VeloxScan,
	VeloxOptics,
	VeloxStage,
	VeloxDynamic,
	VeloxEBeamDynamic,
}
