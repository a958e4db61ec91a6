package vendors_test

import (
	"math"
	"testing"

	nxmap "github.com/nxharvest/nxmap"
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/config/vendors"
	"github.com/nxharvest/nxmap/flatmeta"
	"github.com/nxharvest/nxmap/unit"
)

func allTables() []*config.Table {
	var all []*config.Table
	for _, group := range [][]*config.Table{vendors.TFS, vendors.Tescan, vendors.Zeiss, vendors.Velox, vendors.Gatan} {
		all = append(all, group...)
	}
	return all
}

func TestAllTablesValidate(t *testing.T) {
	seen := map[string]bool{}
	for _, tbl := range allTables() {
		if err := tbl.Validate(); err != nil {
			t.Fatalf("table %s: %v", tbl.Name, err)
		}
		if seen[tbl.Name] {
			t.Fatalf("duplicate table name %s", tbl.Name)
		}
		seen[tbl.Name] = true
	}
}

func TestTFS_SparseMetadata(t *testing.T) {
	// a sparse TFS metadata dict: everything absent must skip, the rest land
	md := flatmeta.Dict{
		"System/SystemType": "Apreo",
		"EBeam/HV":          unit.Scalar(30000, unit.Must("volt")),
	}
	tpl := nxmap.Template{}
	for _, tbl := range vendors.TFS {
		if err := nxmap.Apply(tbl, md, []int{1, 1, 1}, tpl); err != nil {
			t.Fatalf("table %s: %v", tbl.Name, err)
		}
	}
	if v := tpl["/ENTRY[entry1]/measurement/em_lab/FABRICATION[fabrication]/vendor"]; v != "FEI" {
		t.Fatalf("use literal missing, got %v", v)
	}
	if v := tpl["/ENTRY[entry1]/measurement/em_lab/FABRICATION[fabrication]/model"]; v != "Apreo" {
		t.Fatalf("model not mapped, got %v", v)
	}
	volt := "/ENTRY[entry1]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em1]/em_lab/EBEAM_COLUMN[ebeam_column]/electron_source/voltage"
	if v, ok := tpl[volt].(float64); !ok || v != 30000 {
		t.Fatalf("voltage not mapped, got %v", tpl[volt])
	}
	if tpl[volt+"/@units"] != "volt" {
		t.Fatalf("voltage units missing")
	}
	// absent sources must not leave traces
	if _, ok := tpl["/ENTRY[entry1]/measurement/em_lab/FABRICATION[fabrication]/identifier"]; ok {
		t.Fatalf("absent source must not be written")
	}
}

func TestTescan_UnitChain(t *testing.T) {
	// WD arrives as bare kilovolt/meter numbers and lands converted
	md := flatmeta.Dict{
		"WD": 0.01, // meters, mapped to centimeters
		"HV": 30.0, // kilovolts, mapped to millivolts
	}
	tpl := nxmap.Template{}
	for _, tbl := range vendors.Tescan {
		if err := nxmap.Apply(tbl, md, []int{1, 1}, tpl); err != nil {
			t.Fatalf("table %s: %v", tbl.Name, err)
		}
	}
	wd := "/ENTRY[entry1]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em1]/em_lab/OPTICAL_SYSTEM_EM[optical_system_em]/working_distance"
	if v, ok := tpl[wd].(float64); !ok || math.Abs(v-1.0) > 1e-9 {
		t.Fatalf("expected 1 centimeter, got %v", tpl[wd])
	}
	hv := "/ENTRY[entry1]/measurement/EVENT_DATA_EM_SET[event_data_em_set]/EVENT_DATA_EM[event_data_em1]/em_lab/EBEAM_COLUMN[ebeam_column]/electron_source/voltage"
	if v, ok := tpl[hv].(float64); !ok || math.Abs(v-3.0e7) > 1e-3 {
		t.Fatalf("expected 3e7 millivolt, got %v", tpl[hv])
	}
}

func TestZeiss_StagePositionVector(t *testing.T) {
	md := flatmeta.Dict{
		"AP_STAGE_AT_X": unit.Scalar(0.001, unit.Must("meter")),
		"AP_STAGE_AT_Y": unit.Scalar(0.002, unit.Must("meter")),
		"AP_STAGE_AT_Z": unit.Scalar(0.003, unit.Must("meter")),
	}
	tpl := nxmap.Template{}
	if err := nxmap.Apply(vendors.ZeissDynamicStage, md, []int{1, 1}, tpl); err != nil {
		t.Fatalf("apply: %v", err)
	}
	pos := "/ENTRY[entry1]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em1]/em_lab/STAGE_LAB[stage_lab]/position"
	got, ok := tpl[pos].([]float64)
	if !ok || len(got) != 3 {
		t.Fatalf("expected 3-element position, got %v", tpl[pos])
	}
	if tpl[pos+"/@units"] != "meter" {
		t.Fatalf("position units missing")
	}
}

func TestVelox_JoinAndTimestamp(t *testing.T) {
	md := flatmeta.Dict{
		"Instrument/InstrumentClass": "Talos",
		"Instrument/InstrumentModel": "F200X",
		"Acquisition/AcquisitionStartDatetime/DateTime": "1620000000",
	}
	tpl := nxmap.Template{}
	for _, tbl := range vendors.Velox {
		if err := nxmap.Apply(tbl, md, []int{1, 1}, tpl); err != nil {
			t.Fatalf("table %s: %v", tbl.Name, err)
		}
	}
	// join_str runs after map inside the fabrication table, so the joined
	// form wins at the shared model path
	if v := tpl["/ENTRY[entry1]/measurement/em_lab/FABRICATION[fabrication]/model"]; v != "Talos F200X" {
		t.Fatalf("expected joined model, got %v", v)
	}
	start := "/ENTRY[entry1]/measurement/event_data_em_set/EVENT_DATA_EM[event_data_em1]/start_time"
	if v := tpl[start]; v != "2021-05-03T00:00:00+00:00" {
		t.Fatalf("unexpected start_time %v", v)
	}
}
