package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	nxmap "github.com/nxharvest/nxmap"
	"github.com/nxharvest/nxmap/config"
	"github.com/nxharvest/nxmap/flatmeta"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "apply":
		applyCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "nxmap CLI\n\nUsage:\n  nxmap apply -table t1.yaml[,t2.yaml,...] -meta metadata.json [-ids 1,1] [-o out.json] [-v]\n  nxmap check -table t1.yaml[,t2.yaml,...]\n\nNotes:\n  - Tables load as YAML (.yaml/.yml) or JSON (.json); they apply in the given order, last write wins.\n  - The metadata file is a flat JSON object; nested {\"value\":..., \"unit\":...} objects decode as quantities.")
}

func applyCmd(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	var tablesCSV, metaPath, idsCSV, out string
	var verbose bool
	fs.StringVar(&tablesCSV, "table", "", "comma-separated mapping table files")
	fs.StringVar(&metaPath, "meta", "", "flat metadata JSON file")
	fs.StringVar(&idsCSV, "ids", "", "comma-separated instance identifiers")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.BoolVar(&verbose, "v", false, "log skipped rules")
	_ = fs.Parse(args)
	if tablesCSV == "" || metaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	tables, err := loadTables(tablesCSV)
	if err != nil {
		fatal(err)
	}
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		fatal(err)
	}
	md, err := flatmeta.FromJSON(raw)
	if err != nil {
		fatal(err)
	}
	ids, err := parseIDs(idsCSV)
	if err != nil {
		fatal(err)
	}

	log := zap.NewNop().Sugar()
	if verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			fatal(err)
		}
		defer zl.Sync()
		log = zl.Sugar()
	}

	tpl := nxmap.Template{}
	eng := nxmap.New(log)
	for _, t := range tables {
		if err := eng.Apply(t, md, ids, tpl); err != nil {
			fatal(fmt.Errorf("table %s: %w", t.Name, err))
		}
	}

	buf, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		fatal(err)
	}
	buf = append(buf, '\n')
	if out == "" {
		_, _ = os.Stdout.Write(buf)
		return
	}
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		fatal(err)
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var tablesCSV string
	fs.StringVar(&tablesCSV, "table", "", "comma-separated mapping table files")
	_ = fs.Parse(args)
	if tablesCSV == "" {
		fs.Usage()
		os.Exit(2)
	}
	tables, err := loadTables(tablesCSV)
	if err != nil {
		fatal(err)
	}
	for _, t := range tables {
		fmt.Printf("%s: ok (%d verbs)\n", t.Name, len(t.Entries))
	}
}

func loadTables(csv string) ([]*config.Table, error) {
	var tables []*config.Table
	for _, path := range strings.Split(csv, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var t *config.Table
		switch filepath.Ext(path) {
		case ".json":
			t, err = config.LoadJSON(raw)
		default:
			t, err = config.LoadYAML(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables given")
	}
	return tables, nil
}

func parseIDs(csv string) ([]int, error) {
	if csv == "" {
		return nil, nil
	}
	var ids []int
	for _, s := range strings.Split(csv, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("bad identifier %q: %w", s, err)
		}
		ids = append(ids, n)
	}
	return ids, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "nxmap:", err)
	os.Exit(1)
}
