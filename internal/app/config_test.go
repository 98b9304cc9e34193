package app

import (
	"flag"
	"io"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	err := fs.Parse([]string{"-sim", "graph", "-scale", "4", "-tps", "20", "-seed", "9", "-cfg", "nodes=256", "-cfg", "rule = B3/S2,3"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "graph" || cfg.Scale != 4 || cfg.TPS != 20 || cfg.Seed != 9 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Params["nodes"] != "256" || cfg.Params["rule"] != "B3/S2,3" {
		t.Fatalf("params = %v", cfg.Params)
	}
	if got := cfg.Params.String(); got != "nodes=256,rule=B3/S2,3" {
		t.Fatalf("String() = %q", got)
	}
}

func TestKeyValuesRejectsMissingKey(t *testing.T) {
	var kv KeyValues
	for _, bad := range []string{"novalue", "=x"} {
		if err := kv.Set(bad); err == nil {
			t.Errorf("Set(%q) succeeded", bad)
		}
	}
	if err := kv.Set("d=1"); err != nil || kv["d"] != "1" {
		t.Fatalf("Set on nil map: %v %v", err, kv)
	}
}
