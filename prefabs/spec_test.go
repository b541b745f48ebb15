package prefabs

import "testing"

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.Start == "" || spec.Width <= 0 || spec.Height <= 0 {
		t.Fatalf("unexpected defaults: %+v", spec)
	}
}

func TestLoadTitleSpec(t *testing.T) {
	spec, err := LoadTitleSpec()
	if err != nil {
		t.Fatalf("LoadTitleSpec: %v", err)
	}
	for _, item := range spec.Items {
		if item.Label == "" || item.Target == "" {
			t.Fatalf("menu item missing label or target: %+v", item)
		}
	}
}

func TestScriptPaths(t *testing.T) {
	tests := map[string]string{
		"attract":                       "scripts/attract.tengo",
		"attract.tengo":                 "scripts/attract.tengo",
		"scripts/attract":               "scripts/attract.tengo",
		"prefabs/scripts/attract.tengo": "scripts/attract.tengo",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := LoadScript("attract"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}
