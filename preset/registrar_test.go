package preset_test

import (
	"testing"

	"uicss/css"
	"uicss/preset"
)

func TestRegistrar_Idempotent(t *testing.T) {
	reg := preset.NewRegistrar()
	reg.Register("--un-text-opacity")
	reg.Register("--un-text-opacity")

	got := reg.Flush()
	if len(got) != 1 {
		t.Fatalf("Flush() returned %d registrations, want 1", len(got))
	}
	want := css.PropertyRule{Name: "--un-text-opacity", Syntax: "<percentage>", InitialValue: "100%"}
	if got[0] != want {
		t.Errorf("Flush()[0] = %+v, want %+v", got[0], want)
	}
}

func TestRegistrar_FlushSortsAndClears(t *testing.T) {
	reg := preset.NewRegistrar()
	for _, name := range []string{"--un-text-opacity", "--un-bg-opacity", "--un-border-opacity"} {
		reg.Register(name)
	}

	requested := reg.Requested()
	if requested[0].Name != "--un-text-opacity" || requested[2].Name != "--un-border-opacity" {
		t.Errorf("Requested() lost request order: %v", requested)
	}

	got := reg.Flush()
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	want := []string{"--un-bg-opacity", "--un-border-opacity", "--un-text-opacity"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Flush() names = %v, want %v", names, want)
		}
	}

	if reg.Len() != 0 {
		t.Errorf("Len() after Flush() = %d, want 0", reg.Len())
	}
	if again := reg.Flush(); len(again) != 0 {
		t.Errorf("second Flush() = %v, want empty", again)
	}
}

func TestRegistrar_FirstRegistrationWins(t *testing.T) {
	var reg preset.Registrar // zero value is usable
	reg.RegisterProperty(css.PropertyRule{Name: "--un-content", Syntax: "*", InitialValue: `""`})
	reg.Register("--un-content")

	got := reg.Flush()
	if len(got) != 1 || got[0].Syntax != "*" {
		t.Errorf("Flush() = %+v, want single registration with syntax *", got)
	}
}
