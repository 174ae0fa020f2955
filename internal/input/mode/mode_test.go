package mode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"normal", Normal, false},
		{"Select", Select, false},
		{" insert ", Insert, false},
		{"visual", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr = %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownMode", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModeTextRoundTrip(t *testing.T) {
	for _, m := range All {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", m, err)
		}
		var got Mode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != m {
			t.Errorf("round trip = %v, want %v", got, m)
		}
	}

	if _, err := Mode(42).MarshalText(); err == nil {
		t.Error("MarshalText of an undeclared mode should fail")
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager(Normal)

	var calls []string
	m.OnChange(func(from, to Mode) {
		calls = append(calls, from.String()+"->"+to.String())
	})

	if err := m.Switch(Insert); err != nil {
		t.Fatalf("Switch(Insert) error = %v", err)
	}
	if m.Current() != Insert {
		t.Errorf("Current() = %v, want insert", m.Current())
	}
	if m.Previous() != Normal {
		t.Errorf("Previous() = %v, want normal", m.Previous())
	}

	// Same mode: no callback
	if err := m.Switch(Insert); err != nil {
		t.Fatalf("Switch(Insert) again error = %v", err)
	}

	if len(calls) != 1 || calls[0] != "normal->insert" {
		t.Errorf("callbacks = %v, want [normal->insert]", calls)
	}

	if err := m.Switch(Mode(9)); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Switch(9) error = %v, want ErrUnknownMode", err)
	}
}

func TestManagerUnregisterCallback(t *testing.T) {
	m := NewManager(Normal)

	count := 0
	unregister := m.OnChange(func(from, to Mode) { count++ })

	_ = m.Switch(Select)
	unregister()
	_ = m.Switch(Normal)

	if count != 1 {
		t.Errorf("callback count = %d, want 1", count)
	}
	if !m.Is(Normal, Insert) {
		t.Error("Is(Normal, Insert) should be true")
	}
}
