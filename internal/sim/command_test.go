package sim

import (
	"errors"
	"testing"

	"github.com/litescript/ls-orrery/internal/catalog"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Command
		wantErr error
	}{
		{"speed", `{"type":"setGlobalSpeed","value":2}`, SetGlobalSpeed(2), nil},
		{"body speed", `{"type":"setBodySpeed","id":"mars","value":1.5}`, SetBodySpeed(catalog.Mars, 1.5), nil},
		{"focus by name", `{"type":"focusOn","id":"Jupiter"}`, FocusOn(catalog.Jupiter), nil},
		{"focus moon alias", `{"type":"focusOn","id":"moon"}`, FocusOn(catalog.Moon), nil},
		{"toggle", `{"type":"togglePlay"}`, TogglePlay(), nil},
		{"unknown", `{"type":"warp"}`, Command{}, ErrUnknownCommand},
		{"missing type", `{"id":"mars"}`, Command{}, ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand([]byte(tt.in))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCommand_Malformed(t *testing.T) {
	if _, err := ParseCommand([]byte(`{"type":`)); err == nil {
		t.Error("expected decode error")
	}
}
