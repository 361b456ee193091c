package lang

import "testing"

func TestDenyListDefaults(t *testing.T) {
	deny := NewDenyList()

	tests := []struct {
		callee   string
		fullExpr string
		want     bool
	}{
		{"require", "require", true},
		{"print", "print", true},
		{"append", "append", true},
		{"log", "console.log", true},
		{"stringify", "JSON.stringify", true},
		{"loads", "json.loads", true},
		{"saveUser", "saveUser", false},
		{"log", "logger.log", false},
	}

	for _, tt := range tests {
		if got := deny.IsNonTrackable(tt.callee, tt.fullExpr); got != tt.want {
			t.Errorf("IsNonTrackable(%q, %q): got %v, want %v",
				tt.callee, tt.fullExpr, got, tt.want)
		}
	}
}

func TestDenyListExtension(t *testing.T) {
	deny := NewDenyList()
	deny.Add("track")
	deny.AddPrefix("metrics.")

	if !deny.IsNonTrackable("track", "track") {
		t.Error("added name should be denied")
	}
	if !deny.IsNonTrackable("emit", "metrics.emit") {
		t.Error("added prefix should be denied")
	}
	if deny.IsNonTrackable("emit", "bus.emit") {
		t.Error("unrelated expression should pass")
	}
}
