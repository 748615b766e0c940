package temp

import (
	"strings"
	"testing"
	"time"
)

// cachedSource builds an MQTTSource with a primed cache and no broker
// connection, so reads never touch the network.
func cachedSource(at time.Time, values map[string]float64) *MQTTSource {
	s := &MQTTSource{
		staleAfter: DefaultStaleAfter,
		now:        func() time.Time { return at },
		topics:     make(map[string]reading),
		subs:       make(map[string]bool),
	}
	for topic, v := range values {
		s.topics[topic] = reading{value: v, at: at}
		s.subs[topic] = true
	}
	return s
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"48.5", 48.5, false},
		{"55", 55, false},
		{" 21.5\n", 21.5, false},
		{"-3.25", -3.25, false},
		{"", 0, true},
		{"warm", 0, true},
		{"48,5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePayload([]byte(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePayload(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parsePayload(%q) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestMQTTSourceRead(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := cachedSource(base, map[string]float64{"attic/temperature": 21.5})

	got, err := s.Read("attic/temperature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 21.5 {
		t.Errorf("Read = %g, want 21.5", got)
	}
}

func TestMQTTSourceNoReadingYet(t *testing.T) {
	s := cachedSource(time.Now(), nil)
	s.subs["attic/temperature"] = true

	_, err := s.Read("attic/temperature")
	if err == nil {
		t.Fatal("expected error before any message arrives")
	}
}

func TestMQTTSourceStaleReading(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := cachedSource(base, map[string]float64{"attic/temperature": 21.5})
	s.now = func() time.Time { return base.Add(DefaultStaleAfter + time.Second) }

	_, err := s.Read("attic/temperature")
	if err == nil {
		t.Fatal("expected stale reading to fail")
	}
	if !strings.Contains(err.Error(), "stale") {
		t.Errorf("error should mention staleness, got: %v", err)
	}
}

func TestMQTTSourceReadingAtStaleBoundary(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := cachedSource(base, map[string]float64{"attic/temperature": 21.5})
	s.now = func() time.Time { return base.Add(DefaultStaleAfter) }

	// Exactly at the boundary the reading is still served.
	got, err := s.Read("attic/temperature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 21.5 {
		t.Errorf("Read = %g, want 21.5", got)
	}
}
