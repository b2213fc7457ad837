package kafkax

import "testing"

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092 , ,kafka-2:9092")
	if len(got) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(got))
	}
	if got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", got)
	}

	if got := SplitBrokers("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}
