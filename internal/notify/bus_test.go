package notify

import "testing"

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []string
	bus.Subscribe(func(slot string) { first = append(first, slot) })
	bus.Subscribe(func(slot string) { second = append(second, slot) })

	bus.Publish("expenses")
	bus.Publish("stores")

	if len(first) != 2 || first[0] != "expenses" || first[1] != "stores" {
		t.Fatalf("first subscriber got %v", first)
	}
	if len(second) != 2 {
		t.Fatalf("second subscriber got %v", second)
	}
}

func TestBusNoSubscribers(t *testing.T) {
	bus := NewBus()
	// must not panic
	bus.Publish("expenses")
}
