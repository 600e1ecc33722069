package summarizer

import (
	"reflect"
	"testing"
)

func TestParseActionItems(t *testing.T) {
	output := `Here are the action items:
- Call Bob about the contract
• Email Alice the slides
  - Book a meeting room
Not a bullet line
-
`
	items := parseActionItems(output)
	expected := []string{
		"Call Bob about the contract",
		"Email Alice the slides",
		"Book a meeting room",
	}
	if !reflect.DeepEqual(items, expected) {
		t.Errorf("Expected %v, got %v", expected, items)
	}
}

func TestParseActionItemsEmptyOutput(t *testing.T) {
	if items := parseActionItems(""); len(items) != 0 {
		t.Errorf("Expected no items, got %v", items)
	}
	if items := parseActionItems("No action items were mentioned."); len(items) != 0 {
		t.Errorf("Expected no items, got %v", items)
	}
}

func TestDedupeActionItems(t *testing.T) {
	items := []string{"Call Bob", "call bob", "Email Alice", "  Call Bob  ", "EMAIL ALICE"}
	deduped := dedupeActionItems(items)
	expected := []string{"Call Bob", "Email Alice"}
	if !reflect.DeepEqual(deduped, expected) {
		t.Errorf("Expected %v, got %v", expected, deduped)
	}
}

func TestDedupeActionItemsPreservesFirstSeenOrder(t *testing.T) {
	items := []string{"Zebra task", "Apple task", "zebra TASK", "Mango task"}
	deduped := dedupeActionItems(items)
	expected := []string{"Zebra task", "Apple task", "Mango task"}
	if !reflect.DeepEqual(deduped, expected) {
		t.Errorf("Expected %v, got %v", expected, deduped)
	}
}

func TestDedupeActionItemsEmpty(t *testing.T) {
	if deduped := dedupeActionItems(nil); len(deduped) != 0 {
		t.Errorf("Expected empty result, got %v", deduped)
	}
}
