package tui

import "testing"

// TestKeyMapDefaults verifies the board bindings a user would hit first.
func TestKeyMapDefaults(t *testing.T) {
	k := newKeyMap()
	if got := k.grabCard.Keys(); len(got) != 1 || got[0] != "space" {
		t.Fatalf("unexpected grab card keys %#v", got)
	}
	if got := k.addCard.Keys(); len(got) != 1 || got[0] != "n" {
		t.Fatalf("unexpected add card keys %#v", got)
	}
	if got := k.addList.Keys(); len(got) != 1 || got[0] != "N" {
		t.Fatalf("unexpected add list keys %#v", got)
	}
	if got := k.deleteList.Keys(); len(got) != 2 || got[0] != "D" || got[1] != "shift+d" {
		t.Fatalf("unexpected delete list keys %#v", got)
	}
	if got := k.cardInfo.Keys(); len(got) != 2 || got[0] != "i" || got[1] != "enter" {
		t.Fatalf("unexpected card info keys %#v", got)
	}
}

// TestKeyMapHelpShapes verifies the help bubble receives non-empty rows.
func TestKeyMapHelpShapes(t *testing.T) {
	k := newKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Fatal("expected short help bindings")
	}
	full := k.FullHelp()
	if len(full) != 3 {
		t.Fatalf("expected three full-help columns, got %d", len(full))
	}
	for idx, column := range full {
		if len(column) == 0 {
			t.Fatalf("full help column %d is empty", idx)
		}
	}
}
