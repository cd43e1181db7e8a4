package handlers

import "testing"

func TestFlashIsConsumedExactlyOnce(t *testing.T) {
	setSuccessFlash(1, "List created successfully.")

	first := popFlash(1)
	if first == nil || first.Success != "List created successfully." {
		t.Fatalf("expected the success notice on the first read, got %v", first)
	}
	if second := popFlash(1); second != nil {
		t.Errorf("expected no notice on the second read, got %v", second)
	}
}

func TestFlashIsScopedPerOwner(t *testing.T) {
	setSuccessFlash(1, "List created successfully.")
	defer popFlash(1)

	if notice := popFlash(2); notice != nil {
		t.Errorf("owner 2 must not observe owner 1's notice, got %v", notice)
	}
}

func TestNewFlashOverwritesUnreadOne(t *testing.T) {
	setSuccessFlash(1, "List created successfully.")
	setErrorFlash(1, "List not found.")

	notice := popFlash(1)
	if notice == nil || notice.Error != "List not found." || notice.Success != "" {
		t.Fatalf("expected only the latest notice, got %v", notice)
	}
	if again := popFlash(1); again != nil {
		t.Errorf("expected the slot to be empty after the read, got %v", again)
	}
}
