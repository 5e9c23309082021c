package machine

import (
	"errors"
	"testing"
)

func TestBuilder_Build_MissingOverview(t *testing.T) {
	_, err := Node("start").Entry().NoExceptions().Build()

	var target *MissingOverviewError
	if !errors.As(err, &target) {
		t.Fatalf("expected *MissingOverviewError, got %v (%T)", err, err)
	}
}

func TestBuilder_Build_ReservedName(t *testing.T) {
	_, err := Node("exit").Overview("collides with a reserved name").NoExceptions().Build()

	var target *ReservedNameError
	if !errors.As(err, &target) {
		t.Fatalf("expected *ReservedNameError, got %v (%T)", err, err)
	}
}

func TestBuilder_Build_NoExceptionPolicy(t *testing.T) {
	_, err := Node("start").Overview("entry").Entry().Build()

	var target *NoExceptionHandlingError
	if !errors.As(err, &target) {
		t.Fatalf("expected *NoExceptionHandlingError, got %v (%T)", err, err)
	}
}

func TestBuilder_Build_Success(t *testing.T) {
	meta, err := Node("copy_to_staging").
		Overview("Copy the source file to the staging folder.").
		Happy("encrypt_file").
		Unhappy("remove_copied_file").
		HandleExceptions("remove_copied_file").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Name != "copy_to_staging" {
		t.Errorf("expected name %q, got %q", "copy_to_staging", meta.Name)
	}
	if !meta.HandlesExcept || meta.OnException != "remove_copied_file" {
		t.Errorf("expected exception handler routed to remove_copied_file, got %+v", meta)
	}
	exits := meta.Exits()
	if len(exits) != 2 || exits[0] != "encrypt_file" || exits[1] != "remove_copied_file" {
		t.Errorf("expected Exits() == [encrypt_file remove_copied_file], got %v", exits)
	}
}

func TestBuilder_Build_NoExceptions(t *testing.T) {
	meta, err := Node("report_results").Overview("terminal").Terminal().NoExceptions().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.HandlesExcept {
		t.Error("expected HandlesExcept == false for a NoExceptions node")
	}
}
