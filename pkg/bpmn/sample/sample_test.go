package sample

import (
	"testing"

	"flowgate-hq/bpmnlint/pkg/bpmn/validator"
)

func TestApprovalProcessIsValid(t *testing.T) {
	d := ApprovalProcess()
	rep, err := validator.New().Validate(d)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !rep.Valid || len(rep.Findings) != 0 {
		t.Errorf("approval process should validate clean, got: %v", rep.Findings)
	}

	p := d.ProcessByID("approval_process")
	if p == nil {
		t.Fatal("approval_process missing")
	}
	if len(p.StartEvents()) != 1 || len(p.EndEvents()) != 2 {
		t.Errorf("event structure wrong: %d starts, %d ends", len(p.StartEvents()), len(p.EndEvents()))
	}
	if p.ElementByID("document") == nil {
		t.Error("document data object missing")
	}
}

func TestCollaborationIsValid(t *testing.T) {
	d := Collaboration()
	rep, err := validator.New().Validate(d)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !rep.Valid || len(rep.Findings) != 0 {
		t.Errorf("collaboration should validate clean, got: %v", rep.Findings)
	}

	if !d.IsCollaboration() {
		t.Error("expected a collaboration diagram")
	}
	if len(d.Pools) != 2 || len(d.MessageFlows) != 2 {
		t.Errorf("pools/message flows = %d/%d, want 2/2", len(d.Pools), len(d.MessageFlows))
	}
	supplier := d.Pools[1]
	if supplier.LaneByID("supplier_sales") == nil || supplier.LaneByID("supplier_warehouse") == nil {
		t.Error("supplier lanes missing")
	}
}
