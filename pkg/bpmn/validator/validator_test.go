package validator

import (
	"errors"
	"testing"

	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// wellFormed builds start -> task -> end, the smallest diagram that
// produces no findings.
func wellFormed() *model.Diagram {
	d := model.NewDiagram("d1", "well formed")
	p := model.NewProcess("p1", "main")
	p.AddEvent(model.NewEvent("s1", "Start", model.EventStart))
	p.AddTask(model.NewTask("t1", "Work", model.TaskUser))
	p.AddEvent(model.NewEvent("e1", "End", model.EventEnd))
	p.AddSequenceFlow(model.NewSequenceFlow("f1", "s1", "t1"))
	p.AddSequenceFlow(model.NewSequenceFlow("f2", "t1", "e1"))
	d.AddProcess(p)
	return d
}

func validate(t *testing.T, d *model.Diagram) report.Report {
	t.Helper()
	rep, err := New().Validate(d)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	return rep
}

func codesFor(rep report.Report, elementID string) []report.Code {
	var codes []report.Code
	for _, f := range rep.Findings {
		for _, id := range f.ElementIDs {
			if id == elementID {
				codes = append(codes, f.Code)
			}
		}
	}
	return codes
}

func containsCode(codes []report.Code, code report.Code) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func requireFinding(t *testing.T, rep report.Report, code report.Code, severity report.Severity, elementID string) {
	t.Helper()
	for _, f := range rep.Findings {
		if f.Code != code {
			continue
		}
		for _, id := range f.ElementIDs {
			if id == elementID {
				if f.Severity != severity {
					t.Errorf("%s on %s has severity %s, want %s", code, elementID, f.Severity, severity)
				}
				return
			}
		}
	}
	t.Errorf("missing %s finding for %s, got: %v", code, elementID, rep.Findings)
}

func TestWellFormedProcessHasNoFindings(t *testing.T) {
	rep := validate(t, wellFormed())
	if !rep.Valid || len(rep.Findings) != 0 {
		t.Errorf("expected clean report, got: %v", rep.Findings)
	}
}

func TestDuplicateIDIsFatal(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddTask(model.NewTask("t1", "Twin", model.TaskService))

	_, err := New().Validate(d)
	var dup *index.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateIDError, got %v", err)
	}
	if dup.ID != "t1" {
		t.Errorf("duplicate id = %q, want t1", dup.ID)
	}
}

func TestDanglingFlowReference(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddSequenceFlow(model.NewSequenceFlow("f3", "t1", "nowhere"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeDanglingReference, report.SeverityError, "f3")
	if rep.Valid {
		t.Error("dangling references must invalidate the diagram")
	}
}

func TestEmptyEndpointIsDangling(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddSequenceFlow(model.NewSequenceFlow("f3", "", "t1"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeDanglingReference, report.SeverityError, "f3")
}

func TestSequenceFlowIntoArtifact(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	p.AddDataObject(model.NewDataObject("doc", "Document"))
	p.AddSequenceFlow(model.NewSequenceFlow("f3", "t1", "doc"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeInvalidFlowEndpoint, report.SeverityError, "f3")
}

func TestAssociationMayTargetArtifact(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	p.AddDataObject(model.NewDataObject("doc", "Document"))
	p.AddAssociation(model.NewAssociation("a1", "t1", "doc"))

	rep := validate(t, d)
	if codes := codesFor(rep, "a1"); len(codes) != 0 {
		t.Errorf("association to artifact should be clean, got: %v", codes)
	}
}

func TestOrphanTask(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddTask(model.NewTask("t2", "Island", model.TaskService))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeOrphanNode, report.SeverityError, "t2")
	// The same disconnection is also unreachable from the start event.
	requireFinding(t, rep, report.CodeUnreachableNode, report.SeverityWarning, "t2")
	if rep.Valid {
		t.Error("a disconnected task must invalidate the diagram")
	}
}

func TestEventFlowDirections(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *model.Process)
		want  string
	}{
		{
			name: "start event with incoming flow",
			build: func(p *model.Process) {
				p.AddSequenceFlow(model.NewSequenceFlow("bad", "t1", "s1"))
			},
			want: "s1",
		},
		{
			name: "end event with outgoing flow",
			build: func(p *model.Process) {
				p.AddSequenceFlow(model.NewSequenceFlow("bad", "e1", "t1"))
			},
			want: "e1",
		},
		{
			name: "start event with no outgoing flow",
			build: func(p *model.Process) {
				p.AddEvent(model.NewEvent("s2", "Stuck", model.EventStart))
			},
			want: "s2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := wellFormed()
			tt.build(d.Processes[0])
			rep := validate(t, d)
			requireFinding(t, rep, report.CodeInvalidEventFlow, report.SeverityError, tt.want)
		})
	}
}

func TestBoundaryEventExemptions(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	boundary := model.NewEvent("b1", "Timeout", model.EventBoundary)
	boundary.AttachTo("t1", true)
	p.AddEvent(boundary)
	p.AddTask(model.NewTask("t2", "Escalate", model.TaskService))
	p.AddEvent(model.NewEvent("e2", "Escalated", model.EventEnd))
	p.AddSequenceFlow(model.NewSequenceFlow("f3", "b1", "t2"))
	p.AddSequenceFlow(model.NewSequenceFlow("f4", "t2", "e2"))

	rep := validate(t, d)
	if codes := codesFor(rep, "b1"); len(codes) != 0 {
		t.Errorf("boundary event should be exempt from connectivity and reachability, got: %v", codes)
	}
	// Nodes fed only by the boundary path are reachability-exempt too?
	// No: they hang off the boundary event, which is not reached via
	// sequence flow, so they legitimately warn.
	requireFinding(t, rep, report.CodeUnreachableNode, report.SeverityWarning, "t2")
}

func TestBoundaryEventWithoutOutgoingFlow(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	boundary := model.NewEvent("b1", "Timeout", model.EventBoundary)
	boundary.AttachTo("t1", true)
	p.AddEvent(boundary)

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeOrphanNode, report.SeverityError, "b1")
}

func TestBoundaryEventWithIncomingFlow(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	boundary := model.NewEvent("b1", "Timeout", model.EventBoundary)
	boundary.AttachTo("t1", true)
	p.AddEvent(boundary)
	p.AddSequenceFlow(model.NewSequenceFlow("f3", "t1", "b1"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeInvalidEventFlow, report.SeverityError, "b1")
}

func TestUnreachableBranch(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	p.AddTask(model.NewTask("t2", "Dead", model.TaskService))
	p.AddEvent(model.NewEvent("e2", "Dead End", model.EventEnd))
	p.AddSequenceFlow(model.NewSequenceFlow("f3", "t2", "e2"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeUnreachableNode, report.SeverityWarning, "t2")
	requireFinding(t, rep, report.CodeUnreachableNode, report.SeverityWarning, "e2")
	if containsCode(codesFor(rep, "t1"), report.CodeUnreachableNode) {
		t.Error("t1 is reachable and must not warn")
	}
}

func TestReachabilitySkipsProcessWithoutStart(t *testing.T) {
	d := model.NewDiagram("d1", "no start")
	p := model.NewProcess("p1", "main")
	p.AddTask(model.NewTask("t1", "Work", model.TaskUser))
	p.AddEvent(model.NewEvent("e1", "End", model.EventEnd))
	p.AddSequenceFlow(model.NewSequenceFlow("f1", "t1", "e1"))
	d.AddProcess(p)

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeMissingStartEvent, report.SeverityError, "p1")
	for _, f := range rep.Findings {
		if f.Code == report.CodeUnreachableNode {
			t.Errorf("no reachability findings expected without a start event, got %v", f)
		}
	}
}

func TestLoopBackEdgeIsReachable(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	// Rework loop: t1 -> g1 -> t1, g1 -> e1 replaces f2.
	p.SequenceFlows = p.SequenceFlows[:1]
	gw := model.NewGateway("g1", "Done?", model.GatewayExclusive)
	p.AddGateway(gw)
	p.AddSequenceFlow(model.NewSequenceFlow("f2", "t1", "g1"))
	redo := model.NewSequenceFlow("f3", "g1", "t1")
	redo.ConditionExpression = "${redo}"
	p.AddSequenceFlow(redo)
	done := model.NewSequenceFlow("f4", "g1", "e1")
	done.ConditionExpression = "${done}"
	p.AddSequenceFlow(done)

	rep := validate(t, d)
	if !rep.Valid || len(rep.Findings) != 0 {
		t.Errorf("cyclic but connected process should be clean, got: %v", rep.Findings)
	}
}

func TestGatewayFindings(t *testing.T) {
	tests := []struct {
		name     string
		incoming int
		outgoing int
		code     report.Code
		severity report.Severity
	}{
		{"no outgoing", 1, 0, report.CodeGatewayMissingFlow, report.SeverityError},
		{"no incoming", 0, 1, report.CodeGatewayMissingFlow, report.SeverityError},
		{"pass through", 1, 1, report.CodeRedundantGateway, report.SeverityWarning},
		{"mixed join and split", 2, 2, report.CodeAmbiguousGatewayRole, report.SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.NewDiagram("d1", "gateway")
			p := model.NewProcess("p1", "main")
			p.AddGateway(model.NewGateway("g1", "G", model.GatewayExclusive))
			for i := 0; i < tt.incoming; i++ {
				id := string(rune('a' + i))
				p.AddTask(model.NewTask("in_"+id, "In", model.TaskService))
				p.AddSequenceFlow(model.NewSequenceFlow("fi_"+id, "in_"+id, "g1"))
			}
			for i := 0; i < tt.outgoing; i++ {
				id := string(rune('a' + i))
				p.AddTask(model.NewTask("out_"+id, "Out", model.TaskService))
				p.AddSequenceFlow(model.NewSequenceFlow("fo_"+id, "g1", "out_"+id))
			}
			d.AddProcess(p)

			rep := validate(t, d)
			requireFinding(t, rep, tt.code, tt.severity, "g1")
		})
	}
}

func TestGatewayDeclaredDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction model.GatewayDirection
		incoming  int
		outgoing  int
		want      bool
	}{
		{"diverging with one outgoing", model.DirectionDiverging, 1, 1, true},
		{"diverging with two outgoing", model.DirectionDiverging, 1, 2, false},
		{"converging with one incoming", model.DirectionConverging, 1, 2, true},
		{"converging with two incoming", model.DirectionConverging, 2, 1, false},
		{"unspecified direction", model.DirectionUnspecified, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.NewDiagram("d1", "gateway direction")
			p := model.NewProcess("p1", "main")
			gw := model.NewGateway("g1", "G", model.GatewayExclusive)
			gw.Direction = tt.direction
			p.AddGateway(gw)
			for i := 0; i < tt.incoming; i++ {
				id := string(rune('a' + i))
				p.AddTask(model.NewTask("in_"+id, "In", model.TaskService))
				p.AddSequenceFlow(model.NewSequenceFlow("fi_"+id, "in_"+id, "g1"))
			}
			for i := 0; i < tt.outgoing; i++ {
				id := string(rune('a' + i))
				p.AddTask(model.NewTask("out_"+id, "Out", model.TaskService))
				p.AddSequenceFlow(model.NewSequenceFlow("fo_"+id, "g1", "out_"+id))
			}
			d.AddProcess(p)

			rep := validate(t, d)
			got := containsCode(codesFor(rep, "g1"), report.CodeGatewayDirectionMismatch)
			if got != tt.want {
				t.Errorf("GatewayDirectionMismatch on g1 = %v, want %v", got, tt.want)
			}
			if tt.want {
				requireFinding(t, rep, report.CodeGatewayDirectionMismatch, report.SeverityWarning, "g1")
			}
		})
	}
}

func TestFullyDisconnectedGatewayIsOrphanOnly(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddGateway(model.NewGateway("g1", "Floating", model.GatewayExclusive))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeOrphanNode, report.SeverityError, "g1")
	if containsCode(codesFor(rep, "g1"), report.CodeGatewayMissingFlow) {
		t.Error("fully disconnected gateway is already reported as orphan")
	}
}

func TestParallelGatewayWithConditionalFlow(t *testing.T) {
	d := wellFormed()
	p := d.Processes[0]
	p.SequenceFlows = p.SequenceFlows[:1]
	p.AddGateway(model.NewGateway("g1", "Fork", model.GatewayParallel))
	p.AddTask(model.NewTask("t2", "Also", model.TaskService))
	p.AddEvent(model.NewEvent("e2", "End 2", model.EventEnd))
	p.AddSequenceFlow(model.NewSequenceFlow("f2", "t1", "g1"))
	cond := model.NewSequenceFlow("f3", "g1", "e1")
	cond.ConditionExpression = "${fast}"
	p.AddSequenceFlow(cond)
	p.AddSequenceFlow(model.NewSequenceFlow("f4", "g1", "t2"))
	p.AddSequenceFlow(model.NewSequenceFlow("f5", "t2", "e2"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeInvalidParallelCondition, report.SeverityError, "g1")
	requireFinding(t, rep, report.CodeInvalidParallelCondition, report.SeverityError, "f3")
}

func TestLaneFindings(t *testing.T) {
	d := model.NewDiagram("d1", "lanes")
	p1 := model.NewProcess("p1", "first")
	p1.AddEvent(model.NewEvent("s1", "Start", model.EventStart))
	p1.AddEvent(model.NewEvent("e1", "End", model.EventEnd))
	p1.AddSequenceFlow(model.NewSequenceFlow("f1", "s1", "e1"))
	p2 := model.NewProcess("p2", "second")
	p2.AddEvent(model.NewEvent("s2", "Start", model.EventStart))
	p2.AddEvent(model.NewEvent("e2", "End", model.EventEnd))
	p2.AddSequenceFlow(model.NewSequenceFlow("f2", "s2", "e2"))
	d.AddProcess(p1)
	d.AddProcess(p2)

	pool := model.NewPool("pool1", "First Org", "p1")
	lane := model.NewLane("lane1", "Clerks")
	lane.FlowNodeRefs = []string{"s1", "e2", "ghost"}
	pool.Lanes = append(pool.Lanes, lane)
	d.AddPool(pool)
	d.AddPool(model.NewPool("pool2", "Second Org", "p2"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeLaneProcessMismatch, report.SeverityError, "lane1")
	requireFinding(t, rep, report.CodeDanglingReference, report.SeverityError, "lane1")
	if containsCode(codesFor(rep, "s1"), report.CodeLaneProcessMismatch) {
		t.Error("s1 belongs to the pool's process and must not be flagged")
	}
}

func TestMessageFlowAcrossPoolsIsClean(t *testing.T) {
	d := model.NewDiagram("d1", "collab")
	for _, id := range []string{"p1", "p2"} {
		p := model.NewProcess(id, id)
		p.AddEvent(model.NewEvent(id+"_start", "Start", model.EventStart))
		p.AddTask(model.NewTask(id+"_task", "Work", model.TaskService))
		p.AddEvent(model.NewEvent(id+"_end", "End", model.EventEnd))
		p.AddSequenceFlow(model.NewSequenceFlow(id+"_f1", id+"_start", id+"_task"))
		p.AddSequenceFlow(model.NewSequenceFlow(id+"_f2", id+"_task", id+"_end"))
		d.AddProcess(p)
	}
	d.AddPool(model.NewPool("pool1", "One", "p1"))
	d.AddPool(model.NewPool("pool2", "Two", "p2"))
	d.AddMessageFlow(model.NewMessageFlow("mf1", "p1_task", "p2_task"))

	rep := validate(t, d)
	if !rep.Valid || len(rep.Findings) != 0 {
		t.Errorf("cross-pool message flow should be clean, got: %v", rep.Findings)
	}
}

func TestMessageFlowWithinPool(t *testing.T) {
	d := wellFormed()
	d.AddPool(model.NewPool("pool1", "Org", "p1"))
	d.AddMessageFlow(model.NewMessageFlow("mf1", "s1", "t1"))

	rep := validate(t, d)
	requireFinding(t, rep, report.CodeInvalidMessageFlowScope, report.SeverityError, "mf1")
}

func TestDataObjectState(t *testing.T) {
	tests := []struct {
		name  string
		state string
		valid []string
		want  bool
	}{
		{"state in valid set", "Draft", []string{"Draft", "Final"}, false},
		{"state outside valid set", "Shredded", []string{"Draft", "Final"}, true},
		{"missing state with valid set", "", []string{"Draft", "Final"}, true},
		{"no declared states", "Anything", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := wellFormed()
			p := d.Processes[0]
			doc := model.NewDataObject("doc", "Document")
			doc.State = tt.state
			doc.ValidStates = tt.valid
			p.AddDataObject(doc)
			p.AddAssociation(model.NewAssociation("a1", "t1", "doc"))

			rep := validate(t, d)
			got := containsCode(codesFor(rep, "doc"), report.CodeInvalidDataState)
			if got != tt.want {
				t.Errorf("InvalidDataState = %v, want %v (findings: %v)", got, tt.want, rep.Findings)
			}
		})
	}
}

func TestUnreferencedDataObjectStateIsIgnored(t *testing.T) {
	d := wellFormed()
	doc := model.NewDataObject("doc", "Document")
	doc.State = "Bogus"
	doc.ValidStates = []string{"Draft"}
	d.Processes[0].AddDataObject(doc)

	rep := validate(t, d)
	if containsCode(codesFor(rep, "doc"), report.CodeInvalidDataState) {
		t.Error("state checks apply only to data objects referenced by an association")
	}
}

func TestStructureFindings(t *testing.T) {
	t.Run("multiple start events", func(t *testing.T) {
		d := wellFormed()
		p := d.Processes[0]
		p.AddEvent(model.NewEvent("s2", "Alt Start", model.EventStart))
		p.AddSequenceFlow(model.NewSequenceFlow("f3", "s2", "t1"))

		rep := validate(t, d)
		requireFinding(t, rep, report.CodeMultipleStartEvents, report.SeverityWarning, "p1")
		if !rep.Valid {
			t.Error("multiple starts is a warning only")
		}
	})
	t.Run("no end event", func(t *testing.T) {
		d := model.NewDiagram("d1", "no end")
		p := model.NewProcess("p1", "main")
		p.AddEvent(model.NewEvent("s1", "Start", model.EventStart))
		p.AddTask(model.NewTask("t1", "Work", model.TaskUser))
		p.AddSequenceFlow(model.NewSequenceFlow("f1", "s1", "t1"))
		d.AddProcess(p)

		rep := validate(t, d)
		requireFinding(t, rep, report.CodeMissingEndEvent, report.SeverityWarning, "p1")
	})
}

func TestDisableRule(t *testing.T) {
	d := wellFormed()
	d.Processes[0].AddGateway(model.NewGateway("g1", "Floating", model.GatewayExclusive))

	rep, err := New().Disable("connectivity", "reachability").Validate(d)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	for _, f := range rep.Findings {
		if f.Code == report.CodeOrphanNode || f.Code == report.CodeUnreachableNode {
			t.Errorf("disabled rule still ran: %v", f)
		}
	}
}

func TestRuleOrderIsStable(t *testing.T) {
	want := []string{"references", "connectivity", "reachability", "gateways", "swimlanes", "data", "structure"}
	got := New().Rules()
	if len(got) != len(want) {
		t.Fatalf("Rules() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rules() = %v, want %v", got, want)
		}
	}
}
