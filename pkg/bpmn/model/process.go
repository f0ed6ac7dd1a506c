package model

import "time"

// ProcessType classifies visibility of a process.
type ProcessType string

const (
	ProcessNone    ProcessType = "none"
	ProcessPublic  ProcessType = "public"
	ProcessPrivate ProcessType = "private"
)

// Process is one executable or non-executable graph of flow objects and
// connecting objects. A process owns its elements exclusively; no element
// belongs to two processes.
type Process struct {
	Element `yaml:",inline"`

	IsExecutable bool        `json:"is_executable,omitempty" yaml:"is_executable,omitempty"`
	IsClosed     bool        `json:"is_closed,omitempty" yaml:"is_closed,omitempty"`
	ProcessType  ProcessType `json:"process_type,omitempty" yaml:"process_type,omitempty"`

	// Flow objects
	Events       []*Event      `json:"events,omitempty" yaml:"events,omitempty"`
	Tasks        []*Task       `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Gateways     []*Gateway    `json:"gateways,omitempty" yaml:"gateways,omitempty"`
	SubProcesses []*SubProcess `json:"subprocesses,omitempty" yaml:"subprocesses,omitempty"`

	// Connecting objects
	SequenceFlows []*SequenceFlow `json:"sequence_flows,omitempty" yaml:"sequence_flows,omitempty"`
	Associations  []*Association  `json:"associations,omitempty" yaml:"associations,omitempty"`

	// Artifacts
	DataObjects     []*DataObject     `json:"data_objects,omitempty" yaml:"data_objects,omitempty"`
	DataStores      []*DataStore      `json:"data_stores,omitempty" yaml:"data_stores,omitempty"`
	Groups          []*Group          `json:"groups,omitempty" yaml:"groups,omitempty"`
	TextAnnotations []*TextAnnotation `json:"text_annotations,omitempty" yaml:"text_annotations,omitempty"`

	// Swimlanes
	Lanes []*Lane `json:"lanes,omitempty" yaml:"lanes,omitempty"`
}

// NewProcess creates a process.
func NewProcess(id, name string) *Process {
	return &Process{Element: Element{ID: id, Name: name, Type: TypeProcess}}
}

// AddEvent appends an event to the process.
func (p *Process) AddEvent(e *Event) { p.Events = append(p.Events, e) }

// AddTask appends a task to the process.
func (p *Process) AddTask(t *Task) { p.Tasks = append(p.Tasks, t) }

// AddGateway appends a gateway to the process.
func (p *Process) AddGateway(g *Gateway) { p.Gateways = append(p.Gateways, g) }

// AddSubProcess appends a subprocess to the process.
func (p *Process) AddSubProcess(s *SubProcess) { p.SubProcesses = append(p.SubProcesses, s) }

// AddSequenceFlow appends a sequence flow to the process.
func (p *Process) AddSequenceFlow(f *SequenceFlow) { p.SequenceFlows = append(p.SequenceFlows, f) }

// AddAssociation appends an association to the process.
func (p *Process) AddAssociation(a *Association) { p.Associations = append(p.Associations, a) }

// AddDataObject appends a data object to the process.
func (p *Process) AddDataObject(d *DataObject) { p.DataObjects = append(p.DataObjects, d) }

// AddLane appends a lane to the process.
func (p *Process) AddLane(l *Lane) { p.Lanes = append(p.Lanes, l) }

// FlowObjects returns every node that can participate in sequence flow,
// in declaration order: events, tasks, gateways, subprocesses.
func (p *Process) FlowObjects() []FlowNode {
	nodes := make([]FlowNode, 0, len(p.Events)+len(p.Tasks)+len(p.Gateways)+len(p.SubProcesses))
	for _, e := range p.Events {
		nodes = append(nodes, e)
	}
	for _, t := range p.Tasks {
		nodes = append(nodes, t)
	}
	for _, g := range p.Gateways {
		nodes = append(nodes, g)
	}
	for _, s := range p.SubProcesses {
		nodes = append(nodes, s)
	}
	return nodes
}

// StartEvents returns all start events in the process.
func (p *Process) StartEvents() []*Event {
	var starts []*Event
	for _, e := range p.Events {
		if e.IsStart() {
			starts = append(starts, e)
		}
	}
	return starts
}

// EndEvents returns all end events in the process.
func (p *Process) EndEvents() []*Event {
	var ends []*Event
	for _, e := range p.Events {
		if e.IsEnd() {
			ends = append(ends, e)
		}
	}
	return ends
}

// ElementByID returns any element of the process with the given id, or nil.
func (p *Process) ElementByID(id string) *Element {
	for _, n := range p.FlowObjects() {
		if n.Base().ID == id {
			return n.Base()
		}
	}
	for _, f := range p.SequenceFlows {
		if f.ID == id {
			return &f.Element
		}
	}
	for _, a := range p.Associations {
		if a.ID == id {
			return &a.Element
		}
	}
	for _, d := range p.DataObjects {
		if d.ID == id {
			return &d.Element
		}
	}
	for _, d := range p.DataStores {
		if d.ID == id {
			return &d.Element
		}
	}
	for _, g := range p.Groups {
		if g.ID == id {
			return &g.Element
		}
	}
	for _, t := range p.TextAnnotations {
		if t.ID == id {
			return &t.Element
		}
	}
	for _, l := range p.Lanes {
		if l.ID == id {
			return &l.Element
		}
	}
	return nil
}

// CountElements returns per-kind element counts for the process.
func (p *Process) CountElements() map[string]int {
	return map[string]int{
		"events":           len(p.Events),
		"tasks":            len(p.Tasks),
		"gateways":         len(p.Gateways),
		"subprocesses":     len(p.SubProcesses),
		"sequence_flows":   len(p.SequenceFlows),
		"associations":     len(p.Associations),
		"data_objects":     len(p.DataObjects),
		"data_stores":      len(p.DataStores),
		"groups":           len(p.Groups),
		"text_annotations": len(p.TextAnnotations),
		"lanes":            len(p.Lanes),
	}
}

// Diagram is the top-level aggregate: processes, pools, and the message
// flows crossing pool boundaries. It is constructed once, handed immutable
// to validation, and discarded after the report is produced.
type Diagram struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	TargetNamespace string `json:"target_namespace,omitempty" yaml:"target_namespace,omitempty"`

	Processes    []*Process     `json:"processes,omitempty" yaml:"processes,omitempty"`
	Pools        []*Pool        `json:"pools,omitempty" yaml:"pools,omitempty"`
	MessageFlows []*MessageFlow `json:"message_flows,omitempty" yaml:"message_flows,omitempty"`

	// Global artifacts outside any process.
	GlobalDataStores      []*DataStore      `json:"global_data_stores,omitempty" yaml:"global_data_stores,omitempty"`
	GlobalTextAnnotations []*TextAnnotation `json:"global_text_annotations,omitempty" yaml:"global_text_annotations,omitempty"`

	CreatedBy string     `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Version   string     `json:"version,omitempty" yaml:"version,omitempty"`
}

// NewDiagram creates a diagram with the default BPMN namespace.
func NewDiagram(id, name string) *Diagram {
	return &Diagram{
		ID:              id,
		Name:            name,
		TargetNamespace: "http://bpmn.io/schema/bpmn",
		Version:         "1.0",
	}
}

// AddProcess appends a process to the diagram.
func (d *Diagram) AddProcess(p *Process) { d.Processes = append(d.Processes, p) }

// AddPool appends a pool to the diagram.
func (d *Diagram) AddPool(p *Pool) { d.Pools = append(d.Pools, p) }

// AddMessageFlow appends a message flow to the diagram.
func (d *Diagram) AddMessageFlow(f *MessageFlow) { d.MessageFlows = append(d.MessageFlows, f) }

// IsCollaboration reports whether the diagram has pools.
func (d *Diagram) IsCollaboration() bool { return len(d.Pools) > 0 }

// ProcessByID returns the process with the given id, or nil.
func (d *Diagram) ProcessByID(id string) *Process {
	for _, p := range d.Processes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ElementByID searches the whole diagram for an element with the given id.
func (d *Diagram) ElementByID(id string) *Element {
	for _, p := range d.Processes {
		if p.ID == id {
			return &p.Element
		}
		if el := p.ElementByID(id); el != nil {
			return el
		}
	}
	for _, pool := range d.Pools {
		if pool.ID == id {
			return &pool.Element
		}
		if lane := pool.LaneByID(id); lane != nil {
			return &lane.Element
		}
	}
	for _, f := range d.MessageFlows {
		if f.ID == id {
			return &f.Element
		}
	}
	for _, s := range d.GlobalDataStores {
		if s.ID == id {
			return &s.Element
		}
	}
	for _, a := range d.GlobalTextAnnotations {
		if a.ID == id {
			return &a.Element
		}
	}
	return nil
}

// CountAllElements aggregates element counts across the whole diagram.
func (d *Diagram) CountAllElements() map[string]int {
	counts := map[string]int{
		"processes":     len(d.Processes),
		"pools":         len(d.Pools),
		"message_flows": len(d.MessageFlows),
	}
	for _, p := range d.Processes {
		for kind, n := range p.CountElements() {
			counts[kind] += n
		}
	}
	return counts
}
