package model

// Lane partitions a pool's process nodes by role or responsibility. A node
// belongs to at most one lane within its pool.
type Lane struct {
	Element `yaml:",inline"`

	// FlowNodeRefs lists the ids of flow objects assigned to this lane.
	FlowNodeRefs []string `json:"flow_node_refs,omitempty" yaml:"flow_node_refs,omitempty"`

	// ChildLanes nests lanes for hierarchical partitioning.
	ChildLanes []*Lane `json:"child_lanes,omitempty" yaml:"child_lanes,omitempty"`

	PartitionElementRef string `json:"partition_element_ref,omitempty" yaml:"partition_element_ref,omitempty"`
}

// NewLane creates a lane.
func NewLane(id, name string) *Lane {
	return &Lane{Element: Element{ID: id, Name: name, Type: TypeLane}}
}

// AddFlowNode assigns a flow object id to this lane, ignoring duplicates.
func (l *Lane) AddFlowNode(nodeID string) {
	for _, ref := range l.FlowNodeRefs {
		if ref == nodeID {
			return
		}
	}
	l.FlowNodeRefs = append(l.FlowNodeRefs, nodeID)
}

// AllFlowNodes returns the flow node ids of this lane and all child lanes.
func (l *Lane) AllFlowNodes() []string {
	nodes := make([]string, 0, len(l.FlowNodeRefs))
	nodes = append(nodes, l.FlowNodeRefs...)
	for _, child := range l.ChildLanes {
		nodes = append(nodes, child.AllFlowNodes()...)
	}
	return nodes
}

// Pool represents a participant in a collaboration. It references the
// process it executes and may partition that process into lanes.
type Pool struct {
	Element `yaml:",inline"`

	// ProcessRef is the id of the process this participant executes.
	ProcessRef string `json:"process_ref,omitempty" yaml:"process_ref,omitempty"`

	IsExecutable bool    `json:"is_executable,omitempty" yaml:"is_executable,omitempty"`
	Lanes        []*Lane `json:"lanes,omitempty" yaml:"lanes,omitempty"`

	ParticipantMultiplicity int  `json:"participant_multiplicity,omitempty" yaml:"participant_multiplicity,omitempty"`
	IsHorizontal            bool `json:"is_horizontal,omitempty" yaml:"is_horizontal,omitempty"`
}

// NewPool creates a pool referencing a process.
func NewPool(id, name, processRef string) *Pool {
	return &Pool{
		Element:      Element{ID: id, Name: name, Type: TypePool},
		ProcessRef:   processRef,
		IsHorizontal: true,
	}
}

// AddLane appends a lane to the pool.
func (p *Pool) AddLane(lane *Lane) {
	p.Lanes = append(p.Lanes, lane)
}

// LaneByID returns the lane with the given id, searching child lanes, or nil.
func (p *Pool) LaneByID(id string) *Lane {
	var search func(lanes []*Lane) *Lane
	search = func(lanes []*Lane) *Lane {
		for _, lane := range lanes {
			if lane.ID == id {
				return lane
			}
			if found := search(lane.ChildLanes); found != nil {
				return found
			}
		}
		return nil
	}
	return search(p.Lanes)
}
