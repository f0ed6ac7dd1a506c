package index

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
)

// Index exposes the lookup structures validation rules share. It is built
// once per validation call and never mutates the source diagram.
type Index struct {
	diagram *model.Diagram

	// elements maps every id in the diagram to its base element.
	elements map[string]*model.Element

	// nodes maps flow object ids to the nodes themselves.
	nodes map[string]model.FlowNode

	// incoming and outgoing map node ids to incident sequence flows,
	// in declaration order.
	incoming map[string][]*model.SequenceFlow
	outgoing map[string][]*model.SequenceFlow

	// processOf maps node ids to their owning process.
	processOf map[string]*model.Process

	// laneOf maps node ids to their owning lane, where assigned.
	laneOf map[string]*model.Lane

	// poolByProcess maps process ids to the pool referencing them.
	poolByProcess map[string]*model.Pool

	// reachable caches per-process forward reachability from start
	// events, keyed by process id. Computed lazily, once.
	reachable map[string]map[string]bool
}

// Build constructs the index in a single pass over the diagram. It returns
// *DuplicateIDError if any two elements share an id and *InvalidInputError
// for a nil diagram.
func Build(d *model.Diagram) (*Index, error) {
	if d == nil {
		return nil, &InvalidInputError{Reason: "diagram is nil"}
	}

	idx := &Index{
		diagram:       d,
		elements:      make(map[string]*model.Element),
		nodes:         make(map[string]model.FlowNode),
		incoming:      make(map[string][]*model.SequenceFlow),
		outgoing:      make(map[string][]*model.SequenceFlow),
		processOf:     make(map[string]*model.Process),
		laneOf:        make(map[string]*model.Lane),
		poolByProcess: make(map[string]*model.Pool),
		reachable:     make(map[string]map[string]bool),
	}

	for _, proc := range d.Processes {
		if err := idx.register(&proc.Element); err != nil {
			return nil, err
		}
		if err := idx.indexProcess(proc); err != nil {
			return nil, err
		}
	}

	for _, pool := range d.Pools {
		if err := idx.register(&pool.Element); err != nil {
			return nil, err
		}
		if pool.ProcessRef != "" {
			idx.poolByProcess[pool.ProcessRef] = pool
		}
		if err := idx.indexLanes(pool.Lanes); err != nil {
			return nil, err
		}
	}

	for _, flow := range d.MessageFlows {
		if err := idx.register(&flow.Element); err != nil {
			return nil, err
		}
	}
	for _, store := range d.GlobalDataStores {
		if err := idx.register(&store.Element); err != nil {
			return nil, err
		}
	}
	for _, ann := range d.GlobalTextAnnotations {
		if err := idx.register(&ann.Element); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *Index) register(el *model.Element) error {
	if prev, ok := idx.elements[el.ID]; ok {
		return &DuplicateIDError{ID: el.ID, First: prev.Type, Second: el.Type}
	}
	idx.elements[el.ID] = el
	return nil
}

func (idx *Index) registerNode(node model.FlowNode, proc *model.Process) error {
	if err := idx.register(node.Base()); err != nil {
		return err
	}
	id := node.Base().ID
	idx.nodes[id] = node
	idx.processOf[id] = proc
	return nil
}

func (idx *Index) indexProcess(proc *model.Process) error {
	for _, node := range proc.FlowObjects() {
		if err := idx.registerNode(node, proc); err != nil {
			return err
		}
	}

	// Nested subprocess elements stay out of the parent's flow graph but
	// their ids still share the diagram-wide namespace.
	for _, sub := range proc.SubProcesses {
		if err := idx.registerSubProcessContents(sub); err != nil {
			return err
		}
	}

	for _, flow := range proc.SequenceFlows {
		if err := idx.register(&flow.Element); err != nil {
			return err
		}
		idx.outgoing[flow.SourceRef] = append(idx.outgoing[flow.SourceRef], flow)
		idx.incoming[flow.TargetRef] = append(idx.incoming[flow.TargetRef], flow)
	}

	for _, assoc := range proc.Associations {
		if err := idx.register(&assoc.Element); err != nil {
			return err
		}
	}
	for _, obj := range proc.DataObjects {
		if err := idx.register(&obj.Element); err != nil {
			return err
		}
	}
	for _, store := range proc.DataStores {
		if err := idx.register(&store.Element); err != nil {
			return err
		}
	}
	for _, group := range proc.Groups {
		if err := idx.register(&group.Element); err != nil {
			return err
		}
	}
	for _, ann := range proc.TextAnnotations {
		if err := idx.register(&ann.Element); err != nil {
			return err
		}
	}
	if err := idx.indexLanes(proc.Lanes); err != nil {
		return err
	}
	return nil
}

func (idx *Index) registerSubProcessContents(sub *model.SubProcess) error {
	for _, event := range sub.Events {
		if err := idx.register(&event.Element); err != nil {
			return err
		}
	}
	for _, task := range sub.Tasks {
		if err := idx.register(&task.Element); err != nil {
			return err
		}
	}
	for _, gw := range sub.Gateways {
		if err := idx.register(&gw.Element); err != nil {
			return err
		}
	}
	for _, flow := range sub.SequenceFlows {
		if err := idx.register(&flow.Element); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Index) indexLanes(lanes []*model.Lane) error {
	for _, lane := range lanes {
		if err := idx.register(&lane.Element); err != nil {
			return err
		}
		for _, nodeID := range lane.FlowNodeRefs {
			// First assignment wins; a node in two lanes surfaces as a
			// swimlane finding, not an index failure.
			if _, assigned := idx.laneOf[nodeID]; !assigned {
				idx.laneOf[nodeID] = lane
			}
		}
		if err := idx.indexLanes(lane.ChildLanes); err != nil {
			return err
		}
	}
	return nil
}

// Diagram returns the indexed diagram.
func (idx *Index) Diagram() *model.Diagram { return idx.diagram }

// Element returns the element with the given id, or nil.
func (idx *Index) Element(id string) *model.Element { return idx.elements[id] }

// Node returns the flow object with the given id, or nil if the id does not
// resolve or resolves to a non-flow element.
func (idx *Index) Node(id string) model.FlowNode { return idx.nodes[id] }

// Incoming returns the sequence flows targeting the given node id.
func (idx *Index) Incoming(id string) []*model.SequenceFlow { return idx.incoming[id] }

// Outgoing returns the sequence flows leaving the given node id.
func (idx *Index) Outgoing(id string) []*model.SequenceFlow { return idx.outgoing[id] }

// ProcessOf returns the process owning the given node id, or nil.
func (idx *Index) ProcessOf(id string) *model.Process { return idx.processOf[id] }

// LaneOf returns the lane the given node id is assigned to, or nil.
func (idx *Index) LaneOf(id string) *model.Lane { return idx.laneOf[id] }

// PoolOf returns the pool whose process owns the given node id, or nil for
// nodes outside any pool.
func (idx *Index) PoolOf(id string) *model.Pool {
	proc := idx.processOf[id]
	if proc == nil {
		return nil
	}
	return idx.poolByProcess[proc.ID]
}

// PoolProcess returns the process a pool references, or nil.
func (idx *Index) PoolProcess(pool *model.Pool) *model.Process {
	if pool == nil || pool.ProcessRef == "" {
		return nil
	}
	return idx.diagram.ProcessByID(pool.ProcessRef)
}

// Reachable returns the set of node ids reachable from any start event of
// the given process by following outgoing sequence flows. The traversal runs
// once per process and is cached for reuse across rules.
func (idx *Index) Reachable(proc *model.Process) map[string]bool {
	if cached, ok := idx.reachable[proc.ID]; ok {
		return cached
	}

	seen := make(map[string]bool)
	var queue []string
	for _, start := range proc.StartEvents() {
		if !seen[start.ID] {
			seen[start.ID] = true
			queue = append(queue, start.ID)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, flow := range idx.outgoing[id] {
			if !seen[flow.TargetRef] {
				seen[flow.TargetRef] = true
				queue = append(queue, flow.TargetRef)
			}
		}
	}

	idx.reachable[proc.ID] = seen
	return seen
}
