package model

// TaskType names the specific kind of work a task performs.
type TaskType string

const (
	TaskAbstract     TaskType = "task"
	TaskUser         TaskType = "user_task"
	TaskService      TaskType = "service_task"
	TaskManual       TaskType = "manual_task"
	TaskScript       TaskType = "script_task"
	TaskBusinessRule TaskType = "business_rule_task"
	TaskSend         TaskType = "send_task"
	TaskReceive      TaskType = "receive_task"
)

// SubProcessType names the kind of a compound activity.
type SubProcessType string

const (
	SubProcessEmbedded     SubProcessType = "embedded"
	SubProcessEvent        SubProcessType = "event"
	SubProcessCallActivity SubProcessType = "call_activity"
	SubProcessTransaction  SubProcessType = "transaction"
	SubProcessAdHoc        SubProcessType = "ad_hoc"
)

// ActivityMarker flags special behavior of an activity.
type ActivityMarker string

const (
	MarkerLoop                    ActivityMarker = "loop"
	MarkerParallelMultiInstance   ActivityMarker = "parallel_multi_instance"
	MarkerSequentialMultiInstance ActivityMarker = "sequential_multi_instance"
	MarkerCompensation            ActivityMarker = "compensation"
	MarkerAdHoc                   ActivityMarker = "ad_hoc"
)

// Task is an atomic unit of work, the most granular activity in a process.
type Task struct {
	Element `yaml:",inline"`

	TaskType TaskType         `json:"task_type" yaml:"task_type"`
	Markers  []ActivityMarker `json:"markers,omitempty" yaml:"markers,omitempty"`

	// Human task properties
	Assignee        string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	CandidateGroups []string `json:"candidate_groups,omitempty" yaml:"candidate_groups,omitempty"`
	CandidateUsers  []string `json:"candidate_users,omitempty" yaml:"candidate_users,omitempty"`
	FormKey         string   `json:"form_key,omitempty" yaml:"form_key,omitempty"`

	// Service task properties
	Implementation string `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	OperationRef   string `json:"operation_ref,omitempty" yaml:"operation_ref,omitempty"`

	// Script task properties
	Script       string `json:"script,omitempty" yaml:"script,omitempty"`
	ScriptFormat string `json:"script_format,omitempty" yaml:"script_format,omitempty"`

	// Send/receive task properties
	MessageRef  string `json:"message_ref,omitempty" yaml:"message_ref,omitempty"`
	Instantiate bool   `json:"instantiate,omitempty" yaml:"instantiate,omitempty"`

	// Business rule task properties
	DecisionRef string `json:"decision_ref,omitempty" yaml:"decision_ref,omitempty"`

	// Multi-instance properties
	IsSequential        bool   `json:"is_sequential,omitempty" yaml:"is_sequential,omitempty"`
	LoopCardinality     string `json:"loop_cardinality,omitempty" yaml:"loop_cardinality,omitempty"`
	CompletionCondition string `json:"completion_condition,omitempty" yaml:"completion_condition,omitempty"`
	Collection          string `json:"collection,omitempty" yaml:"collection,omitempty"`
	ElementVariable     string `json:"element_variable,omitempty" yaml:"element_variable,omitempty"`
}

// NewTask creates a task with the given id, name, and type.
func NewTask(id, name string, taskType TaskType) *Task {
	return &Task{
		Element:  Element{ID: id, Name: name, Type: TypeTask},
		TaskType: taskType,
	}
}

// IsUserTask reports whether this is a user task.
func (t *Task) IsUserTask() bool { return t.TaskType == TaskUser }

// IsServiceTask reports whether this is a service task.
func (t *Task) IsServiceTask() bool { return t.TaskType == TaskService }

// IsScriptTask reports whether this is a script task.
func (t *Task) IsScriptTask() bool { return t.TaskType == TaskScript }

// HasMarker reports whether the task carries the given marker.
func (t *Task) HasMarker(marker ActivityMarker) bool {
	for _, m := range t.Markers {
		if m == marker {
			return true
		}
	}
	return false
}

// IsMultiInstance reports whether the task has multi-instance behavior.
func (t *Task) IsMultiInstance() bool {
	return t.HasMarker(MarkerParallelMultiInstance) || t.HasMarker(MarkerSequentialMultiInstance)
}

// SetMultiInstance configures multi-instance behavior iterating over the
// given collection expression.
func (t *Task) SetMultiInstance(collection, elementVariable string, sequential bool) {
	marker := MarkerParallelMultiInstance
	if sequential {
		marker = MarkerSequentialMultiInstance
	}
	if !t.HasMarker(marker) {
		t.Markers = append(t.Markers, marker)
	}
	t.Collection = collection
	t.ElementVariable = elementVariable
	t.IsSequential = sequential
}

// SetScript configures script task content and format.
func (t *Task) SetScript(content, format string) {
	t.Script = content
	t.ScriptFormat = format
}

// AddCandidateGroup adds a group that can claim this task.
func (t *Task) AddCandidateGroup(groupID string) {
	for _, g := range t.CandidateGroups {
		if g == groupID {
			return
		}
	}
	t.CandidateGroups = append(t.CandidateGroups, groupID)
}

// SubProcess is a compound activity containing its own flow elements.
type SubProcess struct {
	Element `yaml:",inline"`

	SubProcessType SubProcessType   `json:"subprocess_type" yaml:"subprocess_type"`
	Markers        []ActivityMarker `json:"markers,omitempty" yaml:"markers,omitempty"`

	// TriggeredByEvent applies to event subprocesses.
	TriggeredByEvent bool `json:"triggered_by_event,omitempty" yaml:"triggered_by_event,omitempty"`

	// CalledElement references the process invoked by a call activity.
	CalledElement string `json:"called_element,omitempty" yaml:"called_element,omitempty"`

	// Nested flow elements. Validation of nested graphs is per-process;
	// a subprocess participates in its parent's flow as a single node.
	Events        []*Event        `json:"events,omitempty" yaml:"events,omitempty"`
	Tasks         []*Task         `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Gateways      []*Gateway      `json:"gateways,omitempty" yaml:"gateways,omitempty"`
	SequenceFlows []*SequenceFlow `json:"sequence_flows,omitempty" yaml:"sequence_flows,omitempty"`
}

// NewSubProcess creates a subprocess of the given kind.
func NewSubProcess(id, name string, kind SubProcessType) *SubProcess {
	return &SubProcess{
		Element:        Element{ID: id, Name: name, Type: TypeSubProcess},
		SubProcessType: kind,
	}
}

// IsCallActivity reports whether this subprocess invokes an external process.
func (s *SubProcess) IsCallActivity() bool {
	return s.SubProcessType == SubProcessCallActivity
}
