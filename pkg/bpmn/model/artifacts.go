package model

// DataObject represents information flowing through the process, such as a
// document moving between states.
type DataObject struct {
	Element `yaml:",inline"`

	IsCollection   bool   `json:"is_collection,omitempty" yaml:"is_collection,omitempty"`
	ItemSubjectRef string `json:"item_subject_ref,omitempty" yaml:"item_subject_ref,omitempty"`

	// State is the current lifecycle state, e.g. "Draft" or "Approved".
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// ValidStates declares the allowed lifecycle states. When non-empty
	// and the object is referenced by an association, State must be one
	// of these values.
	ValidStates []string `json:"valid_states,omitempty" yaml:"valid_states,omitempty"`
}

// NewDataObject creates a data object.
func NewDataObject(id, name string) *DataObject {
	return &DataObject{Element: Element{ID: id, Name: name, Type: TypeDataObject}}
}

// HasState reports whether a lifecycle state is set.
func (d *DataObject) HasState() bool { return d.State != "" }

// StateValid reports whether the current state is allowed by the declared
// valid-state set. An empty declaration permits any state.
func (d *DataObject) StateValid() bool {
	if len(d.ValidStates) == 0 {
		return true
	}
	for _, s := range d.ValidStates {
		if s == d.State {
			return true
		}
	}
	return false
}

// DataStore represents persistent storage visible beyond the lifetime of a
// process instance.
type DataStore struct {
	Element `yaml:",inline"`

	Capacity    int  `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	IsUnlimited bool `json:"is_unlimited,omitempty" yaml:"is_unlimited,omitempty"`
}

// NewDataStore creates a data store.
func NewDataStore(id, name string) *DataStore {
	return &DataStore{Element: Element{ID: id, Name: name, Type: TypeDataStore}, IsUnlimited: true}
}

// Group visually clusters elements under a category without affecting flow.
type Group struct {
	Element `yaml:",inline"`

	CategoryRef string `json:"category_ref,omitempty" yaml:"category_ref,omitempty"`
}

// NewGroup creates a group.
func NewGroup(id, name string) *Group {
	return &Group{Element: Element{ID: id, Name: name, Type: TypeGroup}}
}

// TextAnnotation attaches explanatory text to the diagram.
type TextAnnotation struct {
	Element `yaml:",inline"`

	Text       string `json:"text" yaml:"text"`
	TextFormat string `json:"text_format,omitempty" yaml:"text_format,omitempty"`
}

// NewTextAnnotation creates a text annotation.
func NewTextAnnotation(id, text string) *TextAnnotation {
	return &TextAnnotation{
		Element:    Element{ID: id, Type: TypeTextAnnotation},
		Text:       text,
		TextFormat: "text/plain",
	}
}
