package model

// GatewayType determines the branching semantics of a gateway.
type GatewayType string

const (
	GatewayExclusive           GatewayType = "exclusive"
	GatewayInclusive           GatewayType = "inclusive"
	GatewayParallel            GatewayType = "parallel"
	GatewayComplex             GatewayType = "complex"
	GatewayEventBased          GatewayType = "event_based"
	GatewayExclusiveEventBased GatewayType = "exclusive_event_based"
	GatewayParallelEventBased  GatewayType = "parallel_event_based"
)

// GatewayDirection records the modeled role of a gateway in the flow.
type GatewayDirection string

const (
	DirectionUnspecified GatewayDirection = "unspecified"
	DirectionConverging  GatewayDirection = "converging"
	DirectionDiverging   GatewayDirection = "diverging"
	DirectionMixed       GatewayDirection = "mixed"
)

// Gateway controls how sequence flows converge and diverge within a process.
type Gateway struct {
	Element `yaml:",inline"`

	GatewayType GatewayType      `json:"gateway_type" yaml:"gateway_type"`
	Direction   GatewayDirection `json:"gateway_direction,omitempty" yaml:"gateway_direction,omitempty"`

	// DefaultFlow references the sequence flow taken when no condition
	// matches. Only meaningful for exclusive and inclusive gateways.
	DefaultFlow string `json:"default_flow,omitempty" yaml:"default_flow,omitempty"`

	// Instantiate applies to event-based gateways that may start a
	// process instance.
	Instantiate bool `json:"instantiate,omitempty" yaml:"instantiate,omitempty"`
}

// NewGateway creates a gateway of the given type.
func NewGateway(id, name string, gatewayType GatewayType) *Gateway {
	return &Gateway{
		Element:     Element{ID: id, Name: name, Type: TypeGateway},
		GatewayType: gatewayType,
		Direction:   DirectionUnspecified,
	}
}

// IsExclusive reports whether this is an exclusive (XOR) gateway.
func (g *Gateway) IsExclusive() bool { return g.GatewayType == GatewayExclusive }

// IsInclusive reports whether this is an inclusive (OR) gateway.
func (g *Gateway) IsInclusive() bool { return g.GatewayType == GatewayInclusive }

// IsParallel reports whether this is a parallel (AND) gateway.
func (g *Gateway) IsParallel() bool { return g.GatewayType == GatewayParallel }

// IsEventBased reports whether this gateway branches on events.
func (g *Gateway) IsEventBased() bool {
	switch g.GatewayType {
	case GatewayEventBased, GatewayExclusiveEventBased, GatewayParallelEventBased:
		return true
	}
	return false
}

// IsDiverging reports whether the gateway is modeled as a split.
func (g *Gateway) IsDiverging() bool { return g.Direction == DirectionDiverging }

// IsConverging reports whether the gateway is modeled as a merge.
func (g *Gateway) IsConverging() bool { return g.Direction == DirectionConverging }
