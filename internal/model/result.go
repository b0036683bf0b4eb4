package model

// FriendState classifies a FriendStatus.
type FriendState int

const (
	FriendMissing FriendState = iota
	FriendPresent
	FriendAlternate
)

// FriendStatus records where a companion header was found.
// FoundPaths is empty when missing, holds the primary path when present,
// and a single alternate otherwise.
type FriendStatus struct {
	Name       string   `json:"name" yaml:"name"`
	FoundPaths []string `json:"found_paths" yaml:"found_paths"`
	Primary    string   `json:"primary" yaml:"primary"`
}

// State derives the friend's classification from FoundPaths.
func (f FriendStatus) State() FriendState {
	if len(f.FoundPaths) == 0 {
		return FriendMissing
	}
	if f.FoundPaths[0] == f.Primary {
		return FriendPresent
	}
	return FriendAlternate
}

// MatchResult splits a collection into the record chosen for the detected
// board (if any) and the rest in original order.
type MatchResult struct {
	Matched   *HeaderRecord  `json:"matched,omitempty" yaml:"matched,omitempty"`
	Remainder []HeaderRecord `json:"remainder" yaml:"remainder"`
}

// IncludeFlags is the composed list of include directories for one kind.
type IncludeFlags struct {
	IncludeDirs []string `json:"include_dirs" yaml:"include_dirs"`
	ExtraDirs   []string `json:"extra_dirs,omitempty" yaml:"extra_dirs,omitempty"`
	Compiler    string   `json:"compiler,omitempty" yaml:"compiler,omitempty"`
}

// KindResult holds everything produced for one header kind.
type KindResult struct {
	Kind    Kind                      `json:"kind" yaml:"kind"`
	Records []HeaderRecord            `json:"records" yaml:"records"`
	Match   MatchResult               `json:"match" yaml:"match"`
	Friends map[string][]FriendStatus `json:"friends,omitempty" yaml:"friends,omitempty"` // keyed by HeaderPath
	Flags   IncludeFlags              `json:"flags" yaml:"flags"`
}

// Inventory is the full result of one scan invocation.
type Inventory struct {
	BaseDir  string        `json:"base_dir" yaml:"base_dir"`
	Ports    []ComPort     `json:"ports" yaml:"ports"`
	Detected *ComPort      `json:"detected,omitempty" yaml:"detected,omitempty"`
	Board    BoardIdentity `json:"board" yaml:"board"`
	Kinds    []KindResult  `json:"kinds" yaml:"kinds"`
	Banner   string        `json:"banner" yaml:"banner"`
	// PortsAvailable is false when no enumerator could run.
	PortsAvailable bool `json:"ports_available" yaml:"ports_available"`
}

// Kind returns the result for k, or nil.
func (inv *Inventory) Kind(k Kind) *KindResult {
	for i := range inv.Kinds {
		if inv.Kinds[i].Kind == k {
			return &inv.Kinds[i]
		}
	}
	return nil
}
