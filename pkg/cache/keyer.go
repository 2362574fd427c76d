package cache

// ArtifactKeyOpts holds the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	ChainSequential bool    `json:"chain,omitempty"`
	Scale           float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered artifact: a diagram of the given
	// kind, in the given output format, for a payload with the given hash.
	ArtifactKey(kind, format, payloadHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<kind>:<format>:<hash>" where hash covers the
// payload hash and the options.
func (DefaultKeyer) ArtifactKey(kind, format, payloadHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+kind+":"+format, payloadHash, opts)
}
