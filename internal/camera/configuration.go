package camera

import "fmt"

// ConfigStatus is the three-way outcome of validating a configuration.
type ConfigStatus int

const (
	// ConfigValid means no stream needed changes.
	ConfigValid ConfigStatus = iota
	// ConfigAdjusted means at least one stream's fields were rewritten in
	// place to the nearest supported values; callers must re-read every
	// stream configuration before allocating buffers.
	ConfigAdjusted
	// ConfigInvalid means the aggregate cannot be satisfied at all.
	ConfigInvalid
)

func (s ConfigStatus) String() string {
	switch s {
	case ConfigValid:
		return "valid"
	case ConfigAdjusted:
		return "adjusted"
	case ConfigInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// IsValid reports a validation pass with no changes.
func (s ConfigStatus) IsValid() bool { return s == ConfigValid }

// IsAdjusted reports a validation pass that rewrote fields.
func (s ConfigStatus) IsAdjusted() bool { return s == ConfigAdjusted }

// IsInvalid reports an unsatisfiable configuration.
func (s ConfigStatus) IsInvalid() bool { return s == ConfigInvalid }

// Configuration aggregates the stream configurations of one camera setup.
// It is produced by Camera.GenerateConfiguration, edited by the caller,
// validated, and then applied with Camera.Configure.
type Configuration struct {
	streams []*StreamConfiguration
	camera  *Camera

	validated bool
	status    ConfigStatus
}

// Len returns the number of streams in the configuration.
func (c *Configuration) Len() int {
	return len(c.streams)
}

// Empty reports whether the configuration has no streams.
func (c *Configuration) Empty() bool {
	return len(c.streams) == 0
}

// At returns the i-th stream configuration for reading or editing, or nil
// when out of range.
func (c *Configuration) At(i int) *StreamConfiguration {
	if i < 0 || i >= len(c.streams) {
		return nil
	}
	return c.streams[i]
}

// Validate checks the configuration against the pipeline's supported set.
// Unsupported fields are rewritten in place to the nearest supported values
// (ConfigAdjusted); configurations that cannot be satisfied at all report
// ConfigInvalid. Editing any stream after validation requires validating
// again before the configuration can be applied.
func (c *Configuration) Validate() ConfigStatus {
	c.status = c.camera.pc.Validate(c.streams)
	c.validated = true
	return c.status
}

func (c *Configuration) String() string {
	out := ""
	for i, sc := range c.streams {
		if i > 0 {
			out += "; "
		}
		out += sc.String()
	}
	return out
}
