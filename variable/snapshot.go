package variable

// Snapshot is a read-only description of a variable used by monitoring and
// recording.
type Snapshot struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Index       int     `json:"index"`
	Unit        string  `json:"unit,omitempty"`
	Value       float64 `json:"value"`
	Cached      bool    `json:"cached"`
	Dirty       bool    `json:"dirty"`
	Changed     bool    `json:"changed"`
	AutoRead    bool    `json:"auto_read"`
	AutoWrite   bool    `json:"auto_write"`
	TimeStamp   float64 `json:"time_stamp"`
	TickStamp   uint64  `json:"tick_stamp"`
	MaxAgeTime  float64 `json:"max_age_time"`
	MaxAgeTicks uint64  `json:"max_age_ticks"`
	Callbacks   int     `json:"callbacks"`
	RequestID   uint64  `json:"request_id,omitempty"`
	Bytes       int     `json:"bytes,omitempty"`
}
