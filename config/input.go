package config

// NewInput returns new input config
func NewInput(args Args) Input {
	return Input{
		Sources: args,
	}
}

// Input stores the list of descriptors to process
type Input struct {
	// Sources are paths to spec files or names of presets
	Sources []string
}
