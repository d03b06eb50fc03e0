package config

// Args stores positional arguments passed to command
type Args []string
